// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal dashboard of the client: collection
// versions and hashes, a feed of applied mutations and manual pulls.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
	"github.com/MKhiriev/go-app-state-sync/models"
)

type TUI struct {
	appState  service.AppStateService
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(appState service.AppStateService, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{appState: appState, buildInfo: buildInfo, logger: logger}
}

// Watch shows the dashboard until the user quits or ctx is cancelled.
func (t *TUI) Watch(ctx context.Context) error {
	model := newDashboardModel(ctx, t.appState, t.buildInfo)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Send drops messages once the program is gone
	t.appState.Observe(eventForwarder(program.Send))

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		t.logger.Err(err).Msg("dashboard stopped with error")
	}
	return err
}

func eventForwarder(send func(tea.Msg)) service.Listener {
	return service.ListenerFuncs{
		Action: func(action models.ActionPayload, index models.MessageIndex) {
			send(eventMsg{line: fmt.Sprintf("%s %s", action.Kind(), index.TargetID())})
		},
		Setting: func(setting models.ActionPayload) {
			send(eventMsg{line: string(setting.Kind())})
		},
		Features: func(flags []string) {
			send(eventMsg{line: fmt.Sprintf("primary_feature %v", flags)})
		},
		InitialSync: func() {
			send(eventMsg{line: "первая синхронизация завершена"})
		},
	}
}
