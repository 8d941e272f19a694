// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-app-state-sync/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	rows := [][2]string{
		{"Приложение", "app state sync client"},
		{"Версия", info.BuildVersion()},
		{"Дата", info.BuildDate()},
		{"Коммит", info.BuildCommit()},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		value := strings.TrimSpace(row[1])
		if value == "" {
			value = "N/A"
		}
		lines = append(lines, fmt.Sprintf("%-11s %s", row[0]+":", value))
	}

	return overlayBoxStyle.Render(renderPage("О ПРОГРАММЕ", strings.Join(lines, "\n"), "esc: назад"))
}
