package tui

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-app-state-sync/internal/service"
	"github.com/MKhiriev/go-app-state-sync/models"
)

const (
	refreshInterval = 2 * time.Second
	maxEvents       = 10
)

// collectionRow is what the dashboard shows for one collection.
type collectionRow struct {
	collection models.Collection
	version    uint64
	records    int
	hash       string
	attempts   int
}

type dashboardModel struct {
	ctx       context.Context
	appState  service.AppStateService
	buildInfo models.AppBuildInfo

	rows    []collectionRow
	idx     int
	events  []string
	syncing bool
	spinner spinner.Model
	status  string
	lastErr error

	showBuildInfo bool
}

func newDashboardModel(ctx context.Context, appState service.AppStateService, buildInfo models.AppBuildInfo) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return dashboardModel{
		ctx:       ctx,
		appState:  appState,
		buildInfo: buildInfo,
		spinner:   s,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadStates(), cmdRefresh())
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case statesLoadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.rows = msg.rows
		if m.idx >= len(m.rows) {
			m.idx = max(len(m.rows)-1, 0)
		}
	case refreshMsg:
		return m, tea.Batch(m.cmdLoadStates(), cmdRefresh())
	case pullDoneMsg:
		m.syncing = false
		m.lastErr = msg.err
		if msg.err == nil {
			m.status = "Синхронизировано"
		}
		return m, tea.Batch(m.cmdLoadStates(), cmdClearStatus())
	case eventMsg:
		m.events = append(m.events, msg.line)
		if len(m.events) > maxEvents {
			m.events = m.events[len(m.events)-maxEvents:]
		}
	case copiedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.status = "Скопировано: " + msg.what
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
	case spinner.TickMsg:
		if m.syncing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showBuildInfo {
		if key.Matches(msg, keys.esc, keys.buildInfo) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.rows)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.sync):
		return m.startPull()
	case key.Matches(msg, keys.enter):
		row, ok := m.current()
		if !ok {
			return m, nil
		}
		return m.startPull(row.collection)
	case key.Matches(msg, keys.copy):
		row, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, cmdCopyToClipboard(row.hash, "LTHash "+row.collection.String())
	case key.Matches(msg, keys.buildInfo):
		m.showBuildInfo = true
	}

	return m, nil
}

func (m dashboardModel) startPull(collections ...models.Collection) (tea.Model, tea.Cmd) {
	if m.syncing {
		return m, nil
	}
	m.syncing = true
	m.lastErr = nil
	return m, tea.Batch(m.spinner.Tick, m.cmdPull(collections...))
}

func (m dashboardModel) current() (collectionRow, bool) {
	if len(m.rows) == 0 || m.idx < 0 || m.idx >= len(m.rows) {
		return collectionRow{}, false
	}
	return m.rows[m.idx], true
}

func (m dashboardModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	title := "СИНХРОНИЗАЦИЯ СОСТОЯНИЯ"
	if m.syncing {
		title += "  " + m.spinner.View()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-22s %8s %8s  %s\n", "коллекция", "версия", "записи", "LTHash")
	for i, row := range m.rows {
		line := fmt.Sprintf("%-22s %8d %8d  %s", row.collection, row.version, row.records, fitText(row.hash, 16))
		if row.attempts > 0 {
			line += fmt.Sprintf("  (ошибок: %d)", row.attempts)
		}
		if i == m.idx {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\nСобытия:\n")
	if len(m.events) == 0 {
		b.WriteString("  -\n")
	}
	for _, e := range m.events {
		b.WriteString("  ")
		b.WriteString(e)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(humanizeSyncError(m.lastErr)))
	}

	hotKeys := "↑/↓: выбор  enter: pull коллекции  s: pull всех  c: копировать LTHash  v: о программе"
	return appStyle.Render(renderPage(title, b.String(), hotKeys))
}

func (m dashboardModel) cmdLoadStates() tea.Cmd {
	ctx := m.ctx
	appState := m.appState
	return func() tea.Msg {
		collections := models.AllCollections()
		rows := make([]collectionRow, 0, len(collections))
		for _, c := range collections {
			state, err := appState.State(ctx, c)
			if err != nil {
				return statesLoadedMsg{err: fmt.Errorf("state of %s: %w", c, err)}
			}
			rows = append(rows, collectionRow{
				collection: c,
				version:    state.Version,
				records:    len(state.IndexValueMap),
				hash:       hex.EncodeToString(state.Hash[:]),
				attempts:   appState.Attempts(c),
			})
		}
		return statesLoadedMsg{rows: rows}
	}
}

func (m dashboardModel) cmdPull(collections ...models.Collection) tea.Cmd {
	ctx := m.ctx
	appState := m.appState
	return func() tea.Msg {
		return pullDoneMsg{err: appState.Pull(ctx, collections...)}
	}
}

func cmdRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func cmdCopyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{what: what}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
