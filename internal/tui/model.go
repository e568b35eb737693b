package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"goports/internal/app"
	"goports/internal/netstat"
	"goports/internal/output"
	"goports/internal/session"
)

// commandTimeout bounds each controller call. A kill and the rescan that
// follows it are bounded separately.
var commandTimeout = 10 * time.Second

// Controller defines the subset of app.App behaviour the TUI needs.
type Controller interface {
	List(context.Context, app.ListParams) ([]netstat.Entry, error)
	Kill(context.Context, app.KillParams) (app.KillResult, error)
}

// Options configures the interactive view.
type Options struct {
	// Protocols are passed through to every scan.
	Protocols []string
	// ExeWidth is the executable column width. Zero means the default.
	ExeWidth int
}

var keyEvents = map[string]session.Event{
	"q":      session.Quit,
	"ctrl+c": session.Quit,
	"r":      session.Refresh,
	"j":      session.Next,
	"down":   session.Next,
	"k":      session.Prev,
	"up":     session.Prev,
	"enter":  session.Select,
	"y":      session.Affirm,
	"Y":      session.Affirm,
	"n":      session.Deny,
	"N":      session.Deny,
	"esc":    session.Deny,
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tableFrame   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

// Model represents the Bubble Tea state.
type Model struct {
	controller Controller
	params     app.ListParams
	exeWidth   int

	session session.Session
	table   table.Model

	// busy is set while a scan or kill runs; only quit is honoured then.
	busy      bool
	loaded    bool
	statusMsg string

	width  int
	height int

	lastUpdated time.Time
}

// New constructs a TUI model with default styles.
func New(ctrl Controller, opts Options) *Model {
	exeWidth := opts.ExeWidth
	if exeWidth <= 0 {
		exeWidth = output.DefaultExeWidth
	}

	tbl := table.New(
		table.WithColumns(columns(exeWidth)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("39")).
		Background(lipgloss.NoColor{}).
		Bold(true)
	tbl.SetStyles(styles)

	return &Model{
		controller: ctrl,
		params:     app.ListParams{Protocols: opts.Protocols},
		exeWidth:   exeWidth,
		table:      tbl,
	}
}

// Run spins up the Bubble Tea program with sensible defaults.
func Run(ctrl Controller, opts Options) error {
	m := New(ctrl, opts)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.busy = true
	return loadEntriesCmd(m.controller, m.params)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.height > 8 {
			m.table.SetHeight(m.height - 8)
		}

	case entriesLoadedMsg:
		m.busy = false
		m.apply(msg.entries)

	case killedMsg:
		m.busy = false
		m.statusMsg = msg.result.Message
		if msg.listErr == nil {
			m.apply(msg.entries)
		}
		if err := errors.Join(msg.err, msg.listErr); err != nil {
			m.session = m.session.Fail(err)
		}
		m.syncCursor()

	case errMsg:
		m.busy = false
		m.session = m.session.Fail(msg.err)

	case tea.KeyMsg:
		ev, ok := keyEvents[msg.String()]
		if !ok || (m.busy && ev != session.Quit) {
			return m, nil
		}
		return m.handle(ev)
	}

	return m, nil
}

func (m *Model) handle(ev session.Event) (tea.Model, tea.Cmd) {
	next, effect := session.Transition(m.session, ev)
	m.session = next
	m.syncCursor()

	if m.session.State == session.Terminated {
		return m, tea.Quit
	}

	switch effect.Kind {
	case session.RefreshEffect:
		m.busy = true
		m.statusMsg = ""
		return m, loadEntriesCmd(m.controller, m.params)
	case session.KillEffect:
		m.busy = true
		m.statusMsg = fmt.Sprintf("Killing PID %d…", effect.PID)
		return m, killCmd(m.controller, int(effect.PID), m.params)
	}
	return m, nil
}

func (m *Model) apply(entries []netstat.Entry) {
	m.session = m.session.Apply(entries)
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row(output.Row(e, m.exeWidth)))
	}
	m.table.SetRows(rows)
	m.syncCursor()
	m.loaded = true
	m.lastUpdated = time.Now()
}

func (m *Model) syncCursor() {
	m.table.SetCursor(m.session.Selected)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	title := "goports"
	if len(m.params.Protocols) > 0 {
		title += " · " + strings.ToLower(strings.Join(m.params.Protocols, ","))
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')

	switch {
	case !m.loaded && m.session.Err == nil:
		b.WriteString("Scanning ports…\n")
	case m.loaded && len(m.session.Records) == 0:
		b.WriteString("No connections found.\n")
	default:
		b.WriteString(tableFrame.Render(m.table.View()))
		b.WriteByte('\n')
	}

	if m.session.Err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.session.Err)))
		b.WriteByte('\n')
	}
	if m.statusMsg != "" {
		b.WriteString(m.statusMsg)
		b.WriteByte('\n')
	}

	if target, ok := m.session.Target(); ok && m.session.State == session.AwaitingConfirm {
		b.WriteString(confirmStyle.Render(fmt.Sprintf("Are you sure you want to kill PID %d? [Y/n]", target.PID)))
		return b.String()
	}

	help := "q quit • r refresh • j/k move • enter kill"
	if !m.lastUpdated.IsZero() {
		help += fmt.Sprintf(" • %d connections • last update %s", len(m.session.Records), m.lastUpdated.Format(time.Kitchen))
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func columns(exeWidth int) []table.Column {
	return []table.Column{
		{Title: output.Headers[0], Width: exeWidth + 6},
		{Title: output.Headers[1], Width: 7},
		{Title: output.Headers[2], Width: 21},
		{Title: output.Headers[3], Width: 21},
		{Title: output.Headers[4], Width: 8},
	}
}

type entriesLoadedMsg struct {
	entries []netstat.Entry
}

// killedMsg carries the kill outcome together with the rescan that follows
// it, so the records are replaced in one Update.
type killedMsg struct {
	result  app.KillResult
	err     error
	entries []netstat.Entry
	listErr error
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func loadEntriesCmd(ctrl Controller, params app.ListParams) tea.Cmd {
	return func() tea.Msg {
		entries, err := list(ctrl, params)
		if err != nil {
			return errMsg{err}
		}
		return entriesLoadedMsg{entries: entries}
	}
}

func killCmd(ctrl Controller, pid int, params app.ListParams) tea.Cmd {
	return func() tea.Msg {
		var msg killedMsg
		msg.result, msg.err = kill(ctrl, pid)
		msg.entries, msg.listErr = list(ctrl, params)
		return msg
	}
}

func kill(ctrl Controller, pid int) (app.KillResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return ctrl.Kill(ctx, app.KillParams{PID: pid})
}

func list(ctrl Controller, params app.ListParams) ([]netstat.Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return ctrl.List(ctx, params)
}
