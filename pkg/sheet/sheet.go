// Package sheet presents a resolved release-notes entry as an
// interactive terminal sheet. It owns the presentation lifecycle: the
// migration walk, the dismissal gate while migrations run, and the
// final persistence of the presented version.
package sheet

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/hervehildenbrand/whatsnew/pkg/whatsnew"
)

// Styles for the sheet
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	symbolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Width(4)

	featureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252"))

	featureSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				PaddingLeft(4)

	primaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("63")).
			Padding(0, 3).
			MarginTop(1)

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			MarginTop(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	sheetStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
)

// migrationStatus tracks the per-presentation migration state machine.
// It is transient and never persisted.
type migrationStatus int

const (
	statusNotStarted migrationStatus = iota
	statusRunning
	statusFinished
)

// Event identifies which action fired, for host feedback hooks
// (the terminal stand-in for haptics and sounds).
type Event int

const (
	EventPrimary Event = iota
	EventSecondary
)

// Config carries the explicit dependencies of a presentation. No
// ambient lookup: hosts pass everything in.
type Config struct {
	// Current is the host application version.
	Current whatsnew.Version

	// Collection is the ordered release-notes collection.
	Collection whatsnew.Collection

	// Store tracks presented versions. May be nil; the sheet then
	// shows without persistence and skips the migration walk.
	Store whatsnew.VersionStore

	// Behavior is the first-run policy.
	Behavior whatsnew.Behavior

	// Log receives diagnostics. The zero value is silent.
	Log zerolog.Logger

	// Feedback, if set, fires when an action button is pressed.
	Feedback func(Event)

	// OnDismiss, if set, runs after a primary-action dismissal.
	OnDismiss func()

	// OnSecondary, if set, handles the secondary action with access
	// to the dismissal control. Dismissal requested while migrations
	// run is deferred like any other.
	OnSecondary func(dismiss func())
}

// migrationsDoneMsg is sent when the migration walk completes.
type migrationsDoneMsg struct{}

// Model is the Bubble Tea model for a single presentation session.
type Model struct {
	cfg   Config
	entry *whatsnew.Entry

	status    migrationStatus
	pressed   bool // primary pressed while migrations were running
	dismissed bool
	spinner   spinner.Model
	width     int
	height    int
}

// New creates a sheet model for a resolved entry.
func New(cfg Config, entry *whatsnew.Entry) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		cfg:     cfg,
		entry:   entry,
		status:  statusNotStarted,
		spinner: s,
	}
}

// Init implements tea.Model. Appearance moves the status machine to
// running and kicks off the migration walk.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start())
}

// start decides how the session begins: the custom-behavior first-run
// shortcut persists and finishes immediately, a missing store aborts
// the walk with a diagnostic, and otherwise the walk runs.
func (m *Model) start() tea.Cmd {
	m.status = statusRunning

	if m.cfg.Behavior == whatsnew.BehaviorCustom && m.firstRun() {
		// Fresh install: there is no migration history to replay.
		m.persist(m.cfg.Current)
		return finishNow
	}

	if m.cfg.Store == nil {
		m.cfg.Log.Warn().Msg("no version store configured, skipping migrations")
		return finishNow
	}

	return m.runMigrations()
}

func finishNow() tea.Msg {
	return migrationsDoneMsg{}
}

func (m *Model) firstRun() bool {
	return m.cfg.Store == nil || len(m.cfg.Store.PresentedVersions()) == 0
}

// runMigrations walks the entire collection in sequence order and
// awaits each un-presented entry's migration fully before the next.
// Migrations never run concurrently and have no timeout: a hanging
// callback keeps the sheet undismissable.
func (m *Model) runMigrations() tea.Cmd {
	cfg := m.cfg
	resolved := m.entry.Version

	return func() tea.Msg {
		ctx := context.Background()
		ran := make(map[whatsnew.Version]bool)

		for i := range cfg.Collection {
			e := &cfg.Collection[i]
			if e.Migration == nil || ran[e.Version] || cfg.Store.HasPresented(e.Version) {
				continue
			}
			ran[e.Version] = true

			if err := e.Migration(ctx); err != nil {
				// Left unmarked so the migration retries on a
				// future presentation.
				cfg.Log.Warn().Err(err).Stringer("version", e.Version).Msg("migration failed")
				continue
			}
			cfg.Log.Debug().Stringer("version", e.Version).Msg("migration complete")

			// The resolved entry is persisted on dismissal, not here.
			if e.Version != resolved {
				if err := cfg.Store.Save(e.Version); err != nil {
					cfg.Log.Warn().Err(err).Stringer("version", e.Version).Msg("failed to persist version")
				}
			}
		}

		return migrationsDoneMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case migrationsDoneMsg:
		m.status = statusFinished
		if m.pressed {
			// The user already pressed continue; perform the
			// deferred dismissal now, exactly once.
			return m, m.dismiss(true)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		if m.status == statusFinished {
			return m, m.dismiss(true)
		}
		// Recorded, not rejected: the button switches to a busy
		// indicator and dismissal happens when migrations finish.
		m.pressed = true

	case "esc", "q", "ctrl+c":
		if m.status == statusFinished {
			return m, m.dismiss(false)
		}
		// Dismissal is gated until migrations finish.

	case "s":
		return m, m.secondary()
	}

	return m, nil
}

// secondary fires the secondary action: feedback, the entry's own
// handler, then the host callback with dismissal control.
func (m *Model) secondary() tea.Cmd {
	sec := m.entry.Secondary
	if sec == nil {
		return nil
	}

	m.feedback(EventSecondary)
	if sec.Handler != nil {
		sec.Handler()
	}

	if m.cfg.OnSecondary != nil {
		requested := false
		m.cfg.OnSecondary(func() { requested = true })
		if requested {
			if m.status == statusFinished {
				return m.dismiss(false)
			}
			m.pressed = true
		}
	}
	return nil
}

// dismiss closes the sheet exactly once, persisting the presented
// version unconditionally. fromPrimary gates the feedback and
// on-dismiss callbacks to the primary action.
func (m *Model) dismiss(fromPrimary bool) tea.Cmd {
	if m.dismissed {
		return nil
	}
	m.dismissed = true

	m.persist(m.entry.Version)

	if fromPrimary {
		m.feedback(EventPrimary)
		if m.entry.Primary.Handler != nil {
			m.entry.Primary.Handler()
		}
		if m.cfg.OnDismiss != nil {
			m.cfg.OnDismiss()
		}
	}
	return tea.Quit
}

func (m *Model) persist(v whatsnew.Version) {
	if m.cfg.Store == nil {
		return
	}
	if err := m.cfg.Store.Save(v); err != nil {
		m.cfg.Log.Warn().Err(err).Stringer("version", v).Msg("failed to persist version")
	}
}

func (m *Model) feedback(e Event) {
	if m.cfg.Feedback != nil {
		m.cfg.Feedback(e)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderContent()
	boxed := sheetStyle.Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxed)
	}
	return boxed
}

func (m *Model) renderContent() string {
	rows := []string{titleStyle.Render(m.entry.Title)}

	for _, f := range m.entry.Features {
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			symbolStyle.Render(f.Symbol),
			featureTitleStyle.Render(f.Title),
		)
		rows = append(rows, line)
		if f.Subtitle != "" {
			rows = append(rows, featureSubtitleStyle.Render(f.Subtitle))
		}
	}

	rows = append(rows, primaryStyle.Render(m.primaryLabel()))

	if sec := m.entry.Secondary; sec != nil {
		rows = append(rows, secondaryStyle.Render(sec.Title+" (s)"))
	}

	rows = append(rows, hintStyle.Render(m.hint()))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// primaryLabel shows the busy indicator once the button was pressed
// while migrations were still running.
func (m *Model) primaryLabel() string {
	if m.pressed && m.status != statusFinished {
		return m.spinner.View() + " " + m.entry.Primary.Title
	}
	return m.entry.Primary.Title
}

func (m *Model) hint() string {
	if m.status != statusFinished {
		return m.spinner.View() + " preparing your data, one moment"
	}
	return "enter to continue, esc to close"
}

// Run resolves the configured collection against the current version
// and, when an entry applies, presents it and blocks until dismissal.
// It returns immediately when nothing should be shown.
func Run(cfg Config) error {
	entry := whatsnew.Resolve(whatsnew.Config{
		Current:    cfg.Current,
		Collection: cfg.Collection,
		Store:      cfg.Store,
		Behavior:   cfg.Behavior,
		Log:        cfg.Log,
	})
	if entry == nil {
		return nil
	}

	p := tea.NewProgram(New(cfg, entry), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
