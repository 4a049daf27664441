// Package ui implements the Bubble Tea booking manager.
package ui

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	myweblog "github.com/faluke/go-myweblog"
	"github.com/faluke/go-myweblog/internal/prefs"
	"github.com/faluke/go-myweblog/internal/state"
)

// view is the current screen.
type view int

const (
	viewAircraft view = iota
	viewBookings
	viewForm
)

// confirmAction is a pending destructive action awaiting a y/n.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDelete
	confirmCut
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    myweblog.API
	Store     *state.Store
	Refresh   func(context.Context) // synchronous full refresh, supplied by the app layer
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    myweblog.API
	store     *state.Store
	refresh   func(context.Context)
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme       Theme
	keys        keyMap
	currentView view
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Selection state
	selectedAircraft int
	selectedBooking  int

	// Create form
	form bookingForm

	// Pending confirmation
	confirm        confirmAction
	confirmBooking myweblog.Booking

	// Mutation in flight
	busy bool
	spin spinner.Model

	// Transient status line
	flash      string
	flashError bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		refresh:     opts.Refresh,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		theme:       GetTheme(opts.ThemeName),
		keys:        DefaultKeyMap(),
		currentView: viewAircraft,
		spin:        sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelection()
		return m, nil

	case mutationMsg:
		m.busy = false
		if msg.err != nil {
			m.flash, m.flashError = mutationFailureText(msg.verb, msg.err), true
		} else {
			m.flash, m.flashError = mutationSuccessText(msg.verb, msg.result), false
		}
		cmds := []tea.Cmd{clearFlashCmd()}
		// Mutations change the listing; refresh right away.
		if m.refresh != nil {
			cmds = append(cmds, refreshCmd(m.ctx, m.refresh, m.store))
		}
		return m, tea.Batch(cmds...)

	case clearFlashMsg:
		m.flash = ""
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.currentView {
	case viewForm:
		b.WriteString(m.renderForm())
	case viewBookings:
		if m.confirm != confirmNone {
			b.WriteString(m.renderConfirm())
		} else {
			b.WriteString(m.renderBookings())
		}
	default:
		b.WriteString(m.renderAircraft())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	// The form owns the keyboard while editing.
	if m.currentView == viewForm {
		return m.handleFormKey(msg)
	}
	if m.confirm != confirmNone {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refresh != nil {
			return m, refreshCmd(m.ctx, m.refresh, m.store)
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.currentView = viewAircraft
		return m, nil
	}

	switch m.currentView {
	case viewBookings:
		return m.handleBookingsKey(msg)
	default:
		return m.handleAircraftKey(msg)
	}
}

// clampSelection keeps selections valid across snapshot changes.
func (m *Model) clampSelection() {
	if n := len(m.bookableAircraft()); m.selectedAircraft >= n {
		m.selectedAircraft = max(0, n-1)
	}
	if n := len(m.currentBookings()); m.selectedBooking >= n {
		m.selectedBooking = max(0, n-1)
	}
}

// bookableAircraft returns the snapshot's flyable aircraft sorted by
// registration.
func (m Model) bookableAircraft() []myweblog.Object {
	var out []myweblog.Object
	for _, o := range m.snapshot.Aircraft {
		if o.Bookable() {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Registration < out[j].Registration })
	return out
}

// currentAircraft returns the selected aircraft, if any.
func (m Model) currentAircraft() *myweblog.Object {
	aircraft := m.bookableAircraft()
	if len(aircraft) == 0 || m.selectedAircraft >= len(aircraft) {
		return nil
	}
	return &aircraft[m.selectedAircraft]
}

// currentBookings returns the selected aircraft's future-or-active
// bookings sorted by start time.
func (m Model) currentBookings() []myweblog.Booking {
	aircraft := m.currentAircraft()
	if aircraft == nil {
		return nil
	}
	now := time.Now()
	var out []myweblog.Booking
	for _, b := range m.snapshot.Bookings {
		if b.AircraftID != aircraft.ID {
			continue
		}
		if b.EndsBefore(now) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime().Before(out[j].StartTime()) })
	return out
}

// ownBooking reports whether the booking belongs to the authenticated
// user, keyed on the full name from getBalance.
func (m Model) ownBooking(b myweblog.Booking) bool {
	return m.snapshot.HasBalance && b.Fullname != "" && b.Fullname == m.snapshot.Balance.Fullname
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type mutationMsg struct {
	verb   string
	result *myweblog.MutationResult
	err    error
}

type clearFlashMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func refreshCmd(ctx context.Context, refresh func(context.Context), store *state.Store) tea.Cmd {
	return func() tea.Msg {
		refresh(ctx)
		return snapshotMsg(store.Snapshot())
	}
}

func clearFlashCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return clearFlashMsg{}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
