package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ouraiii/LearningJourney/internal/calendar"
	"github.com/ouraiii/LearningJourney/internal/logger"
	"github.com/ouraiii/LearningJourney/internal/models"
	"github.com/ouraiii/LearningJourney/internal/session"
	"github.com/ouraiii/LearningJourney/internal/storage"
	"github.com/ouraiii/LearningJourney/internal/tui/components/activities"
	"github.com/ouraiii/LearningJourney/internal/tui/components/history"
)

type SessionState int

const (
	StateWeek SessionState = iota
	StateActivities
	StateHistory
	StateGoalForm
	StateConfirmGoalChange
	StateConfirmRepeat
	StateCompleted
)

// tabs cycles through the first three states.
var tabs = []string{"Week", "Activities", "History"}

// months shown on the activities tab
const activityMonths = 12

type GoalFormModel struct {
	Subject  string
	Duration models.Duration
}

type Model struct {
	session       *session.Session
	store         storage.Provider
	today         func() calendar.Day
	backup        func()
	cal           calendar.View
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	form          *huh.Form
	goalForm      *GoalFormModel
	pending       *session.PendingUpdate
	activities    activities.Model
	history       history.Model
	message       string
	errMessage    string
	quitting      bool
	width         int
	height        int
}

// NewModel builds the TUI over an active session. today supplies the
// reference day; backup runs before a goal change forfeits progress and may
// be nil.
func NewModel(s *session.Session, store storage.Provider, today func() calendar.Day, backup func()) Model {
	if backup == nil {
		backup = func() {}
	}
	m := Model{
		session:    s,
		store:      store,
		today:      today,
		backup:     backup,
		cal:        calendar.NewView(today()),
		state:      StateWeek,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		activities: activities.New(0, 0),
		history:    history.New(nil, 0, 0),
	}
	m.refreshActivities()
	m.refreshHistory()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateConfirmGoalChange, StateConfirmRepeat:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case StateWeek:
		return []key.Binding{m.keys.Learned, m.keys.Freeze, m.keys.Left, m.keys.Right, m.keys.Tab, m.keys.Quit, m.keys.Help}
	}
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Session exposes the live session, mainly for tests.
func (m Model) Session() *session.Session {
	return m.session
}

func (m Model) Calendar() calendar.View {
	return m.cal
}

func (m Model) State() SessionState {
	return m.state
}

// persist saves the session after every mutation.
func (m *Model) persist() bool {
	if err := m.store.SaveSession(m.session.Snapshot()); err != nil {
		logger.Warn("failed to save goal", "id", m.session.ID(), "error", err)
		m.errMessage = "Failed to save: " + err.Error()
		return false
	}
	return true
}

func (m *Model) refreshActivities() {
	today := m.cal.Reference()
	start := today.FirstOfMonth().AddMonths(-(activityMonths - 1))
	m.activities.SetData(m.session.StatusOf, start, activityMonths, today)
}

func (m *Model) refreshHistory() {
	records, err := m.store.ListSessions(true)
	if err != nil {
		logger.Warn("failed to list goals", "error", err)
		return
	}
	m.history.SetRecords(records)
}

func (m *Model) resizeComponents() {
	// tabs, header and help take roughly four lines
	h := m.height - 4
	if h < 0 {
		h = 0
	}
	m.activities.SetSize(m.width, h)
	m.history.SetSize(m.width, h)
}
