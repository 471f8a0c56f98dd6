package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ouraiii/LearningJourney/internal/goal"
	"github.com/ouraiii/LearningJourney/internal/ledger"
	"github.com/ouraiii/LearningJourney/internal/logger"
	"github.com/ouraiii/LearningJourney/internal/models"
	"github.com/ouraiii/LearningJourney/internal/session"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
		m.resizeComponents()
		if m.state != StateGoalForm {
			return m, nil
		}
	}

	if m.state == StateGoalForm {
		return m.updateGoalForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateComponent(msg)
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	// keep "today" current when the app stays open past midnight
	if today := m.today(); today != m.cal.Reference() {
		m.cal.SetReference(today)
		m.refreshActivities()
	}

	switch m.state {
	case StateConfirmGoalChange:
		return m.handleConfirmGoalChange(keyMsg)
	case StateConfirmRepeat:
		return m.handleConfirmRepeat(keyMsg)
	case StateCompleted:
		return m.handleCompleted(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.state = (m.state + 1) % SessionState(len(tabs))
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = (m.state - 1 + SessionState(len(tabs))) % SessionState(len(tabs))
		return m, nil
	case key.Matches(keyMsg, m.keys.NewGoal):
		return m.openGoalForm()
	case key.Matches(keyMsg, m.keys.Repeat):
		m.previousState = m.state
		m.state = StateConfirmRepeat
		return m, nil
	}

	if m.state != StateWeek {
		return m.updateComponent(msg)
	}
	return m.handleWeekKeys(keyMsg)
}

func (m Model) updateComponent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateActivities:
		m.activities, cmd = m.activities.Update(msg)
	case StateHistory:
		m.history, cmd = m.history.Update(msg)
	}
	return m, cmd
}

func (m Model) handleWeekKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	m.errMessage = ""

	switch {
	case key.Matches(msg, m.keys.Left):
		m.cal.ShiftDays(-1)
	case key.Matches(msg, m.keys.Right):
		m.cal.ShiftDays(1)
	case key.Matches(msg, m.keys.PrevWeek):
		m.cal.ShiftWeek(-1)
	case key.Matches(msg, m.keys.NextWeek):
		m.cal.ShiftWeek(1)
	case key.Matches(msg, m.keys.Today):
		m.cal.Today()
	case key.Matches(msg, m.keys.Learned):
		m.logSelected(models.StatusLearned)
	case key.Matches(msg, m.keys.Freeze):
		m.logSelected(models.StatusFreezed)
	}
	return m, nil
}

func (m *Model) logSelected(status models.DayStatus) {
	day := m.cal.Selected()
	wasComplete := m.session.IsGoalComplete()

	var progress goal.Progress
	var err error
	if status == models.StatusFreezed {
		progress, err = m.session.LogFreezed(day)
	} else {
		progress, err = m.session.LogLearned(day)
	}
	if err != nil {
		m.errMessage = describeLogError(err, m.session.Progress())
		return
	}

	m.persist()
	m.refreshActivities()
	m.message = fmt.Sprintf("%s logged as %s", day, status)
	if progress.Completed && !wasComplete {
		m.state = StateCompleted
	}
}

func describeLogError(err error, p goal.Progress) string {
	switch {
	case errors.Is(err, ledger.ErrAlreadyLocked):
		return "This day is already locked"
	case errors.Is(err, ledger.ErrFreezeLimitExceeded):
		return fmt.Sprintf("No Freezes Left (%s)", p.FreezesUsedText())
	}
	return err.Error()
}

func (m Model) openGoalForm() (tea.Model, tea.Cmd) {
	m.goalForm = &GoalFormModel{
		Subject:  m.session.Subject(),
		Duration: m.session.Duration(),
	}

	var options []huh.Option[models.Duration]
	for _, d := range models.Durations() {
		options = append(options, huh.NewOption(string(d), d))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What do you want to learn?").
				Value(&m.goalForm.Subject).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return session.ErrEmptySubject
					}
					return nil
				}),
			huh.NewSelect[models.Duration]().
				Title("For how long?").
				Options(options...).
				Value(&m.goalForm.Duration),
		),
	)

	if m.state != StateCompleted {
		m.previousState = m.state
	} else {
		m.previousState = StateWeek
	}
	m.state = StateGoalForm
	return m, m.form.Init()
}

func (m Model) updateGoalForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		pending, changed := m.session.ProposeUpdate(m.goalForm.Subject, m.goalForm.Duration)
		switch {
		case !changed:
			m.message = "Goal unchanged"
			m.state = m.previousState
		case m.session.Progress().Logged() > 0 && !m.session.IsGoalComplete():
			// changing the goal forfeits the streak
			m.pending = pending
			m.state = StateConfirmGoalChange
		default:
			m.pending = pending
			m.commitGoalChange()
		}
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleConfirmGoalChange(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.commitGoalChange()
	case key.Matches(msg, m.keys.Cancel):
		m.session.DiscardUpdate()
		m.pending = nil
		m.message = "Goal unchanged"
		m.state = m.previousState
	}
	return m, nil
}

func (m *Model) commitGoalChange() {
	m.backup()
	previousID := m.session.ID()
	token := ""
	if m.pending != nil {
		token = m.pending.Token
	}
	m.pending = nil

	if _, err := m.session.CommitUpdate(token); err != nil {
		m.errMessage = err.Error()
		m.state = m.previousState
		return
	}
	m.afterReset(previousID)
	m.message = fmt.Sprintf("Started: %s (%s)", m.session.Headline(), m.session.Duration())
}

func (m Model) handleConfirmRepeat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.repeatGoal()
	case key.Matches(msg, m.keys.Cancel):
		m.state = m.previousState
	}
	return m, nil
}

func (m *Model) repeatGoal() {
	m.backup()
	previousID := m.session.ID()
	m.session.RepeatGoal()
	m.afterReset(previousID)
	m.message = fmt.Sprintf("Repeating: %s (%s)", m.session.Headline(), m.session.Duration())
}

// afterReset stores the fresh session, archives the one it replaced and
// returns to the week view.
func (m *Model) afterReset(previousID string) {
	if m.persist() && previousID != m.session.ID() {
		if err := m.store.ArchiveSession(previousID); err != nil {
			logger.Warn("failed to archive goal", "id", previousID, "error", err)
		}
	}
	m.cal.Today()
	m.refreshActivities()
	m.refreshHistory()
	m.state = StateWeek
}

func (m Model) handleCompleted(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Repeat):
		m.repeatGoal()
	case key.Matches(msg, m.keys.NewGoal):
		return m.openGoalForm()
	case msg.Type == tea.KeyEsc, msg.Type == tea.KeyEnter:
		m.state = StateWeek
	}
	return m, nil
}
