package history

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ouraiii/LearningJourney/internal/constants"
	"github.com/ouraiii/LearningJourney/internal/models"
)

type Item struct {
	Record models.GoalRecord
}

func (i Item) Title() string {
	return fmt.Sprintf("%s (%s)", i.Record.Definition.Subject, i.Record.Definition.Duration)
}

func (i Item) Description() string {
	state := "active"
	switch {
	case i.Record.Completed:
		state = "completed"
	case i.Record.ArchivedAt != nil:
		state = "archived"
	}
	return fmt.Sprintf("%s | %d learned | %d freezed | %s",
		i.Record.CreatedAt.Local().Format(constants.DateFormat),
		i.Record.LearnedDays, i.Record.FreezedDays, state)
}

func (i Item) FilterValue() string { return i.Record.Definition.Subject }

type Model struct {
	list list.Model
}

func New(records []models.GoalRecord, width, height int) Model {
	l := list.New(toItems(records), list.NewDefaultDelegate(), width, height)
	l.Title = "Goal History"
	l.SetShowHelp(false)
	return Model{list: l}
}

func toItems(records []models.GoalRecord) []list.Item {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = Item{Record: r}
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m *Model) SetRecords(records []models.GoalRecord) {
	m.list.SetItems(toItems(records))
}

func (m Model) Len() int {
	return len(m.list.Items())
}
