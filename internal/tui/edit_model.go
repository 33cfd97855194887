package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/timesheet/internal/db"
	"github.com/balkashynov/timesheet/internal/models"
	"github.com/balkashynov/timesheet/internal/parser"
	"github.com/balkashynov/timesheet/internal/period"
)

// Field is an input of the session form
type Field int

const (
	FieldJob Field = iota
	FieldStart
	FieldEnd
)

var fieldLabels = []string{"💼 Job", "▶ Start", "■ End"}

// SaveFunc applies an edit, usually Store.EditSession
type SaveFunc func(db.EditSessionRequest) (*models.Session, error)

// EditSessionModel is the form for correcting a session's job and times
type EditSessionModel struct {
	inputs []textinput.Model
	focus  Field
	width  int
	height int

	sessionID string
	jobName   string // job at the time the form opened
	now       func() time.Time
	save      SaveFunc

	// State
	validationErr string
	err           error
	saved         *models.Session
	cancelled     bool
}

// NewEditSessionModel creates the form pre-populated from req
func NewEditSessionModel(req db.EditSessionRequest, jobName string, now func() time.Time, save SaveFunc) EditSessionModel {
	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].CharLimit = 100
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[FieldJob].Placeholder = "Job name or id"
	inputs[FieldJob].SetValue(jobName)
	inputs[FieldStart].Placeholder = "yyyy-mm-dd hh:mm, dd/mm/yyyy hh:mm, 2h ago"
	inputs[FieldStart].SetValue(req.Start)
	inputs[FieldEnd].Placeholder = "yyyy-mm-dd hh:mm or now"
	inputs[FieldEnd].SetValue(req.End)

	inputs[FieldStart].Focus()

	return EditSessionModel{
		inputs:    inputs,
		focus:     FieldStart,
		sessionID: req.SessionID,
		jobName:   jobName,
		now:       now,
		save:      save,
	}
}

// Saved returns the edited session once the form has been submitted
func (m EditSessionModel) Saved() *models.Session {
	return m.saved
}

// Init initializes the model
func (m EditSessionModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m EditSessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		inputWidth := m.width - 20
		if inputWidth < 30 {
			inputWidth = 30
		}
		if inputWidth > 60 {
			inputWidth = 60
		}
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "tab", "down":
			return m.focusField((m.focus + 1) % Field(len(m.inputs)))
		case "shift+tab", "up":
			return m.focusField((m.focus - 1 + Field(len(m.inputs))) % Field(len(m.inputs)))
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focus == FieldEnd {
				return m.submit()
			}
			return m.focusField(m.focus + 1)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m EditSessionModel) focusField(f Field) (tea.Model, tea.Cmd) {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if Field(i) == f {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

// submit saves the form. Input mistakes keep the form open with a message;
// anything else ends the program.
func (m EditSessionModel) submit() (tea.Model, tea.Cmd) {
	req := db.EditSessionRequest{
		SessionID: m.sessionID,
		Start:     m.inputs[FieldStart].Value(),
		End:       m.inputs[FieldEnd].Value(),
	}
	if job := strings.TrimSpace(m.inputs[FieldJob].Value()); job != m.jobName {
		if job == "" {
			m.validationErr = "Job is required"
			return m, nil
		}
		req.JobID = job
	}

	session, err := m.save(req)
	if err != nil {
		if db.IsValidation(err) || errors.Is(err, db.ErrJobNotFound) {
			m.validationErr = err.Error()
			return m, nil
		}
		m.err = err
		return m, tea.Quit
	}

	m.validationErr = ""
	m.saved = session
	return m, tea.Quit
}

// preview describes the session the current input would produce
func (m EditSessionModel) preview() (string, bool) {
	ref := m.now()
	start, err := parser.ParseTimestamp(m.inputs[FieldStart].Value(), ref)
	if err != nil {
		return "Start: " + err.Error(), false
	}
	end, err := parser.ParseTimestamp(m.inputs[FieldEnd].Value(), ref)
	if err != nil {
		return "End: " + err.Error(), false
	}
	if !end.After(start) {
		return "End time must be after start time", false
	}
	hours := float64(end.Sub(start).Milliseconds()) / float64(time.Hour/time.Millisecond)
	loc := ref.Location()
	return fmt.Sprintf("%s - %s · %s hours", period.FormatDateTime(start.In(loc)), period.FormatDateTime(end.In(loc)), period.FormatHours(hours)), true
}

// View renders the form
func (m EditSessionModel) View() string {
	if m.cancelled || m.saved != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(fmt.Sprintf("✏️  Edit Session %s", shortSessionID(m.sessionID))))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	activeLabelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	for i, input := range m.inputs {
		style := labelStyle
		if Field(i) == m.focus {
			style = activeLabelStyle
		}
		b.WriteString(style.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	summary, ok := m.preview()
	previewColor := ColorSuccess
	if !ok {
		previewColor = ColorWarning
	}
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(previewColor)).Render(summary))
	b.WriteString("\n")

	if m.validationErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("⚠ " + m.validationErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render("tab/↑↓ move · enter next/save · ctrl+s save · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(b.String())
}

func shortSessionID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
