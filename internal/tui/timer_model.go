package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/timesheet/internal/db"
	"github.com/balkashynov/timesheet/internal/logging"
	"github.com/balkashynov/timesheet/internal/models"
	"github.com/balkashynov/timesheet/internal/period"
)

// timerEntry is one job on the clock
type timerEntry struct {
	job     models.Job
	session models.Session
	summary *period.Summary // nil when the job's range cannot be computed
}

// TimerModel shows every running session with a live clock. It only reads
// state; punching out happens after the program exits.
type TimerModel struct {
	width  int
	height int

	entries  []timerEntry
	selected int

	now     func() time.Time
	current time.Time

	// Animation state
	timerAnimation int

	stopping bool // s pressed: punch out of the selected job
	exiting  bool // esc/q pressed: leave everything running
}

// timerTickMsg is sent every second to update the clock
type timerTickMsg struct{}

// animationTickMsg is sent for faster animations
type animationTickMsg struct{}

// NewTimerModel creates a timer for the jobs on the clock in state, with
// focusJobID selected when it is one of them
func NewTimerModel(state *models.State, focusJobID string, now func() time.Time) TimerModel {
	current := now()
	m := TimerModel{now: now, current: current}

	for _, job := range state.ActiveJobs() {
		session := state.FindSession(job.ActiveSessionID)
		if session == nil {
			continue
		}
		entry := timerEntry{job: job, session: *session}
		if summary, err := period.Summarize(job, state, current); err == nil {
			entry.summary = &summary
		}
		if job.ID == focusJobID {
			m.selected = len(m.entries)
		}
		m.entries = append(m.entries, entry)
	}
	return m
}

// Selected returns the job under the cursor, if any
func (m TimerModel) Selected() (models.Job, bool) {
	if len(m.entries) == 0 {
		return models.Job{}, false
	}
	return m.entries[m.selected].job, true
}

// Stopping reports whether the user asked to punch out of the selected job
func (m TimerModel) Stopping() bool {
	return m.stopping
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// Init starts the clock and animation tickers
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(timerTick(), animationTick())
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.current = m.now()
		if !m.stopping && !m.exiting {
			return m, timerTick()
		}
		return m, nil

	case animationTickMsg:
		m.timerAnimation = (m.timerAnimation + 1) % 4
		if !m.stopping && !m.exiting {
			return m, animationTick()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			if len(m.entries) == 0 {
				return m, nil
			}
			m.stopping = true
			return m, tea.Quit
		case "up", "k", "shift+tab":
			if len(m.entries) > 0 {
				m.selected = (m.selected - 1 + len(m.entries)) % len(m.entries)
			}
		case "down", "j", "tab":
			if len(m.entries) > 0 {
				m.selected = (m.selected + 1) % len(m.entries)
			}
		case "ctrl+c", "esc", "q":
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the timer
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	if len(m.entries) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Width(m.width).
			Height(contentHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Not on the clock")
		return lipgloss.JoinVertical(lipgloss.Left, empty, helpBar)
	}

	// Narrow view: just the clock
	if m.width < 90 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderTimerPanel(m.width, contentHeight),
			helpBar,
		)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTimerPanel(leftWidth, contentHeight),
		"  ",
		m.renderJobPanel(rightWidth, contentHeight),
	)
	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

func (m TimerModel) renderTimerPanel(width, height int) string {
	entry := m.entries[m.selected]
	centered := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)

	var components []string

	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	animChar := animChars[m.timerAnimation]
	components = append(components, centered.
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Render(fmt.Sprintf("%s  ON THE CLOCK  %s", animChar, animChar)))

	name := entry.job.Name
	if width > 7 && len([]rune(name)) > width-4 {
		name = string([]rune(name)[:width-7]) + "..."
	}
	components = append(components, centered.
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Render(name))

	clockLines := strings.Split(renderBigClock(period.FormatElapsed(entry.session.Start, m.current)), "\n")
	for i, line := range clockLines {
		clockLines[i] = centered.Render(line)
	}
	components = append(components, strings.Join(clockLines, "\n"))

	started := fmt.Sprintf("Started %s (%s)",
		period.FormatDateTime(entry.session.Start.In(m.current.Location())),
		period.FormatSince(entry.session.Start, m.current))
	components = append(components, centered.
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Render(started))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

func (m TimerModel) renderJobPanel(width, height int) string {
	entry := m.entries[m.selected]
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width-12).
		Padding(0, 1)
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(entry.job.Name))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	line := func(icon, name, v string, style lipgloss.Style) {
		b.WriteString(fmt.Sprintf("%s %s %s\n", icon, label.Render(name+":"), style.Render(v)))
	}

	line("💵", "Rate", "$"+period.FormatMoney(entry.job.Rate)+"/h", value)
	if entry.summary != nil {
		s := entry.summary
		line("📅", "Range", fmt.Sprintf("%s - %s", period.FormatDate(s.Range.Start), period.FormatDate(s.Range.End)), value)
		line("📊", "Hours so far", fmt.Sprintf("%s in %d session(s)", period.FormatHours(s.Totals.TotalHours), s.Totals.SessionCount), value)
		line("💰", "Earned so far", "$"+period.FormatMoneyGrouped(s.Earnings), lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)))
	} else {
		line("📅", "Range", "invalid pay period start", lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)))
	}
	running := entry.session.Duration(m.current).Hours() * entry.job.Rate
	line("⏱️ ", "This session", "$"+period.FormatMoneyGrouped(running), muted)

	if len(m.entries) > 1 {
		b.WriteString("\n")
		b.WriteString(label.Render("Also on the clock:"))
		b.WriteString("\n")
		for i, e := range m.entries {
			marker := "  "
			style := muted
			if i == m.selected {
				marker = "▶ "
				style = value
			}
			b.WriteString(style.Render(fmt.Sprintf("%s%-20s %s", marker, e.job.Name, period.FormatElapsed(e.session.Start, m.current))))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

// bigDigits are 5x5 glyphs for the clock
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock draws an HH:MM:SS string in block digits
func renderBigClock(elapsed string) string {
	var rows [5]strings.Builder
	for _, char := range elapsed {
		glyph, ok := bigDigits[char]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i].WriteString(glyph[i])
			rows[i].WriteString(" ")
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = clockStyle.Render(rows[i].String())
	}
	return strings.Join(lines, "\n")
}

func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "s punch out · esc/q exit (keep running) · ctrl+c force quit"
	if len(m.entries) > 1 {
		helpText = "↑/↓ switch job · " + helpText
	}
	return helpStyle.Render(helpText)
}

// RunTimerTUI shows the running timer and punches out of the selected job if
// the user asks for it
func RunTimerTUI(ctx context.Context, store *db.Store, focusJobID string) error {
	log := logging.FromContext(ctx).With(logging.FieldComponent, logging.ComponentTUI)

	state, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if len(state.ActiveJobs()) == 0 {
		fmt.Println("Not on the clock")
		return nil
	}

	model := NewTimerModel(state, focusJobID, store.Now)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	timerModel, ok := finalModel.(TimerModel)
	if !ok {
		return nil
	}
	job, ok := timerModel.Selected()
	if !ok {
		return nil
	}

	if timerModel.Stopping() {
		result, err := store.PunchOut(ctx, job.ID)
		if err != nil {
			return fmt.Errorf("failed to punch out: %w", err)
		}
		log.Debug("punched out from timer", logging.FieldJobID, job.ID)

		fmt.Printf("⏹️  Punched out of %s\n", result.Job.Name)
		if result.Session.End != nil {
			fmt.Printf("📊 Session: %s · %s hours\n",
				period.FormatElapsed(result.Session.Start, *result.Session.End),
				period.FormatHours(result.Session.Hours()))
		}
		return nil
	}

	fmt.Printf("\n💡 Still on the clock for %s.\n", job.Name)
	fmt.Printf("   Use 'timesheet status' to check or 'timesheet out \"%s\"' to punch out.\n", job.Name)
	return nil
}
