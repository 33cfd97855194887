package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/timesheet/internal/db"
	"github.com/balkashynov/timesheet/internal/logging"
	"github.com/balkashynov/timesheet/internal/models"
	"github.com/balkashynov/timesheet/internal/period"
)

// RunEditSessionTUI starts the interactive session edit form
func RunEditSessionTUI(ctx context.Context, store *db.Store, req db.EditSessionRequest, jobName string) error {
	log := logging.FromContext(ctx).With(logging.FieldComponent, logging.ComponentTUI)

	save := func(r db.EditSessionRequest) (*models.Session, error) {
		return store.EditSession(ctx, r)
	}
	model := NewEditSessionModel(req, jobName, store.Now, save)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()

	// Handle exit messages after TUI closes
	if err != nil {
		return err
	}

	if m, ok := finalModel.(EditSessionModel); ok {
		if m.cancelled {
			fmt.Println("❌ Edit cancelled.")
		} else if session := m.Saved(); session != nil {
			log.Debug("session saved from form", logging.FieldSessionID, session.ID)
			loc := store.Now().Location()
			fmt.Printf("✅ Session %s updated: %s - %s (%s hours)\n",
				shortSessionID(session.ID),
				period.FormatDateTime(session.Start.In(loc)),
				period.FormatDateTime(session.End.In(loc)),
				period.FormatHours(session.Hours()))
		} else if m.err != nil {
			fmt.Printf("❌ Error: %v\n", m.err)
		}
	}

	return nil
}
