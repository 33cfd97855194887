package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/timesheet/internal/db"
	"github.com/balkashynov/timesheet/internal/models"
)

type saveStub struct {
	requests []db.EditSessionRequest
	err      error
}

func (s *saveStub) save(req db.EditSessionRequest) (*models.Session, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	start := time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	return &models.Session{ID: req.SessionID, JobID: "cafe", Start: start, End: &end}, nil
}

func newForm(stub *saveStub) EditSessionModel {
	req := db.EditSessionRequest{
		SessionID: "session-1234",
		Start:     "2024-01-20 08:00:00",
		End:       "2024-01-20 12:15:00",
	}
	now := func() time.Time { return time.Date(2024, 1, 20, 18, 0, 0, 0, time.UTC) }
	return NewEditSessionModel(req, "Corner Cafe", now, stub.save)
}

func press(t *testing.T, m EditSessionModel, msgs ...tea.Msg) (EditSessionModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(EditSessionModel)
	}
	return m, cmd
}

func TestEditSessionModel_Submit(t *testing.T) {
	stub := &saveStub{}
	m := newForm(stub)

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	m, cmd := press(t, m, enter, enter)

	if m.Saved() == nil || cmd == nil {
		t.Fatal("expected the form to save and quit")
	}
	if len(stub.requests) != 1 {
		t.Fatalf("save called %d times", len(stub.requests))
	}
	req := stub.requests[0]
	if req.SessionID != "session-1234" || req.JobID != "" || req.Start != "2024-01-20 08:00:00" || req.End != "2024-01-20 12:15:00" {
		t.Errorf("request = %+v", req)
	}
}

func TestEditSessionModel_ChangeJob(t *testing.T) {
	stub := &saveStub{}
	m := newForm(stub)
	m.inputs[FieldJob].SetValue("Night Bar")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if len(stub.requests) != 1 || stub.requests[0].JobID != "Night Bar" {
		t.Errorf("requests = %+v", stub.requests)
	}

	m = newForm(stub)
	m.inputs[FieldJob].SetValue("  ")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.validationErr == "" || len(stub.requests) != 1 {
		t.Error("blank job should be refused before saving")
	}
}

func TestEditSessionModel_ValidationKeepsFormOpen(t *testing.T) {
	stub := &saveStub{err: &db.ValidationError{Field: "end", Message: "end time must be after start time"}}
	m := newForm(stub)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("a validation error should not quit")
	}
	if m.Saved() != nil || m.err != nil {
		t.Errorf("saved=%v err=%v", m.Saved(), m.err)
	}
	if !strings.Contains(m.View(), "end time must be after start time") {
		t.Errorf("view does not show the error:\n%s", m.View())
	}
}

func TestEditSessionModel_Cancel(t *testing.T) {
	stub := &saveStub{}
	m, cmd := press(t, newForm(stub), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.cancelled || cmd == nil || len(stub.requests) != 0 {
		t.Errorf("cancelled=%v requests=%d", m.cancelled, len(stub.requests))
	}
}

func TestEditSessionModel_Preview(t *testing.T) {
	m := newForm(&saveStub{})

	summary, ok := m.preview()
	if !ok || !strings.Contains(summary, "4.25 hours") {
		t.Errorf("preview = %q, %v", summary, ok)
	}

	m.inputs[FieldEnd].SetValue("2024-01-20 07:00")
	if summary, ok := m.preview(); ok || !strings.Contains(summary, "after start") {
		t.Errorf("preview = %q, %v", summary, ok)
	}
}
