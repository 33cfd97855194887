package period

import (
	"math"
	"testing"
	"time"

	"github.com/balkashynov/timesheet/internal/models"
)

func closed(id, jobID string, start time.Time, d time.Duration) models.Session {
	end := start.Add(d)
	return models.Session{ID: id, JobID: jobID, Start: start, End: &end}
}

func TestCalcTotals(t *testing.T) {
	r := ComputeRange(date(2024, 1, 1), 14, date(2024, 1, 20))

	sessions := []models.Session{
		closed("a", "job", time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC), 150*time.Minute),
		closed("b", "job", time.Date(2024, 1, 17, 13, 0, 0, 0, time.UTC), 75*time.Minute),
		// starts before the range, ends inside it
		closed("c", "job", time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC), 3*time.Hour),
		// another job
		closed("d", "other", time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC), time.Hour),
		// still running
		{ID: "e", JobID: "job", Start: time.Date(2024, 1, 18, 9, 0, 0, 0, time.UTC)},
	}

	got := CalcTotals(sessions, "job", r)
	if got.SessionCount != 2 {
		t.Errorf("SessionCount = %d, want 2", got.SessionCount)
	}
	if math.Abs(got.TotalHours-3.75) > 1e-9 {
		t.Errorf("TotalHours = %v, want 3.75", got.TotalHours)
	}
}

func TestCalcTotals_StartAnchored(t *testing.T) {
	r := WeekRange(date(2024, 5, 12))

	tests := []struct {
		name      string
		session   models.Session
		wantCount int
		wantHours float64
	}{
		{
			name:      "starts on the first instant",
			session:   closed("s", "job", r.Start, time.Hour),
			wantCount: 1,
			wantHours: 1,
		},
		{
			name:      "starts on the last instant and runs past the end",
			session:   closed("s", "job", r.End, 5*time.Hour),
			wantCount: 1,
			wantHours: 5,
		},
		{
			name:      "starts one millisecond before the range",
			session:   closed("s", "job", r.Start.Add(-time.Millisecond), 2*time.Hour),
			wantCount: 0,
		},
		{
			name:      "starts one millisecond after the range",
			session:   closed("s", "job", r.End.Add(time.Millisecond), time.Hour),
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcTotals([]models.Session{tt.session}, "job", r)
			if got.SessionCount != tt.wantCount {
				t.Errorf("SessionCount = %d, want %d", got.SessionCount, tt.wantCount)
			}
			if math.Abs(got.TotalHours-tt.wantHours) > 1e-9 {
				t.Errorf("TotalHours = %v, want %v", got.TotalHours, tt.wantHours)
			}
		})
	}
}

func TestEarnings(t *testing.T) {
	got := Earnings(Totals{TotalHours: 3.75, SessionCount: 2}, 20)
	if got != 75 {
		t.Errorf("Earnings = %v, want 75", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want string
	}{
		{"zero", start, "00:00:00"},
		{"minutes and seconds", start.Add(5*time.Minute + 7*time.Second), "00:05:07"},
		{"over a day", start.Add(26*time.Hour + 3*time.Minute), "26:03:00"},
		{"negative clamps", start.Add(-time.Minute), "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatElapsed(start, tt.end); got != tt.want {
				t.Errorf("FormatElapsed() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatHoursAndMoney(t *testing.T) {
	if got := FormatHours(3.75); got != "3.75" {
		t.Errorf("FormatHours = %q", got)
	}
	if got := FormatMoney(0); got != "0.00" {
		t.Errorf("FormatMoney = %q", got)
	}
	if got := FormatMoneyGrouped(1234.5); got != "1,234.50" {
		t.Errorf("FormatMoneyGrouped = %q", got)
	}
	if got := FormatDate(date(2024, 1, 15)); got != "Jan 15, 2024" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestDailyHours(t *testing.T) {
	r := WeekRange(date(2024, 1, 14))
	sessions := []models.Session{
		closed("a", "job", time.Date(2024, 1, 14, 9, 0, 0, 0, time.UTC), 2*time.Hour),
		closed("b", "job", time.Date(2024, 1, 14, 18, 0, 0, 0, time.UTC), 30*time.Minute),
		closed("c", "job", time.Date(2024, 1, 16, 23, 0, 0, 0, time.UTC), 3*time.Hour),
		closed("d", "job", time.Date(2024, 1, 21, 9, 0, 0, 0, time.UTC), time.Hour),
		closed("e", "other", time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), time.Hour),
		{ID: "f", JobID: "job", Start: time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)},
	}

	got := DailyHours(sessions, "job", r)
	want := []float64{2.5, 0, 3, 0, 0, 0, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d = %v, want %v", i, got[i], want[i])
		}
	}

	var sum float64
	for _, h := range got {
		sum += h
	}
	if totals := CalcTotals(sessions, "job", r); sum != totals.TotalHours {
		t.Errorf("daily sum %v != total %v", sum, totals.TotalHours)
	}
}
