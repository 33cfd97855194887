package models

import (
	"testing"
	"time"
)

func TestCheckActiveIndex(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name    string
		state   State
		wantErr bool
	}{
		{
			name: "consistent",
			state: State{
				Jobs: []Job{{ID: "a", ActiveSessionID: "s2"}, {ID: "b"}},
				Sessions: []Session{
					{ID: "s1", JobID: "a", Start: start, End: &end},
					{ID: "s2", JobID: "a", Start: end},
				},
			},
		},
		{
			name: "pointer to a closed session",
			state: State{
				Jobs:     []Job{{ID: "a", ActiveSessionID: "s1"}},
				Sessions: []Session{{ID: "s1", JobID: "a", Start: start, End: &end}},
			},
			wantErr: true,
		},
		{
			name: "open session without pointer",
			state: State{
				Jobs:     []Job{{ID: "a"}},
				Sessions: []Session{{ID: "s1", JobID: "a", Start: start}},
			},
			wantErr: true,
		},
		{
			name: "two open sessions",
			state: State{
				Jobs: []Job{{ID: "a", ActiveSessionID: "s1"}},
				Sessions: []Session{
					{ID: "s1", JobID: "a", Start: start},
					{ID: "s2", JobID: "a", Start: end},
				},
			},
			wantErr: true,
		},
		{
			name: "pointer to another job's session",
			state: State{
				Jobs: []Job{{ID: "a", ActiveSessionID: "s1"}, {ID: "b"}},
				Sessions: []Session{
					{ID: "s1", JobID: "b", Start: start},
				},
			},
			wantErr: true,
		},
		{
			name: "orphaned open session",
			state: State{
				Sessions: []Session{{ID: "s1", JobID: "gone", Start: start}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.CheckActiveIndex()
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckActiveIndex() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJobPeriodLength(t *testing.T) {
	if got := (Job{PayPeriodLength: -3}).PeriodLength(); got != 1 {
		t.Errorf("PeriodLength() = %d, want 1", got)
	}
	if got := (Job{PayPeriodLength: 14}).PeriodLength(); got != 14 {
		t.Errorf("PeriodLength() = %d, want 14", got)
	}
}
