package db

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/balkashynov/timesheet/internal/models"
)

func TestCreateJob(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateJobRequest
		wantErr bool
		check   func(t *testing.T, job *models.Job)
	}{
		{
			name: "defaults",
			req:  CreateJobRequest{Name: "  Cafe  "},
			check: func(t *testing.T, job *models.Job) {
				if job.Name != "Cafe" || job.Rate != 0 {
					t.Errorf("job = %+v", job)
				}
				if job.PayPeriodStart != "2024-01-20" || job.PayPeriodLength != 14 || job.RangeMode != models.RangeModePayPeriod {
					t.Errorf("period settings = %+v", job)
				}
			},
		},
		{
			name: "non-finite rate becomes zero",
			req:  CreateJobRequest{Name: "Bar", Rate: math.NaN()},
			check: func(t *testing.T, job *models.Job) {
				if job.Rate != 0 {
					t.Errorf("Rate = %v, want 0", job.Rate)
				}
			},
		},
		{
			name: "weekly mode",
			req:  CreateJobRequest{Name: "Shop", RangeMode: models.RangeModeWeekly},
			check: func(t *testing.T, job *models.Job) {
				if job.RangeMode != models.RangeModeWeekly {
					t.Errorf("RangeMode = %s", job.RangeMode)
				}
			},
		},
		{name: "empty name", req: CreateJobRequest{Name: "   "}, wantErr: true},
		{name: "negative rate", req: CreateJobRequest{Name: "X", Rate: -1}, wantErr: true},
		{name: "unknown mode", req: CreateJobRequest{Name: "X", RangeMode: "monthly"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := store.CreateJob(ctx, tt.req)
			if tt.wantErr {
				if !IsValidation(err) {
					t.Errorf("error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateJob() error = %v", err)
			}
			tt.check(t, job)
		})
	}

	state, _ := store.Load(ctx)
	if len(state.Jobs) != 3 {
		t.Errorf("expected 3 stored jobs, got %d", len(state.Jobs))
	}
}

func TestRemoveJob(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to sessions", func(t *testing.T) {
		store, clock := newTestStore(t)
		cafe, _ := store.CreateJob(ctx, CreateJobRequest{Name: "Cafe"})
		bar, _ := store.CreateJob(ctx, CreateJobRequest{Name: "Bar"})
		for _, id := range []string{cafe.ID, cafe.ID, bar.ID, bar.ID, cafe.ID, cafe.ID} {
			if _, err := store.TogglePunch(ctx, id); err != nil {
				t.Fatal(err)
			}
			clock.Advance(time.Hour)
		}

		removed, count, err := store.RemoveJob(ctx, "Cafe")
		if err != nil {
			t.Fatalf("RemoveJob() error = %v", err)
		}
		if removed.ID != cafe.ID || count != 2 {
			t.Errorf("removed %s with %d sessions", removed.ID, count)
		}

		state, _ := store.Load(ctx)
		if len(state.Jobs) != 1 || state.Jobs[0].ID != bar.ID {
			t.Errorf("jobs = %+v", state.Jobs)
		}
		if len(state.Sessions) != 1 || state.Sessions[0].JobID != bar.ID {
			t.Errorf("sessions = %+v", state.Sessions)
		}
	})

	t.Run("refused while punched in", func(t *testing.T) {
		store, _ := newTestStore(t)
		cafe, _ := store.CreateJob(ctx, CreateJobRequest{Name: "Cafe"})
		if _, err := store.TogglePunch(ctx, cafe.ID); err != nil {
			t.Fatal(err)
		}
		before, _ := store.Dump(ctx)

		_, _, err := store.RemoveJob(ctx, cafe.ID)
		if !IsPrecondition(err) {
			t.Fatalf("error = %v, want precondition error", err)
		}

		after, _ := store.Dump(ctx)
		if !bytes.Equal(before, after) {
			t.Errorf("state changed:\n%s\n%s", before, after)
		}
	})

	t.Run("unknown job", func(t *testing.T) {
		store, _ := newTestStore(t)
		if _, _, err := store.RemoveJob(ctx, "ghost"); !errors.Is(err, ErrJobNotFound) {
			t.Errorf("error = %v, want ErrJobNotFound", err)
		}
	})
}

func TestJobSettings(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()
	job, _ := store.CreateJob(ctx, CreateJobRequest{Name: "Cafe"})

	t.Run("rate", func(t *testing.T) {
		updated, err := store.SetRate(ctx, job.ID, 31.25)
		if err != nil || updated.Rate != 31.25 {
			t.Errorf("SetRate() = %+v, %v", updated, err)
		}
		if _, err := store.SetRate(ctx, job.ID, -2); !IsValidation(err) {
			t.Errorf("negative rate error = %v", err)
		}
	})

	t.Run("pay period", func(t *testing.T) {
		anchor := time.Date(2023, 12, 4, 0, 0, 0, 0, time.UTC)
		length := 7
		updated, err := store.SetPayPeriod(ctx, job.ID, PayPeriodUpdate{Start: &anchor, Length: &length})
		if err != nil {
			t.Fatalf("SetPayPeriod() error = %v", err)
		}
		if updated.PayPeriodStart != "2023-12-04" || updated.PayPeriodLength != 7 {
			t.Errorf("job = %+v", updated)
		}

		zero := 0
		updated, _ = store.SetPayPeriod(ctx, job.ID, PayPeriodUpdate{Length: &zero})
		if updated.PayPeriodLength != models.DefaultPayPeriodLength || updated.PayPeriodStart != "2023-12-04" {
			t.Errorf("job = %+v", updated)
		}
	})

	t.Run("range mode", func(t *testing.T) {
		updated, err := store.SetRangeMode(ctx, "cafe", models.RangeModeWeekly)
		if err != nil || updated.RangeMode != models.RangeModeWeekly {
			t.Errorf("SetRangeMode() = %+v, %v", updated, err)
		}
		if _, err := store.SetRangeMode(ctx, "cafe", "fortnight"); !IsValidation(err) {
			t.Errorf("unknown mode error = %v", err)
		}
	})

	t.Run("week start", func(t *testing.T) {
		// 2024-01-20 is a Saturday
		got, err := store.ResetWeekStart(ctx)
		if err != nil {
			t.Fatalf("ResetWeekStart() error = %v", err)
		}
		if got.Format(models.DateLayout) != "2024-01-14" {
			t.Errorf("week start = %v, want 2024-01-14", got)
		}

		clock.Advance(48 * time.Hour)
		if _, err := store.SetWeekStart(ctx, time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)); err != nil {
			t.Fatal(err)
		}
		state, _ := store.Load(ctx)
		if state.WeekStart == nil || *state.WeekStart != "2024-01-17" {
			t.Errorf("WeekStart = %v", state.WeekStart)
		}
	})
}

func TestResolveJob(t *testing.T) {
	state := models.NewState()
	state.Jobs = []models.Job{
		{ID: "a1b2c3d4-0000", Name: "Cafe"},
		{ID: "a1b2ffff-0000", Name: "Bar"},
		{ID: "99999999-0000", Name: "bar"},
	}

	tests := []struct {
		ref         string
		wantID      string
		wantErr     error
		wantInvalid bool
	}{
		{ref: "a1b2c3d4-0000", wantID: "a1b2c3d4-0000"},
		{ref: "CAFE", wantID: "a1b2c3d4-0000"},
		{ref: "a1b2c", wantID: "a1b2c3d4-0000"},
		{ref: "a1b2", wantInvalid: true},
		{ref: "bar", wantInvalid: true},
		{ref: "a1b", wantErr: ErrJobNotFound},
		{ref: "", wantErr: ErrJobNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			job, err := resolveJob(state, tt.ref)
			switch {
			case tt.wantInvalid:
				if !IsValidation(err) {
					t.Errorf("error = %v, want validation error", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil || job.ID != tt.wantID {
					t.Errorf("resolveJob(%q) = %v, %v", tt.ref, job, err)
				}
			}
		})
	}
}
