package parser

import (
	"testing"
	"time"
)

var ref = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"datetime-local", "2024-03-14T09:15", time.Date(2024, 3, 14, 9, 15, 0, 0, time.UTC), false},
		{"space separated with seconds", "2024-03-14 09:15:30", time.Date(2024, 3, 14, 9, 15, 30, 0, time.UTC), false},
		{"day first", "14/03/2024 17:00", time.Date(2024, 3, 14, 17, 0, 0, 0, time.UTC), false},
		{"rfc3339", "2024-03-14T09:15:00Z", time.Date(2024, 3, 14, 9, 15, 0, 0, time.UTC), false},
		{"now", "NOW", ref, false},
		{"minutes ago", "45 minutes ago", ref.Add(-45 * time.Minute), false},
		{"short hours ago", "2h ago", ref.Add(-2 * time.Hour), false},
		{"days ago", "1 day ago", ref.AddDate(0, 0, -1), false},
		{"empty", "  ", time.Time{}, true},
		{"garbage", "yesterday-ish", time.Time{}, true},
		{"impossible date", "2024-02-30 10:00", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input, ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimestamp(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"15/02/2024", time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), false},
		{"today", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"2024-13-01", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input, ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"25", 25, false},
		{"$18.50", 18.5, false},
		{"12,75", 12.75, false},
		{"-3", 0, true},
		{"NaN", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePeriodLength(t *testing.T) {
	if got, err := ParsePeriodLength(" 14 "); err != nil || got != 14 {
		t.Errorf("ParsePeriodLength(14) = %d, %v", got, err)
	}
	for _, bad := range []string{"0", "-1", "two", "400"} {
		if _, err := ParsePeriodLength(bad); err == nil {
			t.Errorf("ParsePeriodLength(%q) should fail", bad)
		}
	}
}
