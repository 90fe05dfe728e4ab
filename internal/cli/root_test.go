package cli

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "evening", input: "20:00", wantHour: 20, wantMinute: 0},
		{name: "morning", input: "07:30", wantHour: 7, wantMinute: 30},
		{name: "unpadded hour", input: "7:30", wantHour: 7, wantMinute: 30},
		{name: "midnight", input: "00:00", wantHour: 0, wantMinute: 0},
		{name: "last minute", input: "23:59", wantHour: 23, wantMinute: 59},
		{name: "hour too large", input: "24:00", wantErr: true},
		{name: "minute too large", input: "20:60", wantErr: true},
		{name: "negative hour", input: "-1:00", wantErr: true},
		{name: "missing minute", input: "20", wantErr: true},
		{name: "too many parts", input: "20:00:00", wantErr: true},
		{name: "not numeric", input: "eight:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseClock(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClock(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) error = %v", tt.input, err)
			}
			if hour != tt.wantHour || minute != tt.wantMinute {
				t.Errorf("ParseClock(%q) = (%d, %d), want (%d, %d)", tt.input, hour, minute, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	want := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}

	for _, bad := range []string{"01/05/2024", "2024-13-01", "yesterday", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", bad)
		}
	}
}

func TestValidateMetric(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{name: "lower bound", value: 1},
		{name: "upper bound", value: 10},
		{name: "middle", value: 5},
		{name: "zero", value: 0, wantErr: true},
		{name: "too large", value: 11, wantErr: true},
		{name: "negative", value: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMetric("energy", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMetric(energy, %d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
