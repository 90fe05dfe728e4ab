package models

import (
	"encoding/json"
	"testing"
)

func TestDecodeCheckin(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantOK bool
		want   DailyCheckin
	}{
		{
			name:   "valid record",
			raw:    `{"dateKey":"2024-01-05","energy":7,"mood":5,"focus":8,"updatedAt":1704450600000}`,
			wantOK: true,
			want:   DailyCheckin{DateKey: "2024-01-05", Energy: 7, Mood: 5, Focus: 8, UpdatedAt: 1704450600000},
		},
		{
			name:   "extra fields ignored",
			raw:    `{"dateKey":"2024-01-05","energy":1,"mood":1,"focus":1,"updatedAt":1,"note":"later"}`,
			wantOK: true,
			want:   DailyCheckin{DateKey: "2024-01-05", Energy: 1, Mood: 1, Focus: 1, UpdatedAt: 1},
		},
		{
			name:   "missing focus",
			raw:    `{"dateKey":"2024-01-05","energy":7,"mood":5,"updatedAt":1}`,
			wantOK: false,
		},
		{
			name:   "string energy",
			raw:    `{"dateKey":"2024-01-05","energy":"high","mood":5,"focus":8,"updatedAt":1}`,
			wantOK: false,
		},
		{
			name:   "not an object",
			raw:    `"2024-01-05"`,
			wantOK: false,
		},
		{
			name:   "null element",
			raw:    `null`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeCheckin(json.RawMessage(tt.raw))
			if ok != tt.wantOK {
				t.Fatalf("DecodeCheckin() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("DecodeCheckin() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeReminderSettings(t *testing.T) {
	tests := []struct {
		name string
		data string
		want ReminderSettings
	}{
		{
			name: "empty string gives defaults",
			data: "",
			want: ReminderSettings{Enabled: false, Hour: 20, Minute: 0},
		},
		{
			name: "invalid json gives defaults",
			data: `not json at all`,
			want: ReminderSettings{Enabled: false, Hour: 20, Minute: 0},
		},
		{
			name: "complete settings",
			data: `{"enabled":true,"hour":7,"minute":30,"notificationId":"abc"}`,
			want: ReminderSettings{Enabled: true, Hour: 7, Minute: 30, NotificationID: "abc"},
		},
		{
			name: "missing fields keep defaults",
			data: `{"enabled":true}`,
			want: ReminderSettings{Enabled: true, Hour: 20, Minute: 0},
		},
		{
			name: "fractional values truncate toward zero",
			data: `{"enabled":true,"hour":9.9,"minute":59.9}`,
			want: ReminderSettings{Enabled: true, Hour: 9, Minute: 59},
		},
		{
			name: "truncate happens before clamping",
			data: `{"enabled":true,"hour":23.9,"minute":0.5}`,
			want: ReminderSettings{Enabled: true, Hour: 23, Minute: 0},
		},
		{
			name: "out of range values clamp",
			data: `{"enabled":true,"hour":-2,"minute":75}`,
			want: ReminderSettings{Enabled: true, Hour: 0, Minute: 59},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeReminderSettings(tt.data); got != tt.want {
				t.Errorf("DecodeReminderSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
