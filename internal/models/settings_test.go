package models

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/julianstephens/chime/internal/constants"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.NotificationSound != constants.SoundBeep {
		t.Errorf("expected default sound beep, got %s", s.NotificationSound)
	}
	if s.DarkMode {
		t.Error("expected dark mode off by default")
	}
	if s.NotificationVolume != 80 {
		t.Errorf("expected default volume 80, got %d", s.NotificationVolume)
	}
	if !s.Vibration {
		t.Error("expected vibration on by default")
	}
	if s.DefaultInterval != 15 {
		t.Errorf("expected default interval 15, got %d", s.DefaultInterval)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"bell", func(s *Settings) { s.NotificationSound = constants.SoundBell }, false},
		{"unknown sound", func(s *Settings) { s.NotificationSound = "gong" }, true},
		{"volume zero", func(s *Settings) { s.NotificationVolume = 0 }, false},
		{"volume max", func(s *Settings) { s.NotificationVolume = 100 }, false},
		{"volume negative", func(s *Settings) { s.NotificationVolume = -1 }, true},
		{"volume too high", func(s *Settings) { s.NotificationVolume = 101 }, true},
		{"interval 60", func(s *Settings) { s.DefaultInterval = 60 }, false},
		{"interval 7", func(s *Settings) { s.DefaultInterval = 7 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeSettings(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		data := `{"notificationSound":"chime","darkMode":true,"notificationVolume":40,"vibration":false,"defaultInterval":30}`
		s, fixed, err := DecodeSettings(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fixed) != 0 {
			t.Errorf("expected no fixed fields, got %v", fixed)
		}
		want := Settings{NotificationSound: constants.SoundChime, DarkMode: true, NotificationVolume: 40, Vibration: false, DefaultInterval: 30}
		if s != want {
			t.Errorf("got %+v, want %+v", s, want)
		}
	})

	t.Run("missing fields keep defaults", func(t *testing.T) {
		s, _, err := DecodeSettings(`{"darkMode":true}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !s.DarkMode {
			t.Error("expected dark mode from record")
		}
		if !s.Vibration {
			t.Error("expected vibration to keep its default of true")
		}
		if s.NotificationVolume != constants.DefaultNotificationVolume {
			t.Errorf("expected default volume, got %d", s.NotificationVolume)
		}
	})

	t.Run("out of range fields are reset", func(t *testing.T) {
		s, fixed, err := DecodeSettings(`{"notificationSound":"gong","notificationVolume":250,"defaultInterval":7}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != DefaultSettings() {
			t.Errorf("expected defaults, got %+v", s)
		}
		for _, field := range []string{"notificationSound", "notificationVolume", "defaultInterval"} {
			if !slices.Contains(fixed, field) {
				t.Errorf("expected %s to be reported as fixed, got %v", field, fixed)
			}
		}
	})

	t.Run("malformed record", func(t *testing.T) {
		s, _, err := DecodeSettings(`{not json`)
		if err == nil {
			t.Fatal("expected parse error")
		}
		if s != DefaultSettings() {
			t.Errorf("expected defaults on parse error, got %+v", s)
		}
	})
}

func TestEncodeSettingsFieldNames(t *testing.T) {
	data, err := EncodeSettings(DefaultSettings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, field := range []string{`"notificationSound":"beep"`, `"darkMode":false`, `"notificationVolume":80`, `"vibration":true`, `"defaultInterval":15`} {
		if !strings.Contains(data, field) {
			t.Errorf("encoded record %s missing %s", data, field)
		}
	}
}

func TestTimeRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		tr      TimeRange
		wantErr error
	}{
		{"short bounds", TimeRange{StartTime: "09:00", EndTime: "17:00", Interval: 15}, nil},
		{"long bounds", TimeRange{StartTime: "09:00:00", EndTime: "17:00:00", Interval: 5}, nil},
		{"empty bounds", TimeRange{Interval: 60}, nil},
		{"bad interval", TimeRange{StartTime: "09:00", EndTime: "17:00", Interval: 45}, ErrInvalidInterval},
		{"zero interval", TimeRange{Interval: 0}, ErrInvalidInterval},
		{"bad start", TimeRange{StartTime: "9am", EndTime: "17:00", Interval: 15}, ErrInvalidTime},
		{"bad end", TimeRange{StartTime: "09:00", EndTime: "25:00", Interval: 15}, ErrInvalidTime},
		{"unpadded start", TimeRange{StartTime: "9:00", EndTime: "17:00", Interval: 15}, ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tr.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDecodeReminderSettings(t *testing.T) {
	t.Run("flat record", func(t *testing.T) {
		rs, err := DecodeReminderSettings(`{"startTime":"09:00","endTime":"17:00","interval":20,"isActive":true}`, 15)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := ReminderSettings{TimeRange: TimeRange{StartTime: "09:00", EndTime: "17:00", Interval: 20}, IsActive: true}
		if rs != want {
			t.Errorf("got %+v, want %+v", rs, want)
		}
	})

	t.Run("missing interval uses default", func(t *testing.T) {
		rs, err := DecodeReminderSettings(`{"startTime":"09:00","endTime":"17:00"}`, 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rs.Interval != 30 {
			t.Errorf("expected interval 30, got %d", rs.Interval)
		}
	})

	t.Run("incomplete window is never active", func(t *testing.T) {
		rs, err := DecodeReminderSettings(`{"startTime":"","endTime":"17:00","interval":15,"isActive":true}`, 15)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rs.IsActive {
			t.Error("expected inactive reminder without a start time")
		}
	})

	t.Run("malformed record", func(t *testing.T) {
		rs, err := DecodeReminderSettings(`[]`, 10)
		if err == nil {
			t.Fatal("expected parse error")
		}
		if rs.Interval != 10 || rs.IsActive || rs.Complete() {
			t.Errorf("expected empty reminder with default interval, got %+v", rs)
		}
	})
}

func TestEncodeReminderSettingsIsFlat(t *testing.T) {
	data, err := EncodeReminderSettings(ReminderSettings{TimeRange: TimeRange{StartTime: "08:00", EndTime: "12:00", Interval: 10}, IsActive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"startTime":"08:00","endTime":"12:00","interval":10,"isActive":true}`
	if data != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
