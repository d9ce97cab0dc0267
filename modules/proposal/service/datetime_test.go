package service

import (
	"errors"
	"testing"
	"time"

	"yildizli-agac-api/modules/proposal/entity"
)

func TestToDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-12-27", "27 Aralık Cumartesi"},
		{"2025-12-28", "28 Aralık Pazar"},
		{"2026-01-01", "1 Ocak Perşembe"},
		{"2026-02-02", "2 Şubat Pazartesi"},
	}
	for _, tt := range tests {
		got, err := ToDisplay(tt.in)
		if err != nil {
			t.Fatalf("ToDisplay(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ToDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ToDisplay("27/12/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("error = %v, want ErrInvalidDate", err)
	}
}

func TestParseForeign_RoundTripsEveryDayOfYear(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() == 2025; d = d.AddDate(0, 0, 1) {
		iso := d.Format(isoDateLayout)
		display, err := ToDisplayWithYear(iso)
		if err != nil {
			t.Fatalf("ToDisplayWithYear(%q) error: %v", iso, err)
		}
		got, err := ParseForeign(display)
		if err != nil {
			t.Fatalf("ParseForeign(%q) error: %v", display, err)
		}
		if got != iso {
			t.Fatalf("ParseForeign(%q) = %q, want %q", display, got, iso)
		}
	}
}

func TestParseForeign_Formats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"legacy", "27 Aralık 2025 - 14:00", "2025-12-27"},
		{"with weekday", "27 Aralık 2025 Cumartesi - 14:00", "2025-12-27"},
		{"date only", "3 Ocak 2026", "2026-01-03"},
		{"upper case", "27 ARALIK 2025 - 14:00", "2025-12-27"},
		{"extra spaces", "  27   Aralık  2025  -  14:00 ", "2025-12-27"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseForeign(tt.in)
			if err != nil {
				t.Fatalf("ParseForeign error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseForeign = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseForeign_Failures(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown month", "27 Decembre 2025 - 14:00"},
		{"no match", "yarın öğleden sonra"},
		{"day out of range", "31 Şubat 2026 - 10:00"},
		{"unknown weekday", "27 Aralık 2025 Funday - 14:00"},
		{"bad hour", "27 Aralık 2025 - 25:00"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseForeign(tt.in)
			if !errors.Is(err, ErrUnparseableDate) {
				t.Fatalf("error = %v, want ErrUnparseableDate", err)
			}
			var pErr *ParseError
			if !errors.As(err, &pErr) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if pErr.Input != tt.in {
				t.Fatalf("Input = %q, want %q", pErr.Input, tt.in)
			}
		})
	}
}

func TestParseForeignSlot(t *testing.T) {
	got, err := ParseForeignSlot("5 Ocak 2026 Pazartesi - 9:00")
	if err != nil {
		t.Fatalf("ParseForeignSlot error: %v", err)
	}
	want := entity.TimeSlot{Date: "2026-01-05", Hour: "09:00"}
	if got != want {
		t.Fatalf("slot = %+v, want %+v", got, want)
	}

	if _, err := ParseForeignSlot("5 Ocak 2026"); !errors.Is(err, ErrUnparseableDate) {
		t.Fatalf("missing time error = %v, want ErrUnparseableDate", err)
	}
}

func TestNormalizeHour(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"9:00", "09:00", false},
		{"14:00", "14:00", false},
		{" 08:30 ", "08:30", false},
		{"24:00", "", true},
		{"12:5", "", true},
		{"noon", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeHour(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidHour) {
				t.Fatalf("NormalizeHour(%q) error = %v, want ErrInvalidHour", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("NormalizeHour(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestFormatForeign(t *testing.T) {
	got, err := FormatForeign(entity.TimeSlot{Date: "2025-12-27", Hour: "14:00"})
	if err != nil {
		t.Fatalf("FormatForeign error: %v", err)
	}
	if got != "27 Aralık 2025 Cumartesi - 14:00" {
		t.Fatalf("FormatForeign = %q", got)
	}

	slot, err := ParseForeignSlot(got)
	if err != nil {
		t.Fatalf("ParseForeignSlot error: %v", err)
	}
	if slot.Date != "2025-12-27" || slot.Hour != "14:00" {
		t.Fatalf("round trip = %+v", slot)
	}
}

func TestMatchesDisplay(t *testing.T) {
	if !MatchesDisplay("27 Aralık  Cumartesi - 14:00", "27 ARALIK cumartesi - 14:00") {
		t.Fatalf("expected case and whitespace to be ignored")
	}
	if MatchesDisplay("27 Aralık Cumartesi - 14:00", "27 Aralık Cumartesi - 15:00") {
		t.Fatalf("different hours must not match")
	}
}
