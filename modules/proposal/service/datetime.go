package service

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"yildizli-agac-api/core/utils"
	"yildizli-agac-api/modules/proposal/entity"
)

const isoDateLayout = "2006-01-02"

var turkishMonths = [12]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// Indexed by time.Weekday, so Sunday comes first.
var turkishWeekdays = [7]string{
	"Pazar", "Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi",
}

var (
	monthByFolded   = map[string]time.Month{}
	weekdayByFolded = map[string]time.Weekday{}
)

func init() {
	for i, name := range turkishMonths {
		monthByFolded[utils.FoldTurkish(name)] = time.Month(i + 1)
	}
	for i, name := range turkishWeekdays {
		weekdayByFolded[utils.FoldTurkish(name)] = time.Weekday(i)
	}
}

// "<day> <month> <year>[ <weekday>][ - HH:MM]"
var foreignPattern = regexp.MustCompile(`^\s*(\d{1,2})\s+(\p{L}+)\s+(\d{4})(?:\s+(\p{L}+))?\s*(?:-\s*(\d{1,2}):(\d{2}))?\s*$`)

var (
	ErrUnparseableDate = errors.New("unparseable date")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidHour     = errors.New("invalid hour")
)

// ParseError reports a counterpart entry that could not be normalized.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrUnparseableDate
}

func parseISO(isoDate string) (time.Time, error) {
	t, err := time.Parse(isoDateLayout, isoDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, isoDate)
	}
	return t, nil
}

// ToDisplay renders an ISO date as "27 Aralık Cumartesi".
func ToDisplay(isoDate string) (string, error) {
	t, err := parseISO(isoDate)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s %s", t.Day(), turkishMonths[t.Month()-1], turkishWeekdays[t.Weekday()]), nil
}

// ToDisplayWithYear renders an ISO date as "27 Aralık 2025 Cumartesi".
func ToDisplayWithYear(isoDate string) (string, error) {
	t, err := parseISO(isoDate)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s %d %s", t.Day(), turkishMonths[t.Month()-1], t.Year(), turkishWeekdays[t.Weekday()]), nil
}

// FormatLongDate renders t as "25 Aralık 2025".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), turkishMonths[t.Month()-1], t.Year())
}

// ParseForeign extracts the ISO date from a counterpart string such as
// "27 Aralık 2025 - 14:00" or "27 Aralık 2025 Cumartesi - 14:00". A weekday
// name, when present, is not checked against the date.
func ParseForeign(text string) (string, error) {
	date, _, err := parseForeign(text)
	return date, err
}

// ParseForeignSlot parses both the date and the " - HH:MM" tail.
func ParseForeignSlot(text string) (entity.TimeSlot, error) {
	date, hour, err := parseForeign(text)
	if err != nil {
		return entity.TimeSlot{}, err
	}
	if hour == "" {
		return entity.TimeSlot{}, &ParseError{Input: text, Reason: "missing time"}
	}
	return entity.TimeSlot{Date: date, Hour: hour}, nil
}

func parseForeign(text string) (date, hour string, err error) {
	m := foreignPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", &ParseError{Input: text, Reason: "unrecognized format"}
	}

	month, ok := monthByFolded[utils.FoldTurkish(m[2])]
	if !ok {
		return "", "", &ParseError{Input: text, Reason: fmt.Sprintf("unknown month %q", m[2])}
	}
	if m[4] != "" {
		if _, ok := weekdayByFolded[utils.FoldTurkish(m[4])]; !ok {
			return "", "", &ParseError{Input: text, Reason: fmt.Sprintf("unknown weekday %q", m[4])}
		}
	}

	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return "", "", &ParseError{Input: text, Reason: "day out of range"}
	}
	date = t.Format(isoDateLayout)

	if m[5] != "" {
		hour, err = NormalizeHour(m[5] + ":" + m[6])
		if err != nil {
			return "", "", &ParseError{Input: text, Reason: err.Error()}
		}
	}
	return date, hour, nil
}

// NormalizeHour turns "9:00" or "09:00" into "09:00".
func NormalizeHour(h string) (string, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(h), ":")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidHour, h)
	}
	hours, err1 := strconv.Atoi(hh)
	minutes, err2 := strconv.Atoi(mm)
	if err1 != nil || err2 != nil || len(mm) != 2 || hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidHour, h)
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes), nil
}

// FormatForeign renders a slot in the counterpart wire format,
// "27 Aralık 2025 Cumartesi - 14:00".
func FormatForeign(slot entity.TimeSlot) (string, error) {
	date, err := ToDisplayWithYear(slot.Date)
	if err != nil {
		return "", err
	}
	hour, err := NormalizeHour(slot.Hour)
	if err != nil {
		return "", err
	}
	return date + " - " + hour, nil
}

// DisplaySlot renders a participant slot as "27 Aralık Cumartesi - 14:00".
func DisplaySlot(slot entity.TimeSlot) (string, error) {
	date, err := ToDisplay(slot.Date)
	if err != nil {
		return "", err
	}
	hour, err := NormalizeHour(slot.Hour)
	if err != nil {
		return "", err
	}
	return date + " - " + hour, nil
}

// FoldDisplay lower-cases with Turkish rules and collapses whitespace.
func FoldDisplay(s string) string {
	return utils.FoldTurkish(s)
}

// MatchesDisplay is the loose display-string equality: case and spacing are
// ignored, nothing else is.
func MatchesDisplay(a, b string) bool {
	return FoldDisplay(a) == FoldDisplay(b)
}
