package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"yildizli-agac-api/modules/proposal/entity"
)

// SlotField names the part of a slot that UpdateSlot and the pickers act on.
type SlotField string

const (
	FieldDate SlotField = "date"
	FieldHour SlotField = "hour"
)

var (
	ErrSlotIndex = errors.New("slot index out of range")
	ErrSlotField = errors.New("unknown slot field")
	ErrPastDate  = errors.New("date is in the past")
	ErrDateTaken = errors.New("date already used by another slot")
)

type EditorOption func(*Editor)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) EditorOption {
	return func(e *Editor) { e.now = now }
}

// WithPendingError restores a validation error saved with the draft.
func WithPendingError(err error) EditorOption {
	return func(e *Editor) { e.pendingErr = err }
}

// WithLocation sets the zone "today" is computed in.
func WithLocation(loc *time.Location) EditorOption {
	return func(e *Editor) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// Editor owns one participant's ProposalSet while it is being composed.
// It is not safe for concurrent use.
type Editor struct {
	slots      entity.ProposalSet
	pickers    []entity.SlotPickers
	theirDates map[string]struct{}
	now        func() time.Time
	loc        *time.Location
	pendingErr error
}

// NewEditor copies set and pickers; the caller's slices are never mutated.
// Missing picker entries start closed.
func NewEditor(set entity.ProposalSet, pickers []entity.SlotPickers, counterpart []string, opts ...EditorOption) *Editor {
	e := &Editor{
		slots:      set.Clone(),
		theirDates: CounterpartDates(counterpart),
		now:        time.Now,
		loc:        time.Local,
	}
	if len(e.slots) > entity.MaxSlots {
		e.slots = e.slots[:entity.MaxSlots]
	}
	e.pickers = make([]entity.SlotPickers, len(e.slots))
	for i := range e.pickers {
		if i < len(pickers) {
			e.pickers[i] = pickers[i]
		} else {
			e.pickers[i] = entity.ClosedPickers()
		}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Slots() entity.ProposalSet {
	return e.slots.Clone()
}

func (e *Editor) Pickers() []entity.SlotPickers {
	out := make([]entity.SlotPickers, len(e.pickers))
	copy(out, e.pickers)
	return out
}

func (e *Editor) Len() int {
	return len(e.slots)
}

// Today is the current calendar day as an ISO date.
func (e *Editor) Today() string {
	return e.now().In(e.loc).Format(isoDateLayout)
}

// CounterpartDates is the set of dates the picker lets a user reuse across
// slots.
func (e *Editor) CounterpartDates() map[string]struct{} {
	return e.theirDates
}

// PendingError is the last validation error, cleared by any UpdateSlot.
func (e *Editor) PendingError() error {
	return e.pendingErr
}

// AddSlot appends an empty slot. It reports false when the set is full.
func (e *Editor) AddSlot() bool {
	if len(e.slots) >= entity.MaxSlots {
		return false
	}
	e.slots = append(e.slots, entity.TimeSlot{})
	e.pickers = append(e.pickers, entity.ClosedPickers())
	return true
}

// RemoveSlot drops the slot at index together with its pickers.
func (e *Editor) RemoveSlot(index int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	e.slots = append(e.slots[:index], e.slots[index+1:]...)
	e.pickers = append(e.pickers[:index], e.pickers[index+1:]...)
	return nil
}

// UpdateSlot sets one field of the slot at index. Dates go through
// CanSelectDate; hours must be on the hour.
func (e *Editor) UpdateSlot(index int, field SlotField, value string) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	switch field {
	case FieldDate:
		if value != "" {
			if err := e.CanSelectDate(index, value); err != nil {
				return err
			}
		}
		e.slots[index].Date = value
	case FieldHour:
		if value != "" {
			hour, err := normalizeWholeHour(value)
			if err != nil {
				return err
			}
			value = hour
		}
		e.slots[index].Hour = value
	default:
		return fmt.Errorf("%w: %q", ErrSlotField, field)
	}

	e.pendingErr = nil
	e.pickers[index] = entity.ClosedPickers()
	return nil
}

// MoveUp swaps the slot with the one before it. No-op at index 0.
func (e *Editor) MoveUp(index int) bool {
	if index <= 0 || index >= len(e.slots) {
		return false
	}
	e.swap(index, index-1)
	return true
}

// MoveDown swaps the slot with the one after it. No-op at the last index.
func (e *Editor) MoveDown(index int) bool {
	if index < 0 || index >= len(e.slots)-1 {
		return false
	}
	e.swap(index, index+1)
	return true
}

func (e *Editor) swap(i, j int) {
	e.slots[i], e.slots[j] = e.slots[j], e.slots[i]
	e.pickers[i], e.pickers[j] = e.pickers[j], e.pickers[i]
}

// CanSelectDate reports whether date may be chosen for the slot at index.
// Past days are never selectable. A date used by a sibling slot is blocked
// unless the counterpart proposed it too.
func (e *Editor) CanSelectDate(index int, date string) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	if _, err := parseISO(date); err != nil {
		return err
	}
	if date < e.Today() {
		return fmt.Errorf("%w: %s", ErrPastDate, date)
	}
	if _, ok := e.theirDates[date]; ok {
		return nil
	}
	for i, slot := range e.slots {
		if i != index && slot.Date == date {
			return fmt.Errorf("%w: %s", ErrDateTaken, date)
		}
	}
	return nil
}

// OpenPicker opens one picker and closes every other one.
func (e *Editor) OpenPicker(index int, field SlotField) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	if field != FieldDate && field != FieldHour {
		return fmt.Errorf("%w: %q", ErrSlotField, field)
	}
	e.CloseAll()
	if field == FieldDate {
		e.pickers[index].Date = entity.PickerOpen
	} else {
		e.pickers[index].Hour = entity.PickerOpen
	}
	return nil
}

func (e *Editor) ClosePicker(index int, field SlotField) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	switch field {
	case FieldDate:
		e.pickers[index].Date = entity.PickerClosed
	case FieldHour:
		e.pickers[index].Hour = entity.PickerClosed
	default:
		return fmt.Errorf("%w: %q", ErrSlotField, field)
	}
	return nil
}

func (e *Editor) CloseAll() {
	for i := range e.pickers {
		e.pickers[i] = entity.ClosedPickers()
	}
}

func (e *Editor) PickerState(index int, field SlotField) (entity.PickerState, error) {
	if err := e.checkIndex(index); err != nil {
		return "", err
	}
	switch field {
	case FieldDate:
		return e.pickers[index].Date, nil
	case FieldHour:
		return e.pickers[index].Hour, nil
	}
	return "", fmt.Errorf("%w: %q", ErrSlotField, field)
}

// Overlaps runs DetectOverlaps against the counterpart entries.
func (e *Editor) Overlaps(counterpart []string) OverlapResult {
	return DetectOverlaps(e.slots, counterpart)
}

// Validate runs the submission gate and keeps the result as PendingError.
func (e *Editor) Validate(requireDistinct bool) error {
	rules := Rules{
		RequiredSlots:        entity.MaxSlots,
		RequireDistinctDates: requireDistinct,
		Today:                e.Today(),
	}
	e.pendingErr = Validate(e.slots, rules)
	return e.pendingErr
}

func (e *Editor) checkIndex(index int) error {
	if index < 0 || index >= len(e.slots) {
		return fmt.Errorf("%w: %d", ErrSlotIndex, index)
	}
	return nil
}

func normalizeWholeHour(value string) (string, error) {
	hour, err := NormalizeHour(value)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(hour, ":00") {
		return "", fmt.Errorf("%w: %q must be on the hour", ErrInvalidHour, value)
	}
	return hour, nil
}
