package service

import (
	"yildizli-agac-api/modules/proposal/entity"
)

// IndexedSlot is a participant slot that also appears in the counterpart's
// proposals. Index is its position in the participant's set.
type IndexedSlot struct {
	Index   int             `json:"index"`
	Slot    entity.TimeSlot `json:"slot"`
	Display string          `json:"display"`
}

// SkippedEntry is a counterpart entry left out of the comparison.
type SkippedEntry struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Err   error  `json:"-"`
}

type OverlapResult struct {
	Slots   []IndexedSlot  `json:"slots"`
	Skipped []SkippedEntry `json:"skipped,omitempty"`
}

func (r OverlapResult) Empty() bool {
	return len(r.Slots) == 0
}

// Contains reports whether the participant slot at index overlaps.
func (r OverlapResult) Contains(index int) bool {
	for _, s := range r.Slots {
		if s.Index == index {
			return true
		}
	}
	return false
}

// NormalizeCounterpart parses every counterpart entry into a slot. Entries
// that fail are returned in skipped, in input order.
func NormalizeCounterpart(counterpart []string) (slots []entity.TimeSlot, skipped []SkippedEntry) {
	slots = make([]entity.TimeSlot, 0, len(counterpart))
	for i, text := range counterpart {
		slot, err := ParseForeignSlot(text)
		if err != nil {
			skipped = append(skipped, SkippedEntry{Index: i, Text: text, Err: err})
			continue
		}
		slots = append(slots, slot)
	}
	return slots, skipped
}

// CounterpartDates returns the set of ISO dates the counterpart proposed.
// Entries with a parseable date but no time still count.
func CounterpartDates(counterpart []string) map[string]struct{} {
	dates := make(map[string]struct{}, len(counterpart))
	for _, text := range counterpart {
		date, err := ParseForeign(text)
		if err != nil {
			continue
		}
		dates[date] = struct{}{}
	}
	return dates
}

// DetectOverlaps returns the complete participant slots whose (date, hour)
// pair equals a counterpart proposal. Incomplete or malformed participant
// slots never overlap.
func DetectOverlaps(set entity.ProposalSet, counterpart []string) OverlapResult {
	theirs, skipped := NormalizeCounterpart(counterpart)

	wanted := make(map[entity.TimeSlot]struct{}, len(theirs))
	for _, s := range theirs {
		wanted[s] = struct{}{}
	}

	result := OverlapResult{Slots: []IndexedSlot{}, Skipped: skipped}
	for i, slot := range set {
		if !slot.Complete() {
			continue
		}
		hour, err := NormalizeHour(slot.Hour)
		if err != nil {
			continue
		}
		key := entity.TimeSlot{Date: slot.Date, Hour: hour}
		if _, ok := wanted[key]; !ok {
			continue
		}
		display, err := DisplaySlot(key)
		if err != nil {
			continue
		}
		result.Slots = append(result.Slots, IndexedSlot{Index: i, Slot: slot, Display: display})
	}
	return result
}
