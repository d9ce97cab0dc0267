package service

import (
	"fmt"

	"yildizli-agac-api/modules/proposal/entity"
)

type ValidationKind string

const (
	IncompleteCount ValidationKind = "INCOMPLETE_COUNT"
	IncompleteSlot  ValidationKind = "INCOMPLETE_SLOT"
	DuplicateDates  ValidationKind = "DUPLICATE_DATES"
	DuplicateSlots  ValidationKind = "DUPLICATE_SLOTS"
	PastDate        ValidationKind = "PAST_DATE"
	MalformedSlot   ValidationKind = "MALFORMED_SLOT"
)

// ValidationError is returned by Validate. Index is the zero-based slot the
// error refers to, or -1 when it concerns the whole set.
type ValidationError struct {
	Kind    ValidationKind
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Rules configures Validate. Today, when set, is an ISO date and slots
// before it are rejected. The counterpart-date exception only applies while
// editing (Editor.CanSelectDate); at submit RequireDistinctDates is strict.
type Rules struct {
	RequiredSlots        int
	RequireDistinctDates bool
	Today                string
}

func DefaultRules() Rules {
	return Rules{RequiredSlots: entity.MaxSlots, RequireDistinctDates: true}
}

// Validate checks the set in order and returns the first failure.
func Validate(set entity.ProposalSet, rules Rules) error {
	required := rules.RequiredSlots
	if required <= 0 {
		required = entity.MaxSlots
	}

	if len(set) != required {
		return &ValidationError{
			Kind:    IncompleteCount,
			Index:   -1,
			Message: fmt.Sprintf("Lütfen %d zaman slotu seçin", required),
		}
	}

	for i, slot := range set {
		if !slot.Complete() {
			return &ValidationError{
				Kind:    IncompleteSlot,
				Index:   i,
				Message: fmt.Sprintf("%d. zaman slotu için tarih ve saat seçin", i+1),
			}
		}
	}

	seenDates := make(map[string]struct{}, len(set))
	seenSlots := make(map[entity.TimeSlot]struct{}, len(set))
	for i, slot := range set {
		if _, dup := seenSlots[slot]; dup {
			return &ValidationError{
				Kind:    DuplicateSlots,
				Index:   i,
				Message: "Aynı tarih ve saati birden fazla kez seçemezsiniz",
			}
		}
		if _, dup := seenDates[slot.Date]; dup && rules.RequireDistinctDates {
			return &ValidationError{
				Kind:    DuplicateDates,
				Index:   i,
				Message: "Her zaman slotu için farklı bir tarih seçin",
			}
		}
		seenSlots[slot] = struct{}{}
		seenDates[slot.Date] = struct{}{}
	}

	for i, slot := range set {
		if _, err := parseISO(slot.Date); err != nil {
			return &ValidationError{
				Kind:    MalformedSlot,
				Index:   i,
				Message: fmt.Sprintf("%d. zaman slotu için geçerli bir tarih seçin", i+1),
			}
		}
		if _, err := NormalizeHour(slot.Hour); err != nil {
			return &ValidationError{
				Kind:    MalformedSlot,
				Index:   i,
				Message: fmt.Sprintf("%d. zaman slotu için geçerli bir saat seçin", i+1),
			}
		}
		// ISO dates compare correctly as strings.
		if rules.Today != "" && slot.Date < rules.Today {
			return &ValidationError{
				Kind:    PastDate,
				Index:   i,
				Message: fmt.Sprintf("%d. zaman slotu için geçmiş bir tarih seçilemez", i+1),
			}
		}
	}

	return nil
}
