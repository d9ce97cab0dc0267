package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxSlots is the size of a complete proposal set.
const MaxSlots = 3

// TimeSlot is one candidate meeting moment. Date is "YYYY-MM-DD", Hour is
// "HH:00"; an empty string means the field has not been chosen yet.
type TimeSlot struct {
	Date string `json:"date" db:"slot_date"`
	Hour string `json:"hour" db:"slot_hour"`
}

func (s TimeSlot) Complete() bool {
	return s.Date != "" && s.Hour != ""
}

// ProposalSet is ordered by preference: index 0 is the most preferred slot.
type ProposalSet []TimeSlot

func (p ProposalSet) Clone() ProposalSet {
	if p == nil {
		return ProposalSet{}
	}
	out := make(ProposalSet, len(p))
	copy(out, p)
	return out
}

// PickerState is the open/closed state of a slot's date or hour picker.
type PickerState string

const (
	PickerClosed PickerState = "closed"
	PickerOpen   PickerState = "open"
)

type SlotPickers struct {
	Date PickerState `json:"date"`
	Hour PickerState `json:"hour"`
}

func ClosedPickers() SlotPickers {
	return SlotPickers{Date: PickerClosed, Hour: PickerClosed}
}

// PendingValidation is the last failed submit check. It stays on the draft
// until the next slot update.
type PendingValidation struct {
	Kind    string `json:"kind"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// Draft is the in-progress proposal set kept in redis between edits.
type Draft struct {
	Slots     ProposalSet        `json:"slots"`
	Pickers   []SlotPickers      `json:"pickers"`
	Pending   *PendingValidation `json:"pending_validation,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Submission is a finalized, immutable proposal set.
type Submission struct {
	ID               uuid.UUID   `db:"id" json:"id"`
	UserID           uuid.UUID   `db:"user_id" json:"user_id"`
	MatchID          *uuid.UUID  `db:"match_id" json:"match_id,omitempty"`
	Fingerprint      string      `db:"fingerprint" json:"fingerprint"`
	ConfirmationCode string      `db:"confirmation_code" json:"confirmation_code"`
	Slots            ProposalSet `db:"-" json:"slots"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`
}

// SubmissionSlot is one row of proposal_slots.
type SubmissionSlot struct {
	SubmissionID uuid.UUID `db:"submission_id"`
	Position     int       `db:"position"`
	TimeSlot
}
