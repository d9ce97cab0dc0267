package dto

import (
	"time"
)

// ===================== Request DTOs =====================

// UpdateSlotRequest sets one field of a draft slot
type UpdateSlotRequest struct {
	Field string `json:"field" validate:"required,oneof=date hour"`
	Value string `json:"value"` // "" clears the field
}

// MoveSlotRequest changes a slot's preference rank
type MoveSlotRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// PickerRequest opens or closes a slot's date/hour picker
type PickerRequest struct {
	Field string `json:"field" validate:"required,oneof=date hour"`
	State string `json:"state" validate:"required,oneof=open closed"`
}

// ===================== Response DTOs =====================

// SlotResponse is one draft slot as the client renders it
type SlotResponse struct {
	Index        int      `json:"index"`
	Date         string   `json:"date"`
	Hour         string   `json:"hour"`
	Display      string   `json:"display,omitempty"`
	Complete     bool     `json:"complete"`
	Overlaps     bool     `json:"overlaps"`
	DatePicker   string   `json:"date_picker"`
	HourPicker   string   `json:"hour_picker"`
	BlockedDates []string `json:"blocked_dates"`
}

type OverlapResponse struct {
	Index   int    `json:"index"`
	Date    string `json:"date"`
	Hour    string `json:"hour"`
	Display string `json:"display"`
}

type ValidationResponse struct {
	Kind    string `json:"kind"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// DraftResponse is the full editing state of a proposal draft
type DraftResponse struct {
	Slots                []SlotResponse      `json:"slots"`
	Overlaps             []OverlapResponse   `json:"overlaps"`
	CounterpartProposals []string            `json:"counterpart_proposals"`
	CounterpartDates     []string            `json:"counterpart_dates"`
	UnparsedProposals    []string            `json:"unparsed_proposals,omitempty"`
	MinDate              string              `json:"min_date"`
	MaxSlots             int                 `json:"max_slots"`
	CanAddSlot           bool                `json:"can_add_slot"`
	Validation           *ValidationResponse `json:"validation,omitempty"`
	UpdatedAt            *time.Time          `json:"updated_at,omitempty"`
}

// SubmissionResponse is a finalized proposal set
type SubmissionResponse struct {
	ID               string         `json:"id"`
	ConfirmationCode string         `json:"confirmation_code"`
	Slots            []SlotResponse `json:"slots"`
	Duplicate        bool           `json:"duplicate"`
	CreatedAt        time.Time      `json:"created_at"`
}
