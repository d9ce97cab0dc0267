package dto

import (
	"time"
)

// ===================== Request DTOs =====================

// CounterpartProfile is what the matching service knows about the other participant
type CounterpartProfile struct {
	FirstName     string   `json:"first_name" validate:"required"`
	LastName      string   `json:"last_name" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	Gender        string   `json:"gender"`
	Preferences   []string `json:"preferences"`
	FavoriteColor string   `json:"favorite_color"`
	Hobbies       string   `json:"hobbies"`
}

// MatchImport is one directed match: UserID gives a gift to the counterpart.
// Both ids are the account API's user ids, numeric or UUID.
type MatchImport struct {
	UserID        string             `json:"user_id" validate:"required"`
	CounterpartID string             `json:"counterpart_id" validate:"required"`
	Counterpart   CounterpartProfile `json:"counterpart"`
	MatchDate     string             `json:"match_date"`    // YYYY-MM-DD
	DeliveryDate  string             `json:"delivery_date"` // YYYY-MM-DD
	ProposedTimes []string           `json:"proposed_times,omitempty"`
}

// ImportMatchesRequest is pushed by the external matching service
type ImportMatchesRequest struct {
	Matches []MatchImport `json:"matches" validate:"required,min=1"`
}

// ===================== Response DTOs =====================

type ImportError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type ImportMatchesResponse struct {
	Imported int           `json:"imported"`
	Failed   []ImportError `json:"failed"`
	// Proposal strings that will not take part in overlap detection
	UnparsedTimes []string `json:"unparsed_times,omitempty"`
}

// CounterpartResponse hides identity behind initials. Profile details are
// only filled after reveal.
type CounterpartResponse struct {
	Initials      string   `json:"initials"`
	Gender        string   `json:"gender,omitempty"`
	Preferences   []string `json:"preferences,omitempty"`
	FavoriteColor string   `json:"favorite_color,omitempty"`
	Hobbies       string   `json:"hobbies,omitempty"`
	ProposedTimes []string `json:"proposed_times"`
}

// MatchResponse for the match page
type MatchResponse struct {
	ID                  string              `json:"id"`
	Revealed            bool                `json:"revealed"`
	RevealedAt          *time.Time          `json:"revealed_at,omitempty"`
	Counterpart         CounterpartResponse `json:"counterpart"`
	MatchDate           string              `json:"match_date"`
	MatchDateDisplay    string              `json:"match_date_display"`
	DeliveryDate        string              `json:"delivery_date"`
	DeliveryDateDisplay string              `json:"delivery_date_display"`
}
