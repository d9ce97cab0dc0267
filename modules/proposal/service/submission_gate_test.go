package service

import (
	"errors"
	"testing"

	"yildizli-agac-api/modules/proposal/entity"
)

func TestValidate(t *testing.T) {
	complete := entity.ProposalSet{
		{Date: "2025-12-26", Hour: "10:00"},
		{Date: "2025-12-27", Hour: "14:00"},
		{Date: "2025-12-28", Hour: "09:00"},
	}

	tests := []struct {
		name      string
		set       entity.ProposalSet
		rules     Rules
		wantKind  ValidationKind
		wantIndex int
		wantMsg   string
	}{
		{
			name:  "three distinct complete slots",
			set:   complete,
			rules: DefaultRules(),
		},
		{
			name:      "too few",
			set:       complete[:2],
			rules:     DefaultRules(),
			wantKind:  IncompleteCount,
			wantIndex: -1,
			wantMsg:   "Lütfen 3 zaman slotu seçin",
		},
		{
			name:      "too many",
			set:       append(complete.Clone(), entity.TimeSlot{Date: "2025-12-29", Hour: "10:00"}),
			rules:     DefaultRules(),
			wantKind:  IncompleteCount,
			wantIndex: -1,
			wantMsg:   "Lütfen 3 zaman slotu seçin",
		},
		{
			name: "third slot empty",
			set: entity.ProposalSet{
				{Date: "2025-12-26", Hour: "10:00"},
				{Date: "2025-12-27", Hour: "14:00"},
				{},
			},
			rules:     DefaultRules(),
			wantKind:  IncompleteSlot,
			wantIndex: 2,
			wantMsg:   "3. zaman slotu için tarih ve saat seçin",
		},
		{
			name: "first incomplete wins",
			set: entity.ProposalSet{
				{Date: "2025-12-26", Hour: "10:00"},
				{Date: "2025-12-27"},
				{Hour: "10:00"},
			},
			rules:     DefaultRules(),
			wantKind:  IncompleteSlot,
			wantIndex: 1,
			wantMsg:   "2. zaman slotu için tarih ve saat seçin",
		},
		{
			name: "duplicate dates",
			set: entity.ProposalSet{
				{Date: "2025-12-26", Hour: "10:00"},
				{Date: "2025-12-27", Hour: "14:00"},
				{Date: "2025-12-26", Hour: "16:00"},
			},
			rules:     DefaultRules(),
			wantKind:  DuplicateDates,
			wantIndex: 2,
			wantMsg:   "Her zaman slotu için farklı bir tarih seçin",
		},
		{
			name: "repeated date fails even when it was proposed by the counterpart",
			set: entity.ProposalSet{
				{Date: "2025-12-27", Hour: "10:00"},
				{Date: "2025-12-27", Hour: "14:00"},
				{Date: "2025-12-28", Hour: "16:00"},
			},
			rules:     DefaultRules(),
			wantKind:  DuplicateDates,
			wantIndex: 1,
			wantMsg:   "Her zaman slotu için farklı bir tarih seçin",
		},
		{
			name: "identical slots",
			set: entity.ProposalSet{
				{Date: "2025-12-27", Hour: "14:00"},
				{Date: "2025-12-27", Hour: "14:00"},
				{Date: "2025-12-27", Hour: "14:00"},
			},
			rules:     DefaultRules(),
			wantKind:  DuplicateSlots,
			wantIndex: 1,
			wantMsg:   "Aynı tarih ve saati birden fazla kez seçemezsiniz",
		},
		{
			name: "identical slots rejected when relaxed",
			set: entity.ProposalSet{
				{Date: "2025-12-26", Hour: "10:00"},
				{Date: "2025-12-27", Hour: "14:00"},
				{Date: "2025-12-27", Hour: "14:00"},
			},
			rules:     Rules{RequiredSlots: 3},
			wantKind:  DuplicateSlots,
			wantIndex: 2,
			wantMsg:   "Aynı tarih ve saati birden fazla kez seçemezsiniz",
		},
		{
			name: "duplicates allowed when relaxed",
			set: entity.ProposalSet{
				{Date: "2025-12-26", Hour: "10:00"},
				{Date: "2025-12-26", Hour: "14:00"},
				{Date: "2025-12-26", Hour: "16:00"},
			},
			rules: Rules{RequiredSlots: 3},
		},
		{
			name:      "past date",
			set:       complete,
			rules:     Rules{RequiredSlots: 3, RequireDistinctDates: true, Today: "2025-12-27"},
			wantKind:  PastDate,
			wantIndex: 0,
			wantMsg:   "1. zaman slotu için geçmiş bir tarih seçilemez",
		},
		{
			name: "malformed hour",
			set: entity.ProposalSet{
				{Date: "2025-12-26", Hour: "10:00"},
				{Date: "2025-12-27", Hour: "öğlen"},
				{Date: "2025-12-28", Hour: "16:00"},
			},
			rules:     DefaultRules(),
			wantKind:  MalformedSlot,
			wantIndex: 1,
			wantMsg:   "2. zaman slotu için geçerli bir saat seçin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.set, tt.rules)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if vErr.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", vErr.Kind, tt.wantKind)
			}
			if vErr.Index != tt.wantIndex {
				t.Fatalf("index = %d, want %d", vErr.Index, tt.wantIndex)
			}
			if vErr.Error() != tt.wantMsg {
				t.Fatalf("message = %q, want %q", vErr.Error(), tt.wantMsg)
			}
		})
	}
}
