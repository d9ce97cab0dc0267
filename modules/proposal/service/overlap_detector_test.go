package service

import (
	"errors"
	"testing"

	"yildizli-agac-api/modules/proposal/entity"
)

func TestDetectOverlaps_ExactSlot(t *testing.T) {
	set := entity.ProposalSet{{Date: "2025-12-27", Hour: "14:00"}}
	got := DetectOverlaps(set, []string{"27 Aralık 2025 - 14:00"})

	if len(got.Slots) != 1 {
		t.Fatalf("overlaps = %d, want 1", len(got.Slots))
	}
	if got.Slots[0].Index != 0 {
		t.Fatalf("index = %d, want 0", got.Slots[0].Index)
	}
	if got.Slots[0].Display != "27 Aralık Cumartesi - 14:00" {
		t.Fatalf("display = %q", got.Slots[0].Display)
	}
}

func TestDetectOverlaps_SameDateDifferentHour(t *testing.T) {
	set := entity.ProposalSet{{Date: "2025-12-27", Hour: "15:00"}}
	got := DetectOverlaps(set, []string{"27 Aralık 2025 - 14:00"})

	if !got.Empty() {
		t.Fatalf("expected no overlap, got %+v", got.Slots)
	}
}

func TestDetectOverlaps_MixedFormatsAndOrder(t *testing.T) {
	set := entity.ProposalSet{
		{Date: "2025-12-26", Hour: "10:00"},
		{Date: "2025-12-27", Hour: "14:00"},
		{Date: "2025-12-28", Hour: "09:00"},
	}
	counterpart := []string{
		"28 Aralık 2025 Pazar - 9:00",
		"27 Aralık 2025 - 14:00",
		"30 Aralık 2025 - 10:00",
	}
	got := DetectOverlaps(set, counterpart)

	if len(got.Slots) != 2 {
		t.Fatalf("overlaps = %d, want 2", len(got.Slots))
	}
	if got.Slots[0].Index != 1 || got.Slots[1].Index != 2 {
		t.Fatalf("indexes = %d,%d, want 1,2", got.Slots[0].Index, got.Slots[1].Index)
	}
	if got.Contains(0) || !got.Contains(1) {
		t.Fatalf("Contains mismatch: %+v", got.Slots)
	}
}

func TestDetectOverlaps_SkipsUnparseableEntries(t *testing.T) {
	set := entity.ProposalSet{{Date: "2025-12-27", Hour: "14:00"}}
	counterpart := []string{"bilinmeyen tarih", "27 Aralık 2025 - 14:00", "27 Foo 2025 - 14:00"}
	got := DetectOverlaps(set, counterpart)

	if len(got.Slots) != 1 {
		t.Fatalf("overlaps = %d, want 1", len(got.Slots))
	}
	if len(got.Skipped) != 2 {
		t.Fatalf("skipped = %d, want 2", len(got.Skipped))
	}
	if got.Skipped[0].Index != 0 || got.Skipped[1].Index != 2 {
		t.Fatalf("skipped indexes = %d,%d", got.Skipped[0].Index, got.Skipped[1].Index)
	}
	if !errors.Is(got.Skipped[0].Err, ErrUnparseableDate) {
		t.Fatalf("skipped error = %v", got.Skipped[0].Err)
	}
}

func TestDetectOverlaps_IgnoresIncompleteSlots(t *testing.T) {
	set := entity.ProposalSet{
		{Date: "2025-12-27"},
		{Hour: "14:00"},
		{},
	}
	got := DetectOverlaps(set, []string{"27 Aralık 2025 - 14:00"})
	if !got.Empty() {
		t.Fatalf("incomplete slots must not overlap: %+v", got.Slots)
	}
}

func TestCounterpartDates(t *testing.T) {
	dates := CounterpartDates([]string{"27 Aralık 2025 - 14:00", "3 Ocak 2026", "garbage"})
	if len(dates) != 2 {
		t.Fatalf("dates = %v, want 2 entries", dates)
	}
	for _, d := range []string{"2025-12-27", "2026-01-03"} {
		if _, ok := dates[d]; !ok {
			t.Fatalf("missing %s in %v", d, dates)
		}
	}
}
