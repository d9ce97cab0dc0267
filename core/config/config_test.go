package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Fatalf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Proposal.MaxSlots != 3 {
		t.Fatalf("Proposal.MaxSlots = %d, want 3", cfg.Proposal.MaxSlots)
	}
	if !cfg.Proposal.RequireDistinctDates {
		t.Fatalf("Proposal.RequireDistinctDates = false, want true")
	}
	if cfg.Upstream.InterestsTimeout != 10*time.Second {
		t.Fatalf("Upstream.InterestsTimeout = %v, want 10s", cfg.Upstream.InterestsTimeout)
	}
	got, ok := GetSafe()
	if !ok || got != cfg {
		t.Fatalf("GetSafe() did not return the loaded config")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("YA_PROPOSAL_DRAFT_TTL", "2h")
	t.Setenv("YA_PROPOSAL_REQUIRE_DISTINCT_DATES", "false")
	t.Setenv("PORT", "9090")
	t.Setenv("YA_UPSTREAM_BASE_URL", "http://localhost:8080/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Proposal.DraftTTL != 2*time.Hour {
		t.Fatalf("DraftTTL = %v, want 2h", cfg.Proposal.DraftTTL)
	}
	if cfg.Proposal.RequireDistinctDates {
		t.Fatalf("RequireDistinctDates = true, want false")
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Upstream.BaseURL != "http://localhost:8080" {
		t.Fatalf("BaseURL = %q, want trailing slash trimmed", cfg.Upstream.BaseURL)
	}
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("YA_UPSTREAM_TIMEOUT", "ten seconds")
	if _, err := Load(); err == nil {
		t.Fatalf("Load() error = nil, want duration parse error")
	}
}

func TestLoad_RejectsSlotCountOtherThanThree(t *testing.T) {
	t.Setenv("YA_PROPOSAL_MAX_SLOTS", "4")
	if _, err := Load(); err == nil {
		t.Fatalf("Load() error = nil, want max_slots error")
	}
}
