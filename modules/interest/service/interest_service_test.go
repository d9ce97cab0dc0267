package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"yildizli-agac-api/core/cache/cachetest"
	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/upstream"
)

type fakeSource struct {
	items []upstream.Interest
	err   error
	calls int
	block bool
}

func (f *fakeSource) GetAllInterests(ctx context.Context) ([]upstream.Interest, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, fmt.Errorf("%w: %v", upstream.ErrNetwork, ctx.Err())
	}
	return f.items, f.err
}

var catalog = []upstream.Interest{
	{ID: 3, Name: "Şarkı Söylemek"},
	{ID: 1, Name: "Kitap Okumak"},
	{ID: 2, Name: "İç Mimari"},
	{ID: 4, Name: "  "},
}

func TestList_SlugsSortsAndCaches(t *testing.T) {
	src := &fakeSource{items: catalog}
	svc := NewInterestService(src, cachetest.New(), Settings{})

	resp, appErr := svc.List(context.Background(), "")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if resp.Total != 3 {
		t.Fatalf("total = %d, want 3 (blank names dropped)", resp.Total)
	}
	wantSlugs := []string{"ic-mimari", "kitap-okumak", "sarki-soylemek"}
	for i, it := range resp.Items {
		if it.Slug != wantSlugs[i] {
			t.Errorf("items[%d].Slug = %q, want %q", i, it.Slug, wantSlugs[i])
		}
	}

	if _, appErr := svc.List(context.Background(), ""); appErr != nil {
		t.Fatal(appErr)
	}
	if src.calls != 1 {
		t.Fatalf("upstream calls = %d, want 1", src.calls)
	}
}

func TestList_SearchFoldsTurkish(t *testing.T) {
	svc := NewInterestService(&fakeSource{items: catalog}, cachetest.New(), Settings{})

	tests := []struct {
		q    string
		want int
	}{
		{"ŞARKI", 1},
		{"iç", 1},
		{"sarki", 1},
		{"okumak", 1},
		{"yüzme", 0},
	}
	for _, tt := range tests {
		resp, appErr := svc.List(context.Background(), tt.q)
		if appErr != nil {
			t.Fatal(appErr)
		}
		if resp.Total != tt.want {
			t.Errorf("search %q: total = %d, want %d", tt.q, resp.Total, tt.want)
		}
	}
}

func TestList_FetchTimeout(t *testing.T) {
	svc := NewInterestService(&fakeSource{block: true}, cachetest.New(), Settings{FetchTimeout: 20 * time.Millisecond})

	_, appErr := svc.List(context.Background(), "")
	if appErr == nil || appErr.Code != errors.ErrUpstreamUnavailable {
		t.Fatalf("err = %v, want UPSTREAM_UNAVAILABLE", appErr)
	}
}
