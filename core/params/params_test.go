package params

import (
	"net/url"
	"testing"
)

func TestFromValues(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults", "", DefaultPageNumber, DefaultPageSize, 0},
		{"explicit", "page=3&limit=10", 3, 10, 20},
		{"clamped", "page=1&limit=1000", 1, MaxPageSize, 0},
		{"garbage", "page=abc&limit=-5", DefaultPageNumber, DefaultPageSize, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := url.ParseQuery(tt.query)
			p := FromValues(v)
			if p.PageNumber != tt.wantPage || p.PageSize != tt.wantSize {
				t.Fatalf("got page=%d size=%d, want page=%d size=%d", p.PageNumber, p.PageSize, tt.wantPage, tt.wantSize)
			}
			if p.Offset() != tt.wantOffset {
				t.Fatalf("Offset() = %d, want %d", p.Offset(), tt.wantOffset)
			}
		})
	}
}
