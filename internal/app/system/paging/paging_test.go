package paging_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/nexohub/internal/app/system/paging"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantNumber int
		wantOffset int
	}{
		{"no parameter", "/members", 1, 0},
		{"first page", "/members?page=1", 1, 0},
		{"later page", "/members?page=3", 3, 2 * paging.PageSize},
		{"zero falls back", "/members?page=0", 1, 0},
		{"negative falls back", "/members?page=-2", 1, 0},
		{"garbage falls back", "/members?page=abc", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paging.FromRequest(httptest.NewRequest("GET", tt.target, nil))
			if p.Number != tt.wantNumber || p.Offset != tt.wantOffset || p.Limit != paging.PageSize {
				t.Errorf("FromRequest() = %+v, want number %d offset %d", p, tt.wantNumber, tt.wantOffset)
			}
		})
	}
}
