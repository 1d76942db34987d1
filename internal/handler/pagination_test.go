package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		expectedPage int
		expectedSize int
	}{
		{"defaults", "", 1, 10},
		{"explicit values", "page=3&size=25", 3, 25},
		{"zero page clamps to first", "page=0", 1, 10},
		{"negative size clamps to default", "size=-5", 1, 10},
		{"oversized page clamps to max", "size=5000", 1, 100},
		{"junk falls back to defaults", "page=abc&size=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := parsePagination(paginationContext(tt.query))
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedSize, size)
		})
	}
}
