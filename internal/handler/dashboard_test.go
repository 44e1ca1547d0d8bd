package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func queryContext(t *testing.T, rawQuery string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name  string
		query string
		def   int
		want  int
	}{
		{"present", "year=2024", 1999, 2024},
		{"absent uses default", "", 1999, 1999},
		{"unparseable uses default", "year=march", 1999, 1999},
		{"negative passes through", "year=-3", 1999, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := queryContext(t, tt.query)
			if got := queryInt(c, "year", tt.def); got != tt.want {
				t.Errorf("queryInt = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQueryID(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  uint64
	}{
		{"positive id", "user_id=4", 4},
		{"absent means no filter", "", 0},
		{"zero means no filter", "user_id=0", 0},
		{"negative means no filter", "user_id=-1", 0},
		{"garbage means no filter", "user_id=abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := queryContext(t, tt.query)
			if got := queryID(c, "user_id"); got != tt.want {
				t.Errorf("queryID = %d, want %d", got, tt.want)
			}
		})
	}
}
