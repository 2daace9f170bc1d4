package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(target string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContextDefaults(t *testing.T) {
	p := paramsFor("/history")
	if p.Limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", p.Limit, DefaultLimit)
	}
	if p.Offset != 0 {
		t.Errorf("offset = %d, want 0", p.Offset)
	}
}

func TestFromContextPageNumbering(t *testing.T) {
	p := paramsFor("/history?page=3&limit=10")
	if p.Offset != 20 {
		t.Errorf("offset = %d, want 20 for page 3", p.Offset)
	}
}

func TestFromContextOffsetOverridesPage(t *testing.T) {
	p := paramsFor("/history?page=3&limit=10&offset=5")
	if p.Offset != 5 {
		t.Errorf("offset = %d, want explicit 5", p.Offset)
	}
}

func TestFromContextClampsLimit(t *testing.T) {
	p := paramsFor("/history?limit=9999")
	if p.Limit != MaxLimit {
		t.Errorf("limit = %d, want %d", p.Limit, MaxLimit)
	}
	p = paramsFor("/history?limit=-1")
	if p.Limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", p.Limit, DefaultLimit)
	}
}

func TestNewResponseHasMore(t *testing.T) {
	r := NewResponse([]int{1, 2}, 5, 2, 0)
	if !r.HasMore {
		t.Error("HasMore = false with 3 remaining")
	}
	r = NewResponse([]int{1}, 5, 2, 4)
	if r.HasMore {
		t.Error("HasMore = true on the last page")
	}
}

func TestParamsHasNext(t *testing.T) {
	p := Params{Limit: 10, Offset: 0}
	if !p.HasNext(25) {
		t.Error("HasNext = false, want true")
	}
	if p.NextOffset() != 10 {
		t.Errorf("NextOffset = %d, want 10", p.NextOffset())
	}
	p = Params{Limit: 10, Offset: 20}
	if p.HasNext(25) {
		t.Error("HasNext = true past the end")
	}
}
