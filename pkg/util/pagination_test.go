package util

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paginationContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestGetPaginationArgsDefaults(t *testing.T) {
	args := GetPaginationArgs(paginationContext(t, "/v1/campgrounds"))
	if args.Limit != 20 || args.Skip != 0 || args.Sort != "" {
		t.Fatalf("unexpected defaults: %+v", args)
	}
}

func TestGetPaginationArgsReadsQuery(t *testing.T) {
	args := GetPaginationArgs(paginationContext(t, "/v1/campgrounds?limit=50&skip=10&sort=price_asc"))
	if args.Limit != 50 || args.Skip != 10 || args.Sort != "price_asc" {
		t.Fatalf("query params not read: %+v", args)
	}
}

func TestGetPaginationArgsClampsBadValues(t *testing.T) {
	args := GetPaginationArgs(paginationContext(t, "/v1/campgrounds?limit=5000&skip=-3"))
	if args.Limit != 100 {
		t.Fatalf("limit not capped: %d", args.Limit)
	}
	if args.Skip != 0 {
		t.Fatalf("negative skip not reset: %d", args.Skip)
	}

	args = GetPaginationArgs(paginationContext(t, "/v1/campgrounds?limit=abc&skip=xyz"))
	if args.Limit != 20 || args.Skip != 0 {
		t.Fatalf("garbage params not defaulted: %+v", args)
	}
}
