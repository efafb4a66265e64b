package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type PaginationArgs struct {
	Limit int
	Skip  int
	Sort  string
}

// GetPaginationArgs reads limit/skip/sort query params with sane bounds.
func GetPaginationArgs(c *gin.Context) PaginationArgs {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	skip, err := strconv.Atoi(c.Query("skip"))
	if err != nil || skip < 0 {
		skip = 0
	}

	return PaginationArgs{
		Limit: limit,
		Skip:  skip,
		Sort:  c.Query("sort"),
	}
}
