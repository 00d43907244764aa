package helper

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UintParam parses a path parameter as an unsigned ID.
func UintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return uint(value), nil
}

// Pagination reads limit/offset query parameters with sane bounds.
// The default page size is 20, capped at 100.
func Pagination(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}

	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
