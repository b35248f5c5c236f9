package helpers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultListLimit is the page size used when a list request omits limit
	DefaultListLimit int32 = 20
	// MaxListLimit caps the page size of rule and approval listings
	MaxListLimit int32 = 100
)

// ListPage is the paging window of a rule or approval listing
type ListPage struct {
	Limit  int32
	Offset int32
	Page   int32
}

// ParseListPage reads limit plus either page or offset from the query string.
// page wins when both are present. Limits above MaxListLimit are clamped.
func ParseListPage(c *gin.Context) (ListPage, error) {
	page := ListPage{Limit: DefaultListLimit, Page: 1}

	limit, err := queryInt32(c, "limit")
	if err != nil {
		return page, err
	}
	if limit > 0 {
		page.Limit = min(limit, MaxListLimit)
	}

	n, err := queryInt32(c, "page")
	if err != nil {
		return page, err
	}
	if n > 0 {
		page.Page = n
		page.Offset = (n - 1) * page.Limit
		return page, nil
	}

	offset, err := queryInt32(c, "offset")
	if err != nil {
		return page, err
	}
	if offset > 0 {
		page.Offset = offset
		page.Page = offset/page.Limit + 1
	}
	return page, nil
}

func queryInt32(c *gin.Context, key string) (int32, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter %q", key, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return int32(v), nil
}
