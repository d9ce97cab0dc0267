package params

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// NewQueryParams reads page, limit and search from the request query,
// clamping them to sane bounds.
func NewQueryParams(c echo.Context) *QueryParams {
	return FromValues(c.QueryParams())
}

func FromValues(values url.Values) *QueryParams {
	p := &QueryParams{
		PageNumber: DefaultPageNumber,
		PageSize:   DefaultPageSize,
		Search:     strings.TrimSpace(values.Get("search")),
	}
	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 0 {
		p.PageNumber = n
	}
	if n, err := strconv.Atoi(values.Get("limit")); err == nil && n > 0 {
		p.PageSize = min(n, MaxPageSize)
	}
	return p
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

func (p QueryParams) Encode() string {
	v := url.Values{}
	v.Add("page", strconv.Itoa(p.PageNumber))
	v.Add("limit", strconv.Itoa(p.PageSize))
	if p.Search != "" {
		v.Add("search", p.Search)
	}
	return v.Encode()
}
