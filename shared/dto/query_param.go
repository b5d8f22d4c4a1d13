package dto

import (
	"net/http"
	"net/url"
	"rental/shared/constant"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads paging and sorting from the query string. Page and limit
// default to the first page of DefaultValueLimit rows, limit is capped at
// MaxValueLimit and malformed values are ignored.
func (q *QueryParams) FromRequest(r *http.Request) {
	values := r.URL.Query()

	q.Page = positiveInt(values, constant.RequestParamPage, constant.DefaultValuePage)
	q.Limit = min(positiveInt(values, constant.RequestParamLimit, constant.DefaultValueLimit), constant.MaxValueLimit)
	q.SortBy = values.Get(constant.RequestParamSortBy)

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	default:
		q.SortDir = constant.Empty
	}
}

// AllowSortBy keeps SortBy only when it names one of the allowed columns and
// falls back to the default ordering otherwise. SortBy is interpolated into SQL.
func (q *QueryParams) AllowSortBy(allowed ...string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = constant.DefaultValueSortBy
	}

	if q.SortDir == constant.Empty {
		q.SortDir = constant.DefaultValueSortDir
	}
}

func positiveInt(values url.Values, key string, fallback int) int {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}
