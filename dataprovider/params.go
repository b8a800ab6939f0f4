package dataprovider

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/kbukum/fetchkit/fetch"
)

// Query parameter names of the list wire contract.
const (
	ParamSortField  = "sort-field"
	ParamSortOrder  = "sort-order"
	ParamRangeStart = "range-start"
	ParamRangeEnd   = "range-end"
	ParamIDs        = "ids"
)

// Sort orders.
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// Record is a decoded resource item.
type Record = map[string]any

// Sort selects the ordering of a list.
type Sort struct {
	Field string
	Order string
}

// Pagination selects a 1-based page of PerPage items.
type Pagination struct {
	Page    int
	PerPage int
}

// ListParams configures GetList.
type ListParams struct {
	// Filter is sent as one query parameter per key, in sorted key order.
	Filter     map[string]any
	Sort       Sort
	Pagination Pagination
}

// ReferenceParams configures GetManyReference: records whose Target field
// equals ID.
type ReferenceParams struct {
	Target string
	ID     any
	ListParams
}

// ListResult is one page of records with the total count of matches.
type ListResult struct {
	Data  []Record
	Total int
}

// listQuery builds filter, then reference, then sort, then range.
func listQuery(p ListParams, reference ...fetch.Param) fetch.Query {
	q := make(fetch.Query, 0, len(p.Filter)+len(reference)+4)
	for _, key := range slices.Sorted(maps.Keys(p.Filter)) {
		q = append(q, fetch.Param{Key: key, Value: formatValue(p.Filter[key])})
	}
	q = append(q, reference...)
	q = append(q, sortParams(p.Sort)...)
	return append(q, rangeParams(p.Pagination)...)
}

func sortParams(s Sort) fetch.Query {
	return fetch.NewQuery(ParamSortField, s.Field, ParamSortOrder, s.Order)
}

func rangeParams(p Pagination) fetch.Query {
	start := (p.Page - 1) * p.PerPage
	end := p.Page*p.PerPage - 1
	return fetch.NewQuery(ParamRangeStart, strconv.Itoa(start), ParamRangeEnd, strconv.Itoa(end))
}

func idsQuery(ids []any) fetch.Query {
	return fetch.NewQuery(ParamIDs, formatValue(ids))
}

// formatValue renders a query value. Slices are joined with commas.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatValue(e)
		}
		return strings.Join(parts, ",")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
