// Package catalog derives the visible page of a country table from the full
// record set and the current search, sort and page state.
//
// Everything here is a pure function of its inputs; callers recompute the
// page whenever state changes instead of caching it.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"countrycat/internal/country"
)

// PageSize is the fixed number of rows per page.
const PageSize = 25

// Direction is the sort order applied to display names.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns the short label shown on the sort control.
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending".
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	}
	return Ascending, false
}

// Filter keeps records whose display name contains search, ignoring case.
// An empty search matches everything. The input slice is not modified.
func Filter(records []country.Record, search string) []country.Record {
	needle := strings.ToLower(search)
	out := make([]country.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.DisplayName()), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a copy of records ordered by display name using locale-aware
// collation of the lowercased names. Equal names keep their input order.
func Sort(records []country.Record, dir Direction) []country.Record {
	names := make([]string, len(records))
	idx := make([]int, len(records))
	for i, r := range records {
		names[i] = strings.ToLower(r.DisplayName())
		idx[i] = i
	}

	// collate.Collator is not safe for concurrent use; one per call.
	col := collate.New(language.Und)
	sort.SliceStable(idx, func(a, b int) bool {
		c := col.CompareString(names[idx[a]], names[idx[b]])
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})

	out := make([]country.Record, len(records))
	for i, j := range idx {
		out[i] = records[j]
	}
	return out
}

// Paginate returns the 1-based page of records. Offsets outside the slice
// are clipped, so an out-of-range page yields an empty slice.
func Paginate(records []country.Record, page, size int) []country.Record {
	if page < 1 || size < 1 {
		return []country.Record{}
	}
	// compare page numbers before multiplying so huge pages cannot overflow
	if page-1 >= PageCount(len(records), size) {
		return []country.Record{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// PageCount returns ceil(n/size); zero records means zero pages.
func PageCount(n, size int) int {
	if n <= 0 || size < 1 {
		return 0
	}
	return (n + size - 1) / size
}
