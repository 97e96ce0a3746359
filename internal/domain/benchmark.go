package domain

import "github.com/shopspring/decimal"

// BenchmarkWeight is the target allocation percentage for one ticker per the
// reference index. Weights across a batch conceptually sum to ~100 but this
// is not enforced.
type BenchmarkWeight struct {
	Ticker string          `json:"ticker"`
	Weight decimal.Decimal `json:"weight"`
}

// RawTable is an HTML table lifted verbatim off a source page: header cells
// from <th>, one row of <td> texts per <tr>. No trimming or typing applied.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Empty reports whether the table carries no data rows.
func (t RawTable) Empty() bool {
	return len(t.Rows) == 0
}
