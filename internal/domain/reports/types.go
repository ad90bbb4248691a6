// Package reports aggregates the movement ledger into chart-ready series.
package reports

import "time"

// Series holds two numeric series aligned to the same labels.
type Series struct {
	Labels   []string `json:"labels"`
	Inbound  []int    `json:"inbound"`
	Outbound []int    `json:"outbound"`
}

// MonthlySeries is a Series bucketed by day of a single month.
type MonthlySeries struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Series
}

func newSeries(n int) Series {
	return Series{
		Labels:   make([]string, n),
		Inbound:  make([]int, n),
		Outbound: make([]int, n),
	}
}
