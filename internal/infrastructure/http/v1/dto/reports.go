package dto

import (
	"strings"
	"time"

	"stockroom/internal/core/apperror"
	"stockroom/internal/domain/reports"
)

// DailyReportRequest selects the reference date of the daily report.
// The report covers the month before it; today by default.
type DailyReportRequest struct {
	Date string `form:"date"`
}

// Reference parses Date or returns now.
func (r *DailyReportRequest) Reference(now time.Time) (time.Time, error) {
	if strings.TrimSpace(r.Date) == "" {
		return now, nil
	}
	ref, err := time.Parse(time.DateOnly, strings.TrimSpace(r.Date))
	if err != nil {
		return time.Time{}, apperror.NewFieldValidation("date", "expected YYYY-MM-DD").WithDetail("value", r.Date)
	}
	return ref, nil
}

// DailyReportResponse is the per-day inbound/outbound chart data.
type DailyReportResponse struct {
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	Labels   []string `json:"labels"`
	Inbound  []int    `json:"inbound"`
	Outbound []int    `json:"outbound"`
}

// FromMonthlySeries converts report data to DTO.
func FromMonthlySeries(s reports.MonthlySeries) DailyReportResponse {
	return DailyReportResponse{
		Year:     s.Year,
		Month:    int(s.Month),
		Labels:   s.Labels,
		Inbound:  s.Inbound,
		Outbound: s.Outbound,
	}
}
