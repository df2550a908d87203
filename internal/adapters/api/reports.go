package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
)

// WeeklyReport fetches the weekly aggregate. An empty weekStart asks the
// server for its current week.
func (c *Client) WeeklyReport(ctx context.Context, token, weekStart string) (*domain.WeeklyReport, error) {
	q := url.Values{}
	if weekStart != "" {
		q.Set("weekStart", weekStart)
	}

	raw, err := c.do(ctx, http.MethodGet, "/users/reports/weekly", token, q, nil)
	if err != nil {
		return nil, err
	}

	var report domain.WeeklyReport
	if err := decodeObject(raw, &report, "totals", "report"); err != nil {
		return nil, err
	}
	if report.Users == nil {
		report.Users = []domain.WeeklyUserReport{}
	}
	if report.AvailableWeeks == nil {
		report.AvailableWeeks = []string{}
	}

	return &report, nil
}
