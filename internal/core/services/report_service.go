package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/search"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"
)

// chartSlices is the number of users drawn individually before "Others"
const chartSlices = 9

// ReportService handles weekly sales and reward reports
type ReportService struct {
	api        ReportAPI
	classifier *search.Classifier
}

// NewReportService creates a new report service
func NewReportService(api ReportAPI, classifier *search.Classifier) *ReportService {
	return &ReportService{
		api:        api,
		classifier: classifier,
	}
}

// Weekly fetches the report for the week starting at weekStart (YYYY-MM-DD,
// empty for the current week) and narrows the breakdown by term.
func (s *ReportService) Weekly(ctx context.Context, sess *domain.Session, weekStart, term string) (*domain.WeeklyReport, error) {
	if err := validateWeekStart(weekStart); err != nil {
		return nil, err
	}

	report, err := s.api.WeeklyReport(ctx, sess.Token, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly report: %w", err)
	}

	filter := s.classifier.Classify(term)
	if filter.IsEmpty() {
		return report, nil
	}

	matched := make([]domain.WeeklyUserReport, 0, len(report.Users))
	for _, u := range report.Users {
		if filter.Matches(search.Target{UserID: u.UserID, IDNumber: u.IDNumber, Email: u.Email, Name: u.Name, Nickname: u.Nickname}) {
			matched = append(matched, u)
		}
	}
	report.Users = matched
	return report, nil
}

// Chart renders the sales share per user as a PNG pie chart
func (s *ReportService) Chart(ctx context.Context, sess *domain.Session, weekStart string) ([]byte, error) {
	report, err := s.Weekly(ctx, sess, weekStart, "")
	if err != nil {
		return nil, err
	}

	labels, values := salesSlices(report.Users)
	if len(values) == 0 {
		return nil, domain.ErrEmptyReport
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Sales share %s to %s", report.WeekStart, report.WeekEnd),
		}),
		charts.LegendLabelsOptionFunc(labels),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}

// salesSlices keeps the top users by sales and folds the rest into "Others"
func salesSlices(users []domain.WeeklyUserReport) ([]string, []float64) {
	rows := make([]domain.WeeklyUserReport, 0, len(users))
	for _, u := range users {
		if u.Sales.IsPositive() {
			rows = append(rows, u)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Sales.GreaterThan(rows[j].Sales)
	})

	var labels []string
	var values []float64
	others := decimal.Zero
	for i, u := range rows {
		if i < chartSlices {
			labels = append(labels, reportLabel(&u))
			values = append(values, u.Sales.InexactFloat64())
			continue
		}
		others = others.Add(u.Sales)
	}
	if others.IsPositive() {
		labels = append(labels, "Others")
		values = append(values, others.InexactFloat64())
	}

	return labels, values
}

func reportLabel(u *domain.WeeklyUserReport) string {
	if u.Nickname != "" {
		return u.Nickname
	}
	if u.Name != "" {
		return u.Name
	}
	return "User " + strconv.FormatInt(u.UserID, 10)
}

// Export renders the breakdown as CSV with a totals row and returns the file name
func (s *ReportService) Export(ctx context.Context, sess *domain.Session, weekStart, term string) ([]byte, string, error) {
	report, err := s.Weekly(ctx, sess, weekStart, term)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"User ID", "Name", "Nickname", "Email", "ID Number", "Orders", "Diamonds", "Sales", "Reward"}
	if err := w.Write(header); err != nil {
		return nil, "", fmt.Errorf("failed to write report csv header: %w", err)
	}

	var orders, diamonds int64
	sales, reward := decimal.Zero, decimal.Zero
	for _, u := range report.Users {
		row := []string{
			strconv.FormatInt(u.UserID, 10),
			csvCell(u.Name),
			csvCell(u.Nickname),
			csvCell(u.Email),
			csvCell(u.IDNumber),
			strconv.FormatInt(u.Orders, 10),
			strconv.FormatInt(u.Diamonds, 10),
			u.Sales.StringFixed(2),
			u.Reward.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, "", fmt.Errorf("failed to write report csv row for user %d: %w", u.UserID, err)
		}
		orders += u.Orders
		diamonds += u.Diamonds
		sales = sales.Add(u.Sales)
		reward = reward.Add(u.Reward)
	}

	totals := []string{
		"TOTAL", "", "", "", "",
		strconv.FormatInt(orders, 10),
		strconv.FormatInt(diamonds, 10),
		sales.StringFixed(2),
		reward.StringFixed(2),
	}
	if err := w.Write(totals); err != nil {
		return nil, "", fmt.Errorf("failed to write report csv totals: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to write report csv: %w", err)
	}

	week := report.WeekStart
	if week == "" {
		week = time.Now().Format(time.DateOnly)
	}
	return buf.Bytes(), fmt.Sprintf("weekly-report-%s.csv", week), nil
}

// csvCell prefixes user-supplied text that a spreadsheet would evaluate as a formula
func csvCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

func validateWeekStart(weekStart string) error {
	if weekStart == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, weekStart); err != nil {
		return domain.ErrInvalidWeekStart
	}
	return nil
}
