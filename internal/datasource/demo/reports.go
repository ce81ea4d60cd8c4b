package demo

import (
	"cmp"
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type reportSource struct{ s *Source }

// Placeholders the backend records until task tracking exists.
const (
	defaultCompletion   = "50.00"
	defaultSatisfaction = "8.0"
)

var reportTitles = map[domain.ReportType]string{
	domain.ReportProjectPerformance: "Project performance report",
	domain.ReportSales:              "Sales report",
	domain.ReportClient:             "Client report",
}

// seesAll reports whether u may read reports created by others.
func seesAll(u domain.User) bool {
	return u.Role == domain.RoleAdmin || u.Role == domain.RoleEmployee
}

func (r reportSource) List(ctx context.Context, query url.Values) (apiclient.Page[domain.Report], error) {
	caller, done, err := r.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.Report]{}, err
	}
	defer done()

	kind := domain.ReportType(query.Get("report_type"))
	return page(r.s.reports, func(rep domain.Report) bool {
		if !seesAll(caller) && rep.CreatedBy != caller.ID {
			return false
		}
		return kind == "" || rep.ReportType == kind
	}), nil
}

func (r reportSource) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	_, done, err := r.s.enter(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	defer done()

	now := r.s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)

	stats := domain.DashboardStats{
		TotalProjects: len(r.s.projects),
		TotalClients:  len(r.s.clients),
	}
	var revenue float64
	for _, p := range r.s.projects {
		switch p.Status {
		case domain.ProjectActive:
			stats.ActiveProjects++
		case domain.ProjectCompleted:
			stats.CompletedProjects++
		}
		if p.StartDate != "" && p.StartDate >= monthStart {
			stats.MonthlyProjects++
		}
		revenue += amount(p.Budget)
	}
	stats.TotalRevenue = json.Number(strconv.FormatFloat(revenue, 'f', -1, 64))
	return stats, nil
}

func (r reportSource) Generate(ctx context.Context, kind domain.ReportType, period domain.DateRange) (domain.Report, error) {
	caller, done, err := r.s.enter(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	defer done()

	if !kind.Generated() {
		return domain.Report{}, invalid("report_type", `"`+string(kind)+`" cannot be generated.`)
	}
	for field, v := range map[string]string{"start_date": period.StartDate, "end_date": period.EndDate} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, v); err != nil {
			return domain.Report{}, invalid(field, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
	}

	now := r.s.now().UTC()
	rep := domain.Report{
		ID:            r.s.newID(),
		Title:         reportTitles[kind] + " - " + r.s.today(),
		ReportType:    kind,
		CreatedBy:     caller.ID,
		CreatedByName: caller.DisplayName(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch kind {
	case domain.ReportProjectPerformance:
		rep.StartDate, rep.EndDate = period.StartDate, period.EndDate
		rep.ProjectMetrics = r.projectMetrics(period, now)
	case domain.ReportSales:
		rep.StartDate, rep.EndDate = period.StartDate, period.EndDate
		rep.SalesMetrics = []domain.SalesMetric{r.salesMetric(period, now)}
	case domain.ReportClient:
		rep.ClientMetrics = r.clientMetrics(now)
	}

	r.s.reports = prepend(r.s.reports, rep)
	return rep, nil
}

// inPeriod reports whether p started within period. Projects without a start
// date only match an open period.
func inPeriod(p domain.Project, period domain.DateRange) bool {
	if period.StartDate != "" && (p.StartDate == "" || p.StartDate < period.StartDate) {
		return false
	}
	if period.EndDate != "" && (p.StartDate == "" || p.StartDate > period.EndDate) {
		return false
	}
	return true
}

// projectMetrics must be called with mu held.
func (r reportSource) projectMetrics(period domain.DateRange, now time.Time) []domain.ProjectMetric {
	today := now.Truncate(24 * time.Hour)
	var out []domain.ProjectMetric
	for _, p := range r.s.projects {
		if !inPeriod(p, period) {
			continue
		}
		remaining := 0
		if end, err := time.Parse(time.DateOnly, cmp.Or(p.EndDate, p.Deadline)); err == nil {
			remaining = int(end.Sub(today).Hours() / 24)
		}
		out = append(out, domain.ProjectMetric{
			ID:                   r.s.newID(),
			Project:              p.ID,
			ProjectName:          p.Title,
			CompletionPercentage: defaultCompletion,
			BudgetUsed:           money(amount(p.Budget) / 2),
			DaysRemaining:        remaining,
			IsOnTrack:            remaining > 0,
			RecordedAt:           now,
		})
	}
	return out
}

// salesMetric must be called with mu held.
func (r reportSource) salesMetric(period domain.DateRange, now time.Time) domain.SalesMetric {
	m := domain.SalesMetric{
		ID:          r.s.newID(),
		PeriodStart: period.StartDate,
		PeriodEnd:   period.EndDate,
		RecordedAt:  now,
	}
	if m.PeriodStart == "" {
		m.PeriodStart = r.s.today()
	}
	if m.PeriodEnd == "" {
		m.PeriodEnd = r.s.today()
	}

	var revenue float64
	for _, p := range r.s.projects {
		if !inPeriod(p, period) {
			continue
		}
		m.TotalProjects++
		switch p.Status {
		case domain.ProjectActive:
			m.ActiveProjects++
		case domain.ProjectCompleted:
			m.CompletedProjects++
		}
		revenue += amount(p.Budget)
	}
	m.TotalRevenue = money(revenue)
	m.AverageProjectValue = money(0)
	if m.TotalProjects > 0 {
		m.AverageProjectValue = money(revenue / float64(m.TotalProjects))
	}
	return m
}

// clientMetrics must be called with mu held.
func (r reportSource) clientMetrics(now time.Time) []domain.ClientMetric {
	out := make([]domain.ClientMetric, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		m := domain.ClientMetric{
			ID:                r.s.newID(),
			Client:            c.ID,
			ClientName:        c.CompanyName,
			SatisfactionScore: defaultSatisfaction,
			RecordedAt:        now,
		}
		var spent float64
		for _, p := range r.s.projects {
			if p.Client == nil || *p.Client != c.ID {
				continue
			}
			m.TotalProjects++
			switch p.Status {
			case domain.ProjectActive:
				m.ActiveProjects++
			case domain.ProjectCompleted:
				m.CompletedProjects++
			}
			spent += amount(p.Budget)
			m.LastProjectDate = max(m.LastProjectDate, p.StartDate)
		}
		m.TotalSpent = money(spent)
		out = append(out, m)
	}
	return out
}

// amount parses a decimal string; blanks and garbage count as zero.
func amount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
