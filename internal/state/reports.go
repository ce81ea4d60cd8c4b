package state

import (
	"context"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

const (
	KindFetchReports   = "fetch_reports"
	KindFetchDashboard = "fetch_dashboard_stats"
	KindGenerateReport = "generate_report"
)

type Reports struct {
	Reports   resource.Collection[domain.Report] `json:"reports"`
	Dashboard *domain.DashboardStats             `json:"dashboard_stats"`
}

// ByType returns the loaded reports of type t, or all of them when t is empty.
func (r Reports) ByType(t domain.ReportType) []domain.Report {
	out := make([]domain.Report, 0, r.Reports.Len())
	for _, rep := range r.Reports.Items {
		if t == "" || rep.ReportType == t {
			out = append(out, rep)
		}
	}
	return out
}

// ReportStats counts the loaded reports per type.
type ReportStats struct {
	Total  int                       `json:"total"`
	ByType map[domain.ReportType]int `json:"by_type"`
}

func (r Reports) Stats() ReportStats {
	stats := ReportStats{Total: r.Reports.Len(), ByType: map[domain.ReportType]int{}}
	for _, rep := range r.Reports.Items {
		stats.ByType[rep.ReportType]++
	}
	return stats
}

func reportsLens(st *Reports) *resource.Collection[domain.Report] { return &st.Reports }

type FetchReports struct{ Query url.Values }

func (a FetchReports) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Reports, resource.ListOp(KindFetchReports, reportsLens,
		func(ctx context.Context) (apiclient.Page[domain.Report], error) {
			return s.src.Reports().List(ctx, a.Query)
		}))
}

type FetchDashboardStats struct{}

func (FetchDashboardStats) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Reports, resource.Op[Reports, domain.DashboardStats]{
		Kind: KindFetchDashboard,
		Run:  s.src.Reports().DashboardStats,
		Reduce: func(st *Reports, stats domain.DashboardStats) {
			st.Dashboard = &stats
		},
	})
}

// GenerateReport asks the server to build a report and prepends it. Each
// report type has its own lane.
type GenerateReport struct {
	Type   domain.ReportType
	Period domain.DateRange
}

func (a GenerateReport) dispatch(ctx context.Context, s *Store) *resource.Task {
	op := resource.CreateOp(KindGenerateReport, reportsLens,
		func(ctx context.Context) (domain.Report, error) {
			return s.src.Reports().Generate(ctx, a.Type, a.Period)
		}, "Report generated successfully")
	op.Target = string(a.Type)
	return resource.Dispatch(ctx, s.Reports, op)
}
