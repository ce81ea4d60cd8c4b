package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type reportSource struct{ c *apiclient.Client }

const reportsPath = "/api/reports/reports/"

var generatePaths = map[domain.ReportType]string{
	domain.ReportProjectPerformance: reportsPath + "generate_project_performance/",
	domain.ReportSales:              reportsPath + "generate_sales_report/",
	domain.ReportClient:             reportsPath + "generate_client_report/",
}

func (r reportSource) List(ctx context.Context, query url.Values) (apiclient.Page[domain.Report], error) {
	return list[domain.Report](ctx, r.c, reportsPath, query)
}

func (r reportSource) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	return apiclient.Fetch[domain.DashboardStats](ctx, r.c, http.MethodGet, reportsPath+"dashboard_stats/", nil, nil)
}

func (r reportSource) Generate(ctx context.Context, kind domain.ReportType, period domain.DateRange) (domain.Report, error) {
	path, ok := generatePaths[kind]
	if !ok {
		return domain.Report{}, &apiclient.Error{
			Kind:    apiclient.KindValidation,
			Message: fmt.Sprintf("report_type: %q cannot be generated.", kind),
			Fields:  map[string][]string{"report_type": {fmt.Sprintf("%q cannot be generated.", kind)}},
		}
	}
	return apiclient.Fetch[domain.Report](ctx, r.c, http.MethodPost, path, period, nil)
}
