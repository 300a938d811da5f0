package http

import (
	"context"
	"io"

	"procurepulse/internal/dataprocessing"
	"procurepulse/internal/services"
	"procurepulse/pkg/contracts/domain"
)

// DashboardServiceInterface is what the handlers need from the dashboard service
type DashboardServiceInterface interface {
	Dataset(ctx context.Context) (domain.DatasetInfo, error)
	Reload(ctx context.Context) (domain.DatasetInfo, error)
	Filters(ctx context.Context, sel dataprocessing.Selection) (domain.FilterOptions, error)
	Dashboard(ctx context.Context, sel dataprocessing.Selection) (*services.DashboardView, error)
	RenderHTML(ctx context.Context, sel dataprocessing.Selection) ([]byte, error)
	ExportCSV(ctx context.Context, w io.Writer, sel dataprocessing.Selection) error
	ExportXLSX(ctx context.Context, w io.Writer, sel dataprocessing.Selection) error
}

var _ DashboardServiceInterface = (*services.DashboardService)(nil)
