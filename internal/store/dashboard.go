package store

import (
	"context"
	"log/slog"

	"github.com/letsssgooo/classroom/internal/client"
	"github.com/letsssgooo/classroom/internal/domain/models"
)

// DashboardSlice хранит данные главной страницы.
type DashboardSlice struct {
	*Slice[models.Dashboard]

	gw *client.Gateway
}

func newDashboardSlice(gw *client.Gateway, log *slog.Logger) *DashboardSlice {
	return &DashboardSlice{
		Slice: newSlice("dashboard", models.Dashboard{}, models.Dashboard.Clone, log),
		gw:    gw,
	}
}

// FetchDashboard загружает ближайшие задания, объявления и счётчики.
func (d *DashboardSlice) FetchDashboard(ctx context.Context) *Task[models.Dashboard] {
	return dispatch(ctx, d.Slice, operation[models.Dashboard, models.Dashboard]{
		name:       "fetchDashboard",
		fallback:   "An error occurred",
		latestOnly: true,
		call: func(ctx context.Context) (models.Dashboard, error) {
			return client.Call[models.Dashboard](ctx, d.gw, client.Request{Path: "/dashboard"})
		},
		apply: func(state *models.Dashboard, dashboard models.Dashboard) {
			*state = dashboard.Clone()
		},
	})
}
