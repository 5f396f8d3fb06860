package dashboard

import (
	"context"
	"fmt"
	"html/template"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/apidash/internal/history"
	"github.com/ziadkadry99/apidash/internal/panels"
)

// Dashboard serves the panel page, panel fragments and fetch history.
type Dashboard struct {
	registry *panels.Registry
	history  *history.Store
	logger   zerolog.Logger
	index    *template.Template
}

// New creates a new Dashboard. store may be nil, in which case fetches
// are not recorded and the history endpoints return empty results.
func New(registry *panels.Registry, store *history.Store, logger zerolog.Logger) (*Dashboard, error) {
	index, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}
	return &Dashboard{
		registry: registry,
		history:  store,
		logger:   logger.With().Str("component", "dashboard").Logger(),
		index:    index,
	}, nil
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/panels/{id}", d.handlePanel)
	r.Get("/api/panels", d.handleListPanels)
	r.Get("/api/dashboard/stats", d.handleStats)
	r.Get("/api/dashboard/recent", d.handleRecent)
	r.Get("/ws/panels", d.handleWebSocket)
}

// fetch runs a panel and records the outcome.
func (d *Dashboard) fetch(ctx context.Context, id string, params panels.Params, source history.Source) (panels.Result, error) {
	res, err := d.registry.Fetch(ctx, id, params)
	if err != nil {
		return res, err
	}

	if !res.OK && !res.Invalid {
		d.logger.Warn().Err(res.Err).Str("panel", id).Str("source", string(source)).Msg("panel fetch failed")
	}

	if d.history != nil {
		// The request may already be canceled; the record should still land.
		if _, err := d.history.Record(context.WithoutCancel(ctx), history.FromResult(res, source)); err != nil {
			d.logger.Error().Err(err).Str("panel", id).Msg("recording fetch")
		}
	}
	return res, nil
}
