package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/apidash/internal/history"
	"github.com/ziadkadry99/apidash/internal/panels"
)

// panelInfo is the JSON form of a panel.
type panelInfo struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Button         string         `json:"button"`
	Inputs         []panels.Input `json:"inputs"`
	FailureMessage string         `json:"failure_message"`
	Description    string         `json:"description"`
}

// statsResponse is the JSON response for the stats endpoint.
type statsResponse struct {
	TotalFetches int                  `json:"total_fetches"`
	Failures     int                  `json:"failures"`
	Panels       []history.PanelStats `json:"panels"`
}

// recentResponse is the JSON response for the recent activity endpoint.
type recentResponse struct {
	Fetches []history.Entry `json:"fetches"`
}

// paramsFromQuery picks the panel's declared inputs out of the query string.
// Inputs absent from the query are left unset so their defaults apply.
func paramsFromQuery(p *panels.Panel, r *http.Request) panels.Params {
	q := r.URL.Query()
	return declaredParams(p, func(name string) (string, bool) {
		vals, ok := q[name]
		if !ok || len(vals) == 0 {
			return "", false
		}
		return vals[0], true
	})
}

// paramsFromMap is paramsFromQuery for websocket messages.
func paramsFromMap(p *panels.Panel, m map[string]string) panels.Params {
	return declaredParams(p, func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	})
}

func declaredParams(p *panels.Panel, lookup func(name string) (string, bool)) panels.Params {
	params := panels.Params{}
	for _, in := range p.Inputs {
		if v, ok := lookup(in.Name); ok {
			params[in.Name] = v
		}
	}
	return params
}

func (d *Dashboard) handlePanel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := d.registry.Get(id)
	if !ok {
		writeText(w, http.StatusNotFound, "unknown panel: "+id)
		return
	}

	res, err := d.fetch(r.Context(), id, paramsFromQuery(p, r), history.SourceHTTP)
	if err != nil {
		if errors.Is(err, panels.ErrUnknownPanel) {
			writeText(w, http.StatusNotFound, "unknown panel: "+id)
			return
		}
		writeText(w, http.StatusInternalServerError, p.FailureMessage)
		return
	}

	switch {
	case res.OK:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(res.HTML))
	case res.Invalid:
		writeText(w, http.StatusBadRequest, res.Message)
	default:
		writeText(w, http.StatusBadGateway, res.Message)
	}
}

func (d *Dashboard) handleListPanels(w http.ResponseWriter, r *http.Request) {
	list := d.registry.List()
	out := make([]panelInfo, 0, len(list))
	for _, p := range list {
		inputs := p.Inputs
		if inputs == nil {
			inputs = []panels.Input{}
		}
		out = append(out, panelInfo{
			ID:             p.ID,
			Title:          p.Title,
			Button:         p.Button,
			Inputs:         inputs,
			FailureMessage: p.FailureMessage,
			Description:    p.Description,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (d *Dashboard) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{Panels: []history.PanelStats{}}
	if d.history != nil {
		stats, err := d.history.Stats(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		for _, s := range stats {
			resp.TotalFetches += s.Successes + s.Failures
			resp.Failures += s.Failures
		}
		if stats != nil {
			resp.Panels = stats
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (d *Dashboard) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	resp := recentResponse{Fetches: []history.Entry{}}
	if d.history != nil {
		entries, err := d.history.Recent(r.Context(), r.URL.Query().Get("panel"), limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if entries != nil {
			resp.Fetches = entries
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}
