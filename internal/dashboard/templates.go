package dashboard

import (
	"bytes"
	_ "embed"
	"net/http"

	"github.com/ziadkadry99/apidash/internal/panels"
)

//go:embed index.html.tmpl
var indexTemplate string

type indexData struct {
	Panels []*panels.Panel
}

// ServeIndex renders the dashboard page.
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := d.index.Execute(&buf, indexData{Panels: d.registry.List()}); err != nil {
		d.logger.Error().Err(err).Msg("rendering index")
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
