// Package panels turns upstream API calls into renderable dashboard panels.
//
// Every panel follows the same policy: one load, one render, and any error
// collapses into the panel's fixed failure message. Invalid input is the only
// exception and is reported with its own message.
package panels

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	texttemplate "text/template"
	"time"

	"github.com/ziadkadry99/apidash/internal/apis"
)

// ErrUnknownPanel is returned for panel IDs that are not registered.
var ErrUnknownPanel = errors.New("unknown panel")

// Params are the user-supplied inputs of a panel.
type Params map[string]string

// Input describes the optional text input next to a panel's button.
type Input struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Default     string `json:"default,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
}

type loadFunc func(ctx context.Context, params Params) (any, error)

// Panel is one request/render pair bound to a dashboard button.
type Panel struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Button         string  `json:"button"`
	Inputs         []Input `json:"inputs,omitempty"`
	FailureMessage string  `json:"failure_message"`

	// Description is markdown; DescriptionHTML is its rendering.
	Description     string        `json:"description"`
	DescriptionHTML template.HTML `json:"-"`

	load loadFunc
	html *template.Template
	text *texttemplate.Template
}

// NeedsInput reports whether the panel has a required input without a default.
func (p *Panel) NeedsInput() bool {
	for _, in := range p.Inputs {
		if !in.Optional && in.Default == "" {
			return true
		}
	}
	return false
}

// Result is the outcome of one panel fetch.
type Result struct {
	PanelID  string
	OK       bool
	HTML     template.HTML
	Text     string
	Message  string
	Invalid  bool
	Err      error
	Duration time.Duration
}

// withDefaults fills inputs absent from params with their defaults.
// A present but empty value is kept so the user can clear a default.
func (p *Panel) withDefaults(params Params) Params {
	out := make(Params, len(params)+len(p.Inputs))
	for k, v := range params {
		out[k] = v
	}
	for _, in := range p.Inputs {
		if _, ok := out[in.Name]; !ok && in.Default != "" {
			out[in.Name] = in.Default
		}
	}
	return out
}

// Fetch loads and renders the panel. It never returns an error: failures
// are reported on the Result.
func (p *Panel) Fetch(ctx context.Context, params Params) Result {
	start := time.Now()
	res := Result{PanelID: p.ID}

	data, err := p.load(ctx, p.withDefaults(params))
	if err == nil {
		res.HTML, res.Text, err = p.render(data)
	}
	res.Duration = time.Since(start)

	if err != nil {
		res.Err = err
		res.Message = p.FailureMessage
		var ie *apis.InputError
		if errors.As(err, &ie) {
			res.Invalid = true
			res.Message = ie.Message
		}
		return res
	}

	res.OK = true
	return res
}

func (p *Panel) render(data any) (template.HTML, string, error) {
	var hb bytes.Buffer
	if err := p.html.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("rendering %s html: %w", p.ID, err)
	}
	var tb bytes.Buffer
	if err := p.text.Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("rendering %s text: %w", p.ID, err)
	}
	return template.HTML(hb.String()), tb.String(), nil
}
