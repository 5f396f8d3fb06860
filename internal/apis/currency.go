package apis

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Rate is the value of one unit of the base currency in Code.
type Rate struct {
	Code  string
	Value float64
}

// RateTable is a snapshot of exchange rates for one base currency.
type RateTable struct {
	Base      string
	UpdatedAt string
	Rates     map[string]float64
}

// Pick returns the rates for codes in the given order, skipping unknown
// codes. With no codes it returns every rate sorted by code.
func (t *RateTable) Pick(codes []string) []Rate {
	if len(codes) == 0 {
		out := make([]Rate, 0, len(t.Rates))
		for code, v := range t.Rates {
			out = append(out, Rate{Code: code, Value: v})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
		return out
	}

	var out []Rate
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if v, ok := t.Rates[code]; ok {
			out = append(out, Rate{Code: code, Value: v})
		}
	}
	return out
}

type ratesResponse struct {
	Result     string             `json:"result"`
	BaseCode   string             `json:"base_code"`
	LastUpdate string             `json:"time_last_update_utc"`
	Rates      map[string]float64 `json:"rates"`
}

// NormalizeCurrency upper-cases code and checks it looks like an ISO 4217 code.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", &InputError{Message: "Please enter a three-letter currency code."}
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", &InputError{Message: "Please enter a three-letter currency code."}
		}
	}
	return code, nil
}

// Rates returns the latest exchange rates for base.
func (c *Client) Rates(ctx context.Context, base string) (*RateTable, error) {
	base, err := NormalizeCurrency(base)
	if err != nil {
		return nil, err
	}

	var resp ratesResponse
	if err := c.http.GetJSON(ctx, c.url(c.endpoints.Currency, "/latest/"+base), &resp); err != nil {
		return nil, fmt.Errorf("fetching rates for %s: %w", base, notFound(err))
	}
	if resp.Result != "success" || len(resp.Rates) == 0 {
		return nil, fmt.Errorf("fetching rates for %s: %w: result %q", base, ErrMalformed, resp.Result)
	}

	return &RateTable{
		Base:      resp.BaseCode,
		UpdatedAt: resp.LastUpdate,
		Rates:     resp.Rates,
	}, nil
}
