package render

import (
	"html/template"
	"math"
	"net/url"
	"strconv"

	"github.com/dustin/go-humanize"
)

var funcs = template.FuncMap{
	"bytes": func(n int64) string { return humanize.Bytes(uint64(n)) },
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"num":   formatValue,
	"pct":   func(v float64) string { return strconv.FormatFloat(v*100, 'f', 2, 64) + "%" },
	"add":   func(a, b int) int { return a + b },
	"sub":   func(a, b int) int { return a - b },
	"query": buildQuery,
}

// formatValue prints abundance values compactly; NaN shows as n/a.
func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "n/a"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return humanize.Commaf(v)
	default:
		return strconv.FormatFloat(v, 'g', 6, 64)
	}
}

// buildQuery turns alternating key/value pairs into a trusted URL query, for
// chart image sources.
func buildQuery(path string, kv ...string) template.URL {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	if len(q) == 0 {
		return template.URL(path)
	}
	return template.URL(path + "?" + q.Encode())
}
