package telemetry

import (
	"context"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/grafana/pyroscope-go"
)

// pprof label keys.
const (
	ProfilingLabelArea      = "area"
	ProfilingLabelRoute     = "route"
	ProfilingLabelMethod    = "method"
	ProfilingLabelOperation = "operation"
)

// MaxLabelValueLength bounds label values.
const MaxLabelValueLength = 128

// Per-request identifiers would give every sample its own series.
var droppedLabels = map[string]bool{
	"request_id": true,
	"session_id": true,
	"trace_id":   true,
	"span_id":    true,
	"product_id": true,
}

// WithProfilingLabels runs fn with labels attached to the goroutine, so
// Pyroscope can slice CPU samples by them.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// HTTPRequestLabels labels a request by storefront area, route pattern
// and method. Empty values are left out.
func HTTPRequestLabels(area, route, method string) map[string]string {
	return nonEmpty(map[string]string{
		ProfilingLabelArea:   area,
		ProfilingLabelRoute:  route,
		ProfilingLabelMethod: method,
	})
}

// OperationLabels labels a background operation such as the session
// janitor.
func OperationLabels(operation string, extra map[string]string) map[string]string {
	labels := maps.Clone(extra)
	if labels == nil {
		labels = make(map[string]string, 1)
	}
	labels[ProfilingLabelOperation] = operation
	return labels
}

func nonEmpty(m map[string]string) map[string]string {
	maps.DeleteFunc(m, func(_, v string) bool { return v == "" })
	return m
}

// sanitizeLabels returns key/value pairs sorted by key. Keys are
// normalized to [a-z0-9_]; dropped keys, empty values and keys that
// normalize to nothing are skipped, and values are truncated.
func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}
	clean := make(map[string]string, len(labels))
	for k, v := range labels {
		k = labelKey(k)
		if k == "" || v == "" || droppedLabels[k] {
			continue
		}
		if len(v) > MaxLabelValueLength {
			v = v[:MaxLabelValueLength]
		}
		clean[k] = v
	}

	pairs := make([]string, 0, 2*len(clean))
	for _, k := range slices.Sorted(maps.Keys(clean)) {
		pairs = append(pairs, k, clean[k])
	}
	return pairs
}

func labelKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '-':
			return '_'
		case r == '_' || ('a' <= r && r <= 'z') || ('0' <= r && r <= '9'):
			return r
		case 'A' <= r && r <= 'Z':
			return unicode.ToLower(r)
		}
		return -1
	}, key)
}
