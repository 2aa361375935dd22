package observability_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/animefmt/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.Event("text", "results_listed")
	m.Event("text", "results_listed")
	m.Event("callback", "ownership_refused")
	m.CatalogRequest("search", nil, 20*time.Millisecond)
	m.CatalogRequest("media", errors.New("boom"), time.Second)
	m.CardRendered("manual")

	expected := `
# HELP animefmt_events_total Inbound events handled, by kind and outcome
# TYPE animefmt_events_total counter
animefmt_events_total{kind="callback",outcome="ownership_refused"} 1
animefmt_events_total{kind="text",outcome="results_listed"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "animefmt_events_total"))

	count, err := testutil.GatherAndCount(reg, "animefmt_catalog_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "animefmt_cards_rendered_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.Event("text", "help_shown")
		m.CatalogRequest("search", nil, time.Millisecond)
		m.CardRendered("catalog")
	})
}
