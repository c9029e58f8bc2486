package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flightradar/game"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSetsGauges(t *testing.T) {
	c, err := NewRadarCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	c.Observe(game.Stats{Aircraft: 5, Missiles: 2, Tracked: 4, Threats: 1, ContactMarkers: 4, MissileMarkers: 1, Wave: 2, Elapsed: 30})

	assert.Equal(t, 5.0, testutil.ToFloat64(c.Aircraft))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Missiles))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.Tracked))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Threats))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.Markers.WithLabelValues("contact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Markers.WithLabelValues("missile")))
	assert.Equal(t, 30.0, testutil.ToFloat64(c.SimTime))
}

func TestObserveAdvancesCounters(t *testing.T) {
	c, err := NewRadarCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	c.Observe(game.Stats{Launched: 3, Kills: 1, Threats: 2})
	c.Observe(game.Stats{Launched: 5, Kills: 1, Threats: 0})
	c.Observe(game.Stats{Launched: 5, Kills: 2, Threats: 1, Losses: 1})

	assert.Equal(t, 5.0, testutil.ToFloat64(c.Launches))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Kills))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Losses))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.ThreatsStarted))
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRadarCollector(reg)
	require.NoError(t, err)

	_, err = NewRadarCollector(reg)
	assert.Error(t, err)
}

func TestHandlerServesMetrics(t *testing.T) {
	c, err := NewRadarCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	c.Observe(game.Stats{Tracked: 7})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "radar_tracked_contacts 7"))
}

func TestNilCollectorObserve(t *testing.T) {
	var c *RadarCollector
	assert.NotPanics(t, func() { c.Observe(game.Stats{Tracked: 1}) })
}
