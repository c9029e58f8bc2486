// Package metrics exports simulation and radar counters to Prometheus.
package metrics

import (
	"fmt"
	"net/http"

	"flightradar/game"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RadarCollector bundles the gauges and counters fed from game.Stats
type RadarCollector struct {
	gatherer prometheus.Gatherer

	Aircraft       prometheus.Gauge
	Missiles       prometheus.Gauge
	Tracked        prometheus.Gauge
	Threats        prometheus.Gauge
	Markers        *prometheus.GaugeVec
	Wave           prometheus.Gauge
	SimTime        prometheus.Gauge
	Launches       prometheus.Counter
	Kills          prometheus.Counter
	Losses         prometheus.Counter
	ThreatsStarted prometheus.Counter

	last game.Stats
}

// NewRadarCollector registers the radar metrics against reg, defaulting
// to the global registry when nil.
func NewRadarCollector(reg prometheus.Registerer) (*RadarCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &RadarCollector{
		gatherer: gatherer,
		Aircraft: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_aircraft",
			Help: "Aircraft currently in the world.",
		}),
		Missiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_missiles",
			Help: "Missiles currently in flight.",
		}),
		Tracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "radar_tracked_contacts",
			Help: "Contacts in the radar's tracked list.",
		}),
		Threats: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "radar_missile_threats",
			Help: "Missiles currently flagged as incoming threats.",
		}),
		Markers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "radar_markers",
			Help: "Live marker visuals, labeled by pool.",
		}, []string{"pool"}),
		Wave: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_wave",
			Help: "Current enemy wave.",
		}),
		SimTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_elapsed_seconds",
			Help: "Accumulated simulation time.",
		}),
		Launches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_missile_launches_total",
			Help: "Missiles launched.",
		}),
		Kills: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_player_kills_total",
			Help: "Aircraft destroyed by the player.",
		}),
		Losses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_player_losses_total",
			Help: "Times the player was shot down.",
		}),
		ThreatsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "radar_threat_increases_total",
			Help: "Observed increases of the tracked threat count.",
		}),
	}

	for name, col := range map[string]prometheus.Collector{
		"sim_aircraft":                 c.Aircraft,
		"sim_missiles":                 c.Missiles,
		"radar_tracked_contacts":       c.Tracked,
		"radar_missile_threats":        c.Threats,
		"radar_markers":                c.Markers,
		"sim_wave":                     c.Wave,
		"sim_elapsed_seconds":          c.SimTime,
		"sim_missile_launches_total":   c.Launches,
		"sim_player_kills_total":       c.Kills,
		"sim_player_losses_total":      c.Losses,
		"radar_threat_increases_total": c.ThreatsStarted,
	} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
	}
	return c, nil
}

// Observe updates every metric from st. Counters advance by the change
// since the previous call.
func (c *RadarCollector) Observe(st game.Stats) {
	if c == nil {
		return
	}
	c.Aircraft.Set(float64(st.Aircraft))
	c.Missiles.Set(float64(st.Missiles))
	c.Tracked.Set(float64(st.Tracked))
	c.Threats.Set(float64(st.Threats))
	c.Markers.WithLabelValues("contact").Set(float64(st.ContactMarkers))
	c.Markers.WithLabelValues("missile").Set(float64(st.MissileMarkers))
	c.Wave.Set(float64(st.Wave))
	c.SimTime.Set(st.Elapsed)

	addDelta(c.Launches, st.Launched, c.last.Launched)
	addDelta(c.Kills, st.Kills, c.last.Kills)
	addDelta(c.Losses, st.Losses, c.last.Losses)
	addDelta(c.ThreatsStarted, st.Threats, c.last.Threats)
	c.last = st
}

// Handler exposes a ready-to-use /metrics handler
func (c *RadarCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func addDelta(counter prometheus.Counter, cur, prev int) {
	if cur > prev {
		counter.Add(float64(cur - prev))
	}
}
