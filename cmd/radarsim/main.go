// radarsim flies the simulation headless with an autopilot and prints
// radar counters at a fixed interval.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"flightradar/game"
	"flightradar/log"
	"flightradar/metrics"
	"flightradar/radar"
	"flightradar/settings"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	duration := flag.Float64("duration", 120, "Simulated seconds to run")
	dt := flag.Float64("dt", 1.0/60, "Fixed time step in seconds")
	seed := flag.Int64("seed", 1, "Spawn seed")
	every := flag.Float64("print-every", 5, "Seconds between counter lines")
	rangeM := flag.Float64("range", 0, "Radar range in meters (0 keeps the default)")
	realtime := flag.Bool("realtime", false, "Pace steps to wall-clock time")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9102")
	logLevel := flag.String("log-level", "warn", "Logging level: debug, info, warn, error")
	flag.Parse()

	if *dt <= 0 || *duration <= 0 {
		fmt.Fprintln(os.Stderr, "radarsim: -dt and -duration must be positive")
		os.Exit(2)
	}

	lg := log.NewWithWriter(*logLevel, os.Stderr)

	store := settings.NewMemory()
	if *rangeM > 0 {
		if err := store.Set(radar.KeyRange, *rangeM); err != nil {
			fmt.Fprintf(os.Stderr, "radarsim: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var collector *metrics.RadarCollector
	if *metricsAddr != "" {
		var err error
		collector, err = metrics.NewRadarCollector(prometheus.NewRegistry())
		if err != nil {
			fmt.Fprintf(os.Stderr, "radarsim: %v\n", err)
			os.Exit(1)
		}
		srv := serveMetrics(*metricsAddr, collector, lg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	autopilot := &game.Autopilot{Turn: 0.2, CycleEvery: 8}
	sim := game.NewSim(game.DefaultConfig(), store, autopilot, lg, game.WithSeed(*seed))

	var ticker *time.Ticker
	if *realtime {
		ticker = time.NewTicker(time.Duration(*dt * float64(time.Second)))
		defer ticker.Stop()
	}

	fmt.Println("    t  wave  air  msl  tracked  threats  markers  launched  kills  losses")
	next := 0.0
loop:
	for sim.Elapsed() < *duration {
		if ticker != nil {
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			break loop
		}

		sim.Step(*dt)
		collector.Observe(sim.Stats())
		if sim.Elapsed() >= next {
			printStats(sim.Stats())
			next += *every
		}
	}
	printStats(sim.Stats())
}

func serveMetrics(addr string, c *metrics.RadarCollector, lg *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("metrics server", slog.Any("err", err))
		}
	}()
	lg.Info("serving metrics", slog.String("addr", addr))
	return srv
}

func printStats(st game.Stats) {
	fmt.Printf("%5.0f  %4d  %3d  %3d  %7d  %7d  %3d/%-3d  %8d  %5d  %6d\n",
		st.Elapsed, st.Wave, st.Aircraft, st.Missiles, st.Tracked, st.Threats,
		st.ContactMarkers, st.MissileMarkers, st.Launched, st.Kills, st.Losses)
}
