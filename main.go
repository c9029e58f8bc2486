package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"flightradar/game"
	"flightradar/log"
	"flightradar/settings"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logLevel := flag.String("log-level", "info", "Logging level: debug, info, warn, error")
	logDir := flag.String("log-dir", "", "Directory for log files (default: user config dir)")
	settingsPath := flag.String("settings", defaultSettingsPath(), "Path of the persisted radar settings")
	profileDir := flag.String("profile-dir", "", "Capture CPU profiles into this directory when the frame rate drops")
	rotate := flag.Bool("radar-rotate", true, "Rotate the radar display with the aircraft heading")
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	store, err := settings.Load(*settingsPath)
	if err != nil {
		lg.Errorf("%s: %v", *settingsPath, err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", *settingsPath, err)
		os.Exit(1)
	}

	lg.Infof("settings loaded from %s", store.Path())

	config := game.DefaultConfig()
	config.RadarRotate = *rotate
	g := game.NewGame(config, store, lg)
	if *profileDir != "" {
		p, err := game.NewProfiler(*profileDir, lg)
		if err != nil {
			lg.Warn("profiling disabled", slog.Any("err", err))
		} else {
			g.SetProfiler(p)
		}
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Flight Radar")
	ebiten.SetWindowResizable(true)

	err = ebiten.RunGame(g)
	if serr := store.Save(); serr != nil {
		lg.Warn("saving settings", slog.Any("err", serr))
	}
	if err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "FlightRadar", "settings.msgpack")
}
