package game

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"flightradar/log"
)

// Profiler captures a CPU profile when the frame rate drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	dir             string
	lg              *log.Logger

	// MinFPS is the frame rate below which a capture is started
	MinFPS float64
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, lg *log.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("profile dir: %w", err)
	}
	return &Profiler{
		captureCooldown: 30 * time.Second,
		captureDuration: 5 * time.Second,
		dir:             dir,
		lg:              lg,
		MinFPS:          30,
	}, nil
}

// ObserveFPS starts a capture if fps is below MinFPS. Captures run in the
// background and are rate limited.
func (p *Profiler) ObserveFPS(fps float64) {
	if p == nil || fps >= p.MinFPS {
		return
	}
	if err := p.CaptureProfile(fmt.Sprintf("fps%.0f", fps)); err == nil {
		p.lg.Warn("frame rate drop, profiling", slog.Float64("fps", fps))
	}
}

// CaptureProfile starts a CPU profile capture tagged with reason
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCaptureTime))
	}
	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}
	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	path := filepath.Join(p.dir, fmt.Sprintf("radar-%s-%s.cpu.prof", time.Now().Format("20060102-150405"), reason))
	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()
		if err := p.captureCPUProfile(path); err != nil {
			p.lg.Warn("cpu profile", slog.Any("err", err))
			return
		}
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		p.lg.Info("cpu profile saved",
			slog.String("path", path),
			slog.Uint64("heap_alloc_kb", m.HeapAlloc/1024),
			slog.Uint64("heap_objects", m.HeapObjects),
			slog.Uint64("num_gc", uint64(m.NumGC)))
	}()
	return nil
}

func (p *Profiler) captureCPUProfile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()
	return nil
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}
