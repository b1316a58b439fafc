package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks frame timing and draw call counts for the
// viewers' stats overlay.
type PerformanceMonitor struct {
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame

	sprites atomic.Uint64 // last frame
	fills   atomic.Uint64 // last frame
	tiles   atomic.Uint64 // cells in the active map

	mutex        sync.RWMutex
	avgFrameTime float64 // nanoseconds, exponential moving average
	startTime    time.Time

	// lowFPS is the threshold for the low_fps alert.
	lowFPS float64
}

// smoothing is the weight given to the newest frame in the moving average.
const smoothing = 0.1

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime: time.Now(),
		lowFPS:    30,
	}
}

// FrameTimer measures one frame.
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.recordFrame(time.Since(ft.startTime))
}

func (pm *PerformanceMonitor) recordFrame(d time.Duration) {
	pm.frameTime.Store(uint64(d.Nanoseconds()))
	count := pm.frameCount.Add(1)

	pm.mutex.Lock()
	if count == 1 {
		pm.avgFrameTime = float64(d.Nanoseconds())
	} else {
		pm.avgFrameTime += smoothing * (float64(d.Nanoseconds()) - pm.avgFrameTime)
	}
	pm.mutex.Unlock()
}

// RecordDraws stores the draw call counts of the last frame.
func (pm *PerformanceMonitor) RecordDraws(sprites, fills int64) {
	pm.sprites.Store(uint64(max(sprites, 0)))
	pm.fills.Store(uint64(max(fills, 0)))
}

// SetTileCount stores the number of cells in the active map.
func (pm *PerformanceMonitor) SetTileCount(n int) {
	pm.tiles.Store(uint64(max(n, 0)))
}

// Metrics is a snapshot of the monitor.
type Metrics struct {
	Frames          uint64
	FramesPerSecond float64
	AvgFrameTime    time.Duration
	LastFrameTime   time.Duration
	Sprites         uint64
	Fills           uint64
	Tiles           uint64
	MemoryUsageMB   uint64
	Uptime          time.Duration
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() Metrics {
	pm.mutex.RLock()
	avg := pm.avgFrameTime
	start := pm.startTime
	pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return Metrics{
		Frames:          pm.frameCount.Load(),
		FramesPerSecond: framesPerSecond(avg),
		AvgFrameTime:    time.Duration(avg),
		LastFrameTime:   time.Duration(pm.frameTime.Load()),
		Sprites:         pm.sprites.Load(),
		Fills:           pm.fills.Load(),
		Tiles:           pm.tiles.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
		Uptime:          time.Since(start),
	}
}

func framesPerSecond(frameNanos float64) float64 {
	if frameNanos <= 0 {
		return 0
	}
	return float64(time.Second) / frameNanos
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
}

// CheckPerformanceAlerts reports a low_fps alert when the average frame rate
// falls below the threshold. No alert is raised before the first frame.
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	pm.mutex.RLock()
	avg := pm.avgFrameTime
	threshold := pm.lowFPS
	pm.mutex.RUnlock()

	if pm.frameCount.Load() == 0 {
		return nil
	}

	var alerts []PerformanceAlert
	if fps := framesPerSecond(avg); fps < threshold {
		alerts = append(alerts, PerformanceAlert{
			Type:      "low_fps",
			Message:   "frame rate is below threshold",
			Value:     fps,
			Threshold: threshold,
		})
	}
	return alerts
}

// SetLowFPSThreshold changes the low_fps alert threshold.
func (pm *PerformanceMonitor) SetLowFPSThreshold(fps float64) {
	pm.mutex.Lock()
	pm.lowFPS = fps
	pm.mutex.Unlock()
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.sprites.Store(0)
	pm.fills.Store(0)
	pm.tiles.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
