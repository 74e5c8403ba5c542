package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

var perfMeter = otel.Meter("bunkmate.perf")

var (
	cpuGauge, _       = perfMeter.Float64Gauge("cpu_usage")
	heapGauge, _      = perfMeter.Int64Gauge("heap_allocated_mb")
	goroutineGauge, _ = perfMeter.Int64Gauge("goroutine_count")
)

// InstrumentPerfStats samples process health every 30s until the
// context is canceled. Goroutine count is the one to watch here, every
// in-flight scrape holds a portal session open.
func InstrumentPerfStats(ctx context.Context) {
	go func() {
		var memStats runtime.MemStats
		ticker := time.NewTicker(time.Second * 30)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runtime.ReadMemStats(&memStats)
				heapGauge.Record(ctx, int64(memStats.Alloc/1_000_000))
				goroutineGauge.Record(ctx, int64(runtime.NumGoroutine()))

				cpuUsage, err := cpu.Percent(time.Minute, false)
				if err != nil {
					slog.Warn("failed to read cpu usage", "err", err)
					continue
				}
				cpuGauge.Record(ctx, cpuUsage[0])
			case <-ctx.Done():
				return
			}
		}
	}()
}
