package main

import (
	"context"
	"log/slog"

	"bunkmate-backend/lib/restyutil"
	"bunkmate-backend/lib/scrapers/etlab"
	"bunkmate-backend/lib/serviceutil"
	"bunkmate-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	err := telemetry.SetupFromEnv(ctx, "bunkmate-server")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		telemetry.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}

	etlab.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/etlab"),
	)
}
