package main

import (
	"context"

	"bunkmate-backend/cmd/bunkmate-cli/commands"
	"bunkmate-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(true)
	telemetry.SetupFromEnv(context.Background(), "bunkmate-cli")
	commands.ExecuteContext(context.Background())
}
