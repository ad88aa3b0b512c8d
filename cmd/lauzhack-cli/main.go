package main

import (
	"context"
	"os"

	"lauzhack-dataset/cmd/lauzhack-cli/commands"
	"lauzhack-dataset/lib/serviceutil"
	"lauzhack-dataset/lib/telemetry"
)

func main() {
	telemetry.InitSlog(true)

	ctx := serviceutil.SignalContext()
	err := telemetry.SetupFromEnv(ctx, "lauzhack-cli")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	if err == nil {
		defer telemetry.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)
	}

	commands.ExecuteContext(ctx)
}
