package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/ccis-backend/internal/app"
	"github.com/yungbote/ccis-backend/internal/observability"
	"github.com/yungbote/ccis-backend/internal/platform/envutil"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx := context.Background()
	shutdownOTel := observability.InitOTel(ctx, a.Log, observability.OtelConfig{
		ServiceName: "ccis-backend",
		Environment: envutil.Str("ENVIRONMENT", "development"),
		Version:     envutil.Str("SERVICE_VERSION", "dev"),
	})
	if shutdownOTel != nil {
		defer shutdownOTel(ctx)
	}

	a.Start()

	port := envutil.Str("PORT", "8080")
	a.Log.Info("Server listening", "port", port)
	if err := a.Run(":" + port); err != nil {
		a.Log.Error("Server failed", "error", err)
	}
}
