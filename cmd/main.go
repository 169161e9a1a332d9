package main

import (
	"context"
	"fmt"
	"os"

	"github.com/legalease/backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	// Degrade rather than abort: the API still serves contracts and
	// analyses without the reference dataset.
	if err := a.LoadDataset(context.Background()); err != nil {
		a.Log.Warn("Dataset load failed, continuing without reference data", "error", err)
	}

	a.Log.Info("Server listening", "port", a.Cfg.Port)
	if err := a.Run(); err != nil {
		a.Log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
