package main

import (
	"context"
	"database/sql"
	"time"

	"playvault/playvault"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noinspection GoUnusedExportedFunction
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	initStart := time.Now()

	logger.Info("Loading Playvault plugin...")

	if _, err := playvault.Init(ctx, logger, nk, initializer, "playvault.json"); err != nil {
		logger.Error("Failed to initialize Playvault: %v", err)
		return err
	}

	logger.Info("Playvault plugin loaded in '%d' msec.", time.Now().Sub(initStart).Milliseconds())
	return nil
}
