package migrate

import (
	"context"
	"fmt"

	"github.com/sandwichpos/pos-backend/pkg/config"
	"github.com/sandwichpos/pos-backend/pkg/db"
	"github.com/sandwichpos/pos-backend/pkg/logger"
)

// MaybeRunDev applies the embedded migrations when running in dev with
// POS_AUTO_MIGRATE enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "migrate.autorun.start")

	applied, err := Up(ctx, sqlDB)
	if err != nil {
		return err
	}

	logg.Info(logg.WithField(ctx, "applied", applied), "migrate.autorun.complete")
	return nil
}
