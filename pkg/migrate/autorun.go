package migrate

import (
	"context"
	"fmt"

	"github.com/gelaboca/gelaboca-backend/pkg/config"
	"github.com/gelaboca/gelaboca-backend/pkg/db"
	"github.com/gelaboca/gelaboca-backend/pkg/db/models"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
)

// MaybeRunDev migrates the order-archive schema automatically when the app is
// running in dev mode and the feature flag is enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "running schema migrations (dev auto-run)")

	if err := Run(client); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	logg.Info(ctx, "schema migrations completed")
	return nil
}

// Run applies the order-archive schema.
func Run(client *db.Client) error {
	return client.DB().AutoMigrate(&models.Order{}, &models.OrderItem{})
}
