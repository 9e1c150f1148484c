package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/davidkuria/resto-api/internal/application/service"
	"github.com/davidkuria/resto-api/internal/config"
	domainRepo "github.com/davidkuria/resto-api/internal/domain/repository"
	"github.com/davidkuria/resto-api/internal/infrastructure/database"
	"github.com/davidkuria/resto-api/internal/infrastructure/filestore"
	"github.com/davidkuria/resto-api/internal/infrastructure/repository"
	"github.com/davidkuria/resto-api/internal/presentation/http/handler"
	"github.com/davidkuria/resto-api/internal/presentation/http/routes"
	"github.com/davidkuria/resto-api/pkg/logging"
	"github.com/davidkuria/resto-api/pkg/metrics"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Setup(cfg.App.Debug)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	billRepo, menuRepo, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}

	// Initialize services
	billService := service.NewBillService(billRepo, cfg.Store.Timeout)
	menuService := service.NewMenuService(menuRepo, cfg.Store.Timeout)

	// Initialize handlers
	handlers := &routes.Handlers{
		Bill: handler.NewBillHandler(billService),
		Menu: handler.NewMenuHandler(menuService, &cfg.Storage),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:     cfg,
		Metrics: metrics.NewServerMetrics("api"),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "name", cfg.App.Name, "port", port, "env", cfg.App.Env, "store", cfg.Store.Driver)

	if err := router.Run(":" + port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// openStore wires the persistence strategy selected by configuration. Both
// strategies satisfy the same repository contracts, so nothing above this
// point knows which one is running.
func openStore(cfg *config.Config) (domainRepo.BillRepository, domainRepo.MenuRepository, error) {
	switch cfg.Store.Driver {
	case "file":
		store, err := filestore.Open(cfg.Store.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return store.Bills(), store.Menu(), nil
	default:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, err
		}
		if err := database.SeedMenu(db); err != nil {
			slog.Warn("failed to seed menu", "error", err)
		}
		return repository.NewBillRepository(db), repository.NewMenuRepository(db), nil
	}
}
