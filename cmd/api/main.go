package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/auth"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/export"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/production"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/requisition"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/usecase"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
	infraai "github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/ai"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/memory"
	infrapdf "github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/pdf"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/postgres"
	httpRouter "github.com/sabrinatorgan-glitch/PhageStock/internal/interfaces/http"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/config"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/logger"
)

// repos agrupa los puertos de persistencia ya resueltos contra un driver.
type repos struct {
	lots         repository.LotRepository
	movements    repository.MovementRepository
	requisitions repository.RequisitionRepository
	recipes      repository.RecipeRepository
	orders       repository.ProductionOrderRepository
	users        repository.UserRepository
	locations    repository.LocationRepository
	tx           ledger.TxRunner
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := buildRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer r.close()

	ledgerUC := ledger.NewUseCase(r.tx, log)
	views := ledger.NewViews(r.lots)

	lotUC := usecase.NewLotUseCase(r.lots, r.locations)
	kardexUC := usecase.NewKardexUseCase(r.movements)
	locationUC := usecase.NewLocationUseCase(r.locations, r.lots)
	userUC := usecase.NewUserUseCase(r.users)
	requisitionUC := requisition.NewUseCase(r.requisitions, r.lots, ledgerUC, log)
	productionUC := production.NewUseCase(r.recipes, r.orders, r.lots, log)
	analyticsUC := usecase.NewAnalyticsUseCase(r.lots, r.requisitions, views)
	exportUC := export.NewUseCase(r.lots, r.movements)

	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	aiUC := usecase.NewAIUseCase(geminiSvc, r.lots, r.requisitions, log)

	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Las cinco ubicaciones de la operación siempre existen, venga el driver
	// que venga.
	if err := locationUC.SeedDefaults(); err != nil {
		log.Fatal().Err(err).Msg("sembrar ubicaciones por defecto")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PhageStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		LotUC:         lotUC,
		LedgerUC:      ledgerUC,
		LedgerViews:   views,
		KardexUC:      kardexUC,
		RequisitionUC: requisitionUC,
		ProductionUC:  productionUC,
		AnalyticsUC:   analyticsUC,
		AIUC:          aiUC,
		ExportUC:      exportUC,
		UserUC:        userUC,
		LocationUC:    locationUC,
		LotRepo:       r.lots,
		LabelGen:      infrapdf.NewLabelGenerator(),
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// buildRepos resuelve los repositorios según STORAGE_DRIVER. El modo memory
// arranca vacío y sirve para demos y laboratorio; postgres es el modo de
// producción.
func buildRepos(ctx context.Context, cfg *config.Config) (*repos, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &repos{
			lots:         postgres.NewLotRepository(pool),
			movements:    postgres.NewMovementRepository(pool),
			requisitions: postgres.NewRequisitionRepository(pool),
			recipes:      postgres.NewRecipeRepository(pool),
			orders:       postgres.NewProductionOrderRepository(pool),
			users:        postgres.NewUserRepository(pool),
			locations:    postgres.NewLocationRepository(pool),
			tx:           postgres.NewTxRunner(pool),
			close:        pool.Close,
		}, nil
	default:
		store := memory.NewStore()
		return &repos{
			lots:         memory.NewLotRepository(store),
			movements:    memory.NewMovementRepository(store),
			requisitions: memory.NewRequisitionRepository(),
			recipes:      memory.NewRecipeRepository(),
			orders:       memory.NewProductionOrderRepository(),
			users:        memory.NewUserRepository(),
			locations:    memory.NewLocationRepository(),
			tx:           memory.NewTxRunner(store),
			close:        func() {},
		}, nil
	}
}
