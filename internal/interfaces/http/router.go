package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/auth"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/export"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/production"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/requisition"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/usecase"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	LotUC         *usecase.LotUseCase
	LedgerUC      *ledger.UseCase
	LedgerViews   *ledger.Views
	KardexUC      *usecase.KardexUseCase
	RequisitionUC *requisition.UseCase
	ProductionUC  *production.UseCase
	AnalyticsUC   *usecase.AnalyticsUseCase
	AIUC          *usecase.AIUseCase
	ExportUC      *export.UseCase
	UserUC        *usecase.UserUseCase
	LocationUC    *usecase.LocationUseCase
	LotRepo       repository.LotRepository
	LabelGen      *pdf.LabelGenerator
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Lotes (protegido)
	lots := protected.Group("/lots")
	lotHandler := NewLotHandler(deps.LotUC)
	lots.Post("/", lotHandler.Create)
	lots.Get("/", lotHandler.List)
	lots.Get("/sku/:sku/global-stock", lotHandler.GlobalStock)
	lots.Get("/:id", lotHandler.GetByID)
	lots.Put("/:id", lotHandler.Update)
	lots.Delete("/:id", lotHandler.Delete)

	// Movimientos y kardex (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC, deps.KardexUC)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.ListKardex)
	movements.Get("/lot/:lotId", movementHandler.ListByLot)

	// Requisiciones (protegido; aprobar y rechazar requieren admin)
	requisitions := protected.Group("/requisitions")
	requisitionHandler := NewRequisitionHandler(deps.RequisitionUC)
	requisitions.Post("/", requisitionHandler.Create)
	requisitions.Get("/", requisitionHandler.List)
	requisitions.Get("/:id", requisitionHandler.GetByID)
	adminOnly := RequireRole(entity.RoleMasterAdmin, entity.RoleAdmin)
	requisitions.Post("/:id/approve", adminOnly, requisitionHandler.Approve)
	requisitions.Post("/:id/reject", adminOnly, requisitionHandler.Reject)
	requisitions.Post("/:id/fulfill", requisitionHandler.Fulfill)

	// Producción: recetas y kanban de órdenes (protegido)
	prod := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	prod.Post("/recipes", adminOnly, productionHandler.CreateRecipe)
	prod.Get("/recipes", productionHandler.ListRecipes)
	prod.Get("/recipes/:id", productionHandler.GetRecipe)
	prod.Post("/recipes/:id/deactivate", adminOnly, productionHandler.DeactivateRecipe)
	prod.Delete("/recipes/:id", adminOnly, productionHandler.DeleteRecipe)
	prod.Post("/orders", productionHandler.CreateOrder)
	prod.Get("/orders", productionHandler.ListOrders)
	prod.Get("/orders/:id", productionHandler.GetOrder)
	prod.Patch("/orders/:id/status", productionHandler.UpdateOrderStatus)

	// Auditoría / conciliación (protegido, admin)
	audit := protected.Group("/audit", adminOnly)
	auditHandler := NewAuditHandler(deps.LedgerUC, deps.LedgerViews)
	audit.Post("/adjustments", auditHandler.Adjust)
	audit.Post("/count-sheet", auditHandler.CountSheet)
	audit.Post("/count-sheet/preview", auditHandler.PreviewCountSheet)

	// Exports CSV (protegido)
	exports := protected.Group("/exports")
	exportHandler := NewExportHandler(deps.ExportUC)
	exports.Get("/inventory", exportHandler.Inventory)
	exports.Get("/kardex", exportHandler.Kardex)
	exports.Post("/audit/pulsar", exportHandler.PulsarAudit)
	exports.Post("/audit/omie", exportHandler.OmieAudit)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.AnalyticsUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Asistente IA (protegido)
	ai := protected.Group("/ai")
	aiHandler := NewAIHandler(deps.AIUC)
	ai.Get("/analysis", aiHandler.Analyze)
	ai.Post("/chat", aiHandler.Chat)
	ai.Post("/sku-suggestions", aiHandler.SuggestSKUs)

	// Etiquetas QR (protegido)
	labels := protected.Group("/labels")
	labelHandler := NewLabelHandler(deps.LotRepo, deps.LabelGen)
	labels.Post("/lots", labelHandler.Generate)

	// Ubicaciones (lectura para todos; altas y bajas de admin)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", adminOnly, locationHandler.Create)
	locations.Delete("/", adminOnly, locationHandler.Delete)

	// Administración de usuarios (solo administradores; el cambio de rol y la
	// eliminación quedan reservados al master_admin)
	admin := protected.Group("/admin", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.GetByID)
	masterOnly := RequireRole(entity.RoleMasterAdmin)
	admin.Patch("/users/:id/role", masterOnly, userHandler.ChangeRole)
	admin.Delete("/users/:id", masterOnly, userHandler.Delete)
}
