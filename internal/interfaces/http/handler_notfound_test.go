package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/production"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/requisition"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/usecase"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/memory"
	apphttp "github.com/sabrinatorgan-glitch/PhageStock/internal/interfaces/http"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/logger"
)

// buildHandlersApp levanta una app Fiber con los handlers de lectura sobre
// repositorios en memoria vacíos, sin middleware de auth (la resolución de
// recursos no depende de él).
func buildHandlersApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.New(logger.Config{Level: "error"})
	store := memory.NewStore()
	lots := memory.NewLotRepository(store)
	ledgerUC := ledger.NewUseCase(memory.NewTxRunner(store), log)

	lotHandler := apphttp.NewLotHandler(usecase.NewLotUseCase(lots, memory.NewLocationRepository()))
	requisitionHandler := apphttp.NewRequisitionHandler(requisition.NewUseCase(memory.NewRequisitionRepository(), lots, ledgerUC, log))
	productionHandler := apphttp.NewProductionHandler(production.NewUseCase(memory.NewRecipeRepository(), memory.NewProductionOrderRepository(), lots, log))
	userHandler := apphttp.NewUserHandler(usecase.NewUserUseCase(memory.NewUserRepository()))

	app := fiber.New()
	app.Get("/api/lots/:id", lotHandler.GetByID)
	app.Put("/api/lots/:id", lotHandler.Update)
	app.Get("/api/requisitions/:id", requisitionHandler.GetByID)
	app.Get("/api/production/recipes/:id", productionHandler.GetRecipe)
	app.Get("/api/production/orders/:id", productionHandler.GetOrder)
	app.Get("/api/admin/users/:id", userHandler.GetByID)
	return app
}

// assertNotFound lanza la petición y exige 404 con código NOT_FOUND en el
// cuerpo (nunca 200 con body null).
func assertNotFound(t *testing.T, app *fiber.App, method, path string, body io.Reader) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"%s %s sobre un recurso inexistente debe retornar 404", method, path)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "NOT_FOUND")
	assert.NotEqual(t, "null", strings.TrimSpace(string(raw)))
}

func TestLotHandler_GetInexistente_Retorna404(t *testing.T) {
	app := buildHandlersApp(t)
	assertNotFound(t, app, http.MethodGet, "/api/lots/no-existe", nil)
}

func TestLotHandler_UpdateInexistente_Retorna404(t *testing.T) {
	app := buildHandlersApp(t)
	assertNotFound(t, app, http.MethodPut, "/api/lots/no-existe", strings.NewReader(`{"name":"Nuevo nombre"}`))
}

func TestRequisitionHandler_GetInexistente_Retorna404(t *testing.T) {
	app := buildHandlersApp(t)
	assertNotFound(t, app, http.MethodGet, "/api/requisitions/no-existe", nil)
}

func TestProductionHandler_GetRecetaInexistente_Retorna404(t *testing.T) {
	app := buildHandlersApp(t)
	assertNotFound(t, app, http.MethodGet, "/api/production/recipes/no-existe", nil)
}

func TestProductionHandler_GetOrdenInexistente_Retorna404(t *testing.T) {
	app := buildHandlersApp(t)
	assertNotFound(t, app, http.MethodGet, "/api/production/orders/no-existe", nil)
}

func TestUserHandler_GetInexistente_Retorna404(t *testing.T) {
	app := buildHandlersApp(t)
	assertNotFound(t, app, http.MethodGet, "/api/admin/users/no-existe", nil)
}
