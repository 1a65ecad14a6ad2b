// seed puebla una base PostgreSQL recién migrada con los datos mínimos de
// operación: las cinco ubicaciones físicas, tres usuarios (uno por rol) y un
// inventario de demostración con insumos típicos del laboratorio.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL o DB_*). La contraseña
// de los usuarios sembrados sale de SEED_PASSWORD (default "cambiar.123").
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/postgres"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	locations := postgres.NewLocationRepository(pool)
	users := postgres.NewUserRepository(pool)
	lots := postgres.NewLotRepository(pool)

	now := time.Now()

	for _, name := range entity.DefaultLocations() {
		existing, err := locations.GetByName(name)
		if err != nil {
			fail("consultar ubicación %q: %v", name, err)
		}
		if existing != nil {
			continue
		}
		err = locations.Create(&entity.Location{ID: uuid.NewString(), Name: name, CreatedAt: now})
		if err != nil {
			fail("crear ubicación %q: %v", name, err)
		}
		fmt.Printf("ubicación creada: %s\n", name)
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "cambiar.123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fail("hashear contraseña: %v", err)
	}

	seedUsers := []entity.User{
		{Name: "Master Admin", Email: "master@phagestock.local", Role: entity.RoleMasterAdmin},
		{Name: "Jefa de Bodega", Email: "bodega@phagestock.local", Role: entity.RoleAdmin},
		{Name: "Analista de Laboratorio", Email: "lab@phagestock.local", Role: entity.RoleCommonUser},
	}
	for _, u := range seedUsers {
		existing, err := users.FindByEmail(u.Email)
		if err != nil {
			fail("consultar usuario %q: %v", u.Email, err)
		}
		if existing != nil {
			continue
		}
		u.ID = uuid.NewString()
		u.PasswordHash = string(hash)
		u.Status = "active"
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := users.Create(&u); err != nil {
			fail("crear usuario %q: %v", u.Email, err)
		}
		fmt.Printf("usuario creado: %s (%s)\n", u.Email, u.Role)
	}

	type demoLot struct {
		sku, name, category, location, batch, unit string
		expiry                                     string // YYYY-MM-DD, vacío = sin vencimiento
		qty, min                                   int64
	}
	demo := []demoLot{
		{"MALTODEXTRINA", "Maltodextrina grado técnico", entity.CategoryRawMaterial, entity.LocationChileLabPiso5, "MD-2406", "kg", "2027-06-30", 120, 25},
		{"PEPTONA-CAS", "Peptona de caseína", entity.CategoryRawMaterial, entity.LocationChileLabPiso5, "PC-2409", "kg", "2026-12-31", 40, 10},
		{"AGAR-NUT", "Agar nutritivo", entity.CategoryLabSupply, entity.LocationChileLabMinus3, "AN-2411", "kg", "2026-10-15", 18, 5},
		{"GLICEROL-87", "Glicerol 87%", entity.CategoryRawMaterial, entity.LocationChileLabMinus3, "GL-2402", "litros", "2028-02-28", 60, 15},
		{"FAGO-SALMO-C1", "Concentrado fago anti-Salmonella", entity.CategoryWorkInProcess, entity.LocationChileLabMinus3, "FS-2501", "litros", "2026-09-30", 25, 8},
		{"PHAGEFEED-5L", "PhageFeed bidón 5 L", entity.CategoryFinishedGood, entity.LocationChileLogistica, "PF-2503", "unidades", "2026-11-30", 200, 50},
		{"PHAGEFEED-5L", "PhageFeed bidón 5 L", entity.CategoryFinishedGood, entity.LocationBrasilLogvet, "PF-2502", "unidades", "2026-10-31", 80, 30},
		{"FRASCO-1L-PET", "Frasco PET 1 L con tapa", entity.CategoryLabSupply, entity.LocationChileLogistica, "FR-2412", "unidades", "", 1500, 400},
	}
	for _, d := range demo {
		lot := &entity.Lot{
			ID:            uuid.NewString(),
			SKU:           d.sku,
			Name:          d.name,
			Category:      d.category,
			Location:      d.location,
			BatchNumber:   d.batch,
			Quantity:      decimal.NewFromInt(d.qty),
			Unit:          d.unit,
			MinStockLevel: decimal.NewFromInt(d.min),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if d.expiry != "" {
			exp, err := time.Parse("2006-01-02", d.expiry)
			if err != nil {
				fail("fecha de vencimiento inválida para %s: %v", d.sku, err)
			}
			lot.ExpiryDate = exp
		}
		existing, err := lots.GetByKey(lot.Key())
		if err != nil {
			fail("consultar lote %s/%s: %v", d.sku, d.batch, err)
		}
		if existing != nil {
			continue
		}
		if err := lots.Create(lot); err != nil {
			fail("crear lote %s/%s: %v", d.sku, d.batch, err)
		}
		fmt.Printf("lote creado: %s %s @ %s\n", d.sku, d.batch, d.location)
	}

	fmt.Println("seed completado")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
