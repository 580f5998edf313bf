package router

import (
	"database/sql"
	"fmt"
	"net/http"

	mem "planter-care/internal/adapters/storage/memory"
	pg "planter-care/internal/adapters/storage/postgres"
	lite "planter-care/internal/adapters/storage/sqlite"
	"planter-care/internal/domain/care"
	"planter-care/internal/domain/caretakers"
	"planter-care/internal/domain/catalog"
	"planter-care/internal/domain/plants"
	"planter-care/internal/middleware"
	"planter-care/internal/platform/config"
	"planter-care/internal/platform/logger"
	"planter-care/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "planter-care/docs"
)

// Deps agrupa los services ya construidos sobre el store elegido.
// Se arma una vez en main y se comparte entre el router y el loop
// de despacho.
type Deps struct {
	Catalog    *catalog.Service
	Plants     *plants.Service
	Care       *care.Service
	Caretakers *caretakers.Service

	db *sql.DB
}

// NewDeps construye repos y services según cfg.Store.Engine.
func NewDeps(cfg config.Config) (*Deps, error) {
	var (
		catalogRepo catalog.Repository
		plantsRepo  plants.Repository
		logsRepo    care.Repository
		grantsRepo  caretakers.Repository
		db          *sql.DB
	)

	switch cfg.Store.Engine {
	case "postgres":
		opened, err := pg.Open(cfg.Store.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db = opened
		catalogRepo = pg.NewCatalogRepo(db)
		plantsRepo = pg.NewPlantsRepo(db)
		logsRepo = pg.NewCareLogsRepo(db)
		grantsRepo = pg.NewCaretakersRepo(db)

	case "sqlite":
		opened, err := lite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		db = opened
		catalogRepo = lite.NewCatalogRepo(db)
		plantsRepo = lite.NewPlantsRepo(db)
		logsRepo = lite.NewCareLogsRepo(db)
		grantsRepo = lite.NewCaretakersRepo(db)

	default: // memory
		catalogRepo = mem.NewCatalogRepo()
		plantsRepo = mem.NewPlantRepo()
		logsRepo = mem.NewCareLogRepo()
		grantsRepo = mem.NewCaretakersRepo()
	}

	windows := care.Windows{
		Lookahead: cfg.Scheduler.Lookahead(),
		Grace:     cfg.Scheduler.Grace(),
	}

	return &Deps{
		Catalog:    catalog.NewService(catalogRepo),
		Plants:     plants.NewService(plantsRepo),
		Care:       care.NewService(plantsRepo, logsRepo, windows, cfg.Scheduler.Location()),
		Caretakers: caretakers.NewService(grantsRepo),
		db:         db,
	}, nil
}

// Close libera el store subyacente (no-op para memory).
func (d *Deps) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Log          logger.Logger     // puede ser nil (sin request log)
}

func NewRouter(deps *Deps, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.Log != nil {
		r.Use(middleware.RequestLog(opts.Log))
	}
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	// Rutas por módulo
	catalog.RegisterRoutes(r, deps.Catalog)
	plants.RegisterRoutes(r, deps.Plants, deps.Catalog, deps.Caretakers)
	care.RegisterRoutes(r, deps.Care, deps.Plants, deps.Caretakers)
	caretakers.RegisterRoutes(r, deps.Caretakers, deps.Plants)

	return r
}
