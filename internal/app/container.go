package app

import (
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/terrain-booking-backend/internal/api"
	"github.com/nekogravitycat/terrain-booking-backend/internal/auth"
	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/terrain-booking-backend/internal/reservation"
	"github.com/nekogravitycat/terrain-booking-backend/internal/terrain"
	"github.com/nekogravitycat/terrain-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Store        *Store
	BcryptCost   int
	Policy       reservation.Policy
	Logger       *logger.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router             *gin.Engine
	UserService        user.Service
	TerrainService     terrain.Service
	ReservationService reservation.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)

	// Repositories for the selected backend
	var (
		userRepo        user.Repository
		terrainRepo     terrain.Repository
		reservationRepo reservation.Repository
	)
	if cfg.Store.Pool != nil {
		userRepo = user.NewPgxRepository(cfg.Store.Pool)
		terrainRepo = terrain.NewPgxRepository(cfg.Store.Pool)
		reservationRepo = reservation.NewPgxRepository(cfg.Store.Pool)
	} else {
		userRepo = user.NewSQLiteRepository(cfg.Store.SQLite)
		terrainRepo = terrain.NewSQLiteRepository(cfg.Store.SQLite)
		reservationRepo = reservation.NewSQLiteRepository(cfg.Store.SQLite)
	}

	// User Module (also the Authorization Check)
	userService := user.NewService(userRepo, passwordHasher)

	// Terrain Module
	terrainService := terrain.NewService(terrainRepo, userService)

	// Reservation Module
	reservationService := reservation.NewService(reservationRepo, userService, terrainService, cfg.Policy, cfg.Logger.Logger)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		Logger:             cfg.Logger,
		UserService:        userService,
		TerrainService:     terrainService,
		ReservationService: reservationService,
		HealthCheck:        cfg.Store.Ping,
	})

	return &Container{
		Router:             router,
		UserService:        userService,
		TerrainService:     terrainService,
		ReservationService: reservationService,
	}
}
