package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/terrain-booking-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/terrain-booking-backend/internal/reservation/http"
	"github.com/nekogravitycat/terrain-booking-backend/internal/terrain"
	terrainHttp "github.com/nekogravitycat/terrain-booking-backend/internal/terrain/http"
	"github.com/nekogravitycat/terrain-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/terrain-booking-backend/internal/user/http"
)

// Config holds everything the router needs to build its handlers.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *logger.Logger

	UserService        user.Service
	TerrainService     terrain.Service
	ReservationService reservation.Service

	// HealthCheck pings the store backing the services.
	HealthCheck func(ctx context.Context) error
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, request logging, recovery) and registers the routes of each module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := RegisterValidators(); err != nil {
		cfg.Logger.Fatal("failed to register validators", "error", err)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	r.Use(cors.New(corsConfig))

	userHandler := userHttp.NewHandler(cfg.UserService)
	terrainHandler := terrainHttp.NewHandler(cfg.TerrainService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.GET("/healthz", healthz(cfg.HealthCheck))
		userHttp.RegisterRoutes(v1, userHandler)
		terrainHttp.RegisterRoutes(v1, terrainHandler)
		reservationHttp.RegisterRoutes(v1, reservationHandler)
	}

	return r
}

func healthz(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
