package routes

import (
	"net/http"
	"time"

	"github.com/alfar-programer/Store-B-sub000/auth"
	"github.com/alfar-programer/Store-B-sub000/config"
	orderControllers "github.com/alfar-programer/Store-B-sub000/controllers/order"
	"github.com/alfar-programer/Store-B-sub000/repository"
	"github.com/alfar-programer/Store-B-sub000/uploads"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the route groups hand to their handlers.
type Deps struct {
	Config  config.Config
	Repos   *repository.Repositories
	Auth    *auth.Service
	Orders  *orderControllers.Service
	Hub     *orderControllers.Hub
	Uploads *uploads.Store
}

// NewEngine builds the gin engine with CORS, static uploads, /health and the API.
func NewEngine(d Deps) *gin.Engine {
	r := gin.Default()

	// multipart bodies above this spill to temp files
	r.MaxMultipartMemory = 32 << 20

	r.Use(cors.New(corsConfig(d.Config.CORSOrigins)))

	r.Static(uploads.PublicPrefix, d.Uploads.Dir())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	SetupRoutes(r, d)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// credentials cannot be combined with a literal "*" origin
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// SetupRoutes is the single entry-point that wires every /api group.
func SetupRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")

	// 1️⃣ Public auth routes
	SetupAuthRoutes(api, d)

	// 2️⃣ Catalog: public reads, admin writes
	SetupProductRoutes(api, d)

	// 3️⃣ Orders: guest checkout, admin management, live feed
	SetupOrderRoutes(api, d)

	// 4️⃣ Signed-in user routes
	SetupUserRoutes(api, d)

	// 5️⃣ Admin dashboard
	SetupAdminRoutes(api, d)
}
