// Package api wires the HTTP surface: health, metrics, the /api/v1 routes
// and the static front end.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"tradingai-demo/internal/api/handlers"
	"tradingai-demo/internal/api/middleware"
	"tradingai-demo/internal/api/models"
	"tradingai-demo/internal/backend"
	"tradingai-demo/internal/config"
	"tradingai-demo/internal/session"
	"tradingai-demo/internal/stream"
)

// Deps are the long-lived services the router dispatches to.
// AuthTester may be nil when no backend is configured.
type Deps struct {
	Config     *config.Config
	Store      *session.Store
	Gateway    *stream.Gateway
	AuthTester *backend.AuthTester
}

func NewRouter(d Deps) *gin.Engine {
	if d.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS(d.Config.Server.AllowedOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	sessionHandler := handlers.NewSessionHandler(d.Store, d.Gateway)
	contentHandler := handlers.NewContentHandler(d.Config.Simulation.ModelCatalog())
	authTestHandler := handlers.NewAuthTestHandler(d.AuthTester)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:   "ok",
			Sessions: d.Store.Count(),
			Streams:  d.Gateway.Count(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/content/landing", contentHandler.Landing)
		api.GET("/content/pricing", contentHandler.Pricing)
		api.GET("/signals", contentHandler.Signals)
		api.GET("/catalog", contentHandler.Catalog)

		api.POST("/sessions", sessionHandler.CreateSession)
		api.GET("/sessions/:id", sessionHandler.GetSession)
		api.DELETE("/sessions/:id", sessionHandler.DeleteSession)
		api.POST("/sessions/:id/portfolio", sessionHandler.AddAsset)
		api.DELETE("/sessions/:id/portfolio/:symbol", sessionHandler.RemoveAsset)
		api.POST("/sessions/:id/trades", sessionHandler.ExecuteTrade)
		api.PUT("/sessions/:id/risk", sessionHandler.SetRiskTolerance)
		api.GET("/sessions/:id/ledger", sessionHandler.GetLedger)
		api.GET("/sessions/:id/stream", sessionHandler.Stream)

		api.POST("/auth-test/signup", authTestHandler.SignUp)
		api.POST("/auth-test/profile", authTestHandler.CheckProfile)
		api.POST("/auth-test/signals", authTestHandler.InsertSignal)
		api.GET("/auth-test/signals", authTestHandler.ListSignals)
	}

	serveStatic(router, d.Config.Server.StaticDir)
	return router
}

// serveStatic serves the built front end with index.html as the SPA fallback.
// API paths never fall back to index.html.
func serveStatic(router *gin.Engine, staticDir string) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
		})
	}

	info, err := os.Stat(staticDir)
	if staticDir == "" || err != nil || !info.IsDir() {
		log.Infof("Static directory %q not found, skipping static file serving", staticDir)
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(staticDir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	})
	log.Infof("Serving static files from %s", staticDir)
}
