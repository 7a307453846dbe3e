package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pos-checkout/internal/handler/api"
	"pos-checkout/internal/handler/middleware"
	"pos-checkout/internal/pkg/config"
	"pos-checkout/internal/pkg/metrics"
)

const (
	maxCartBytes   = 256 << 10
	maxUploadBytes = 8 << 20
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Checkout *api.CheckoutHandler
	Catalog  *api.CatalogHandler
	Order    *api.OrderHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, m *metrics.Metrics) {
	setupMiddleware(engine, cfg, m)
	setupRoutes(engine, h, m)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.MetricsMiddleware(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, m *metrics.Metrics) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		products := apiGroup.Group("/products")
		addRoutes(products, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListProducts},
			{Method: http.MethodPost, Path: "/bulk", Handler: h.Catalog.Upload, Mw: []gin.HandlerFunc{middleware.LimitBody(maxUploadBytes)}},
		})

		checkout := apiGroup.Group("/checkout")
		addRoutes(checkout, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Checkout.Commit, Mw: []gin.HandlerFunc{middleware.LimitBody(maxCartBytes)}},
			{Method: http.MethodPost, Path: "/validate", Handler: h.Checkout.Validate, Mw: []gin.HandlerFunc{middleware.LimitBody(maxCartBytes)}},
		})

		orders := apiGroup.Group("/orders")
		addRoutes(orders, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Order.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
			{Method: http.MethodGet, Path: "/:id/cart", Handler: h.Order.CartFromOrder},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
