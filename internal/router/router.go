package router

import (
	"time"

	"abbafoods/internal/config"
	"abbafoods/internal/handler"
	"abbafoods/internal/metrics"
	"abbafoods/internal/middleware"
	"abbafoods/internal/repository"
	"abbafoods/internal/service"
	"abbafoods/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the infrastructure pieces built by the composition root. DB and
// Redis may be nil (placeholder mode and no-cache mode respectively).
type Deps struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Repos      repository.Set
	Metrics    *metrics.Registry
	Dispatcher *worker.Dispatcher
}

// New wires services and handlers and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Services ─────────────────────────────────────────────────────────────
	repos := d.Repos
	materiaSvc := service.NewMateriaPrimaService(repos.Materias)
	recetaSvc := service.NewRecetaService(repos.Recetas, repos.Materias, repos.Ordenes, d.Redis, cfg.RecetasCacheTTL, d.Metrics)
	produccionSvc := service.NewProduccionService(repos.Recetas, repos.Materias, repos.Ordenes, d.Metrics)
	pedidoSvc := service.NewPedidoService(repos.Pedidos, repos.Recetas, repos.Ordenes, d.Dispatcher, cfg.PDFStoragePath)
	ventaSvc := service.NewVentaService(repos.Pedidos, repos.Recetas)
	dashboardSvc := service.NewDashboardService(repos.Materias, repos.Ordenes, repos.Pedidos, repos.Recetas)

	// ── Handlers ─────────────────────────────────────────────────────────────
	materiasH := handler.NewMateriasPrimasHandler(materiaSvc)
	recetasH := handler.NewRecetasHandler(recetaSvc)
	produccionH := handler.NewProduccionHandler(produccionSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(d.DB, d.Redis))
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	v1 := r.Group("/v1")
	{
		mp := v1.Group("/materias-primas")
		{
			mp.POST("", materiasH.Crear)
			mp.GET("", materiasH.Listar)
			mp.GET("/alertas", materiasH.Alertas)
			mp.GET("/:id", materiasH.Obtener)
			mp.PUT("/:id", materiasH.Actualizar)
			mp.GET("/:id/presentaciones", materiasH.ListarPresentaciones)
			mp.POST("/:id/presentaciones", materiasH.CrearPresentacion)
		}

		rec := v1.Group("/recetas")
		{
			rec.POST("", recetasH.Crear)
			rec.GET("", recetasH.Listar)
			rec.GET("/:id", recetasH.Obtener)
			rec.PUT("/:id", recetasH.Actualizar)
			rec.DELETE("/:id", recetasH.Eliminar)
		}

		prod := v1.Group("/produccion")
		{
			prod.POST("/calcular", produccionH.Calcular)
			prod.POST("/ordenes", produccionH.Lanzar)
			prod.GET("/ordenes", produccionH.Listar)
			prod.GET("/ordenes/:id", produccionH.Obtener)
			prod.PATCH("/ordenes/:id/terminar", produccionH.Terminar)
		}

		ped := v1.Group("/pedidos")
		{
			ped.POST("", pedidosH.Crear)
			ped.GET("", pedidosH.Listar)
			ped.GET("/:id", pedidosH.Obtener)
			ped.PUT("/:id", pedidosH.Actualizar)
			ped.DELETE("/:id", pedidosH.Eliminar)
			ped.POST("/:id/orden-produccion", pedidosH.GenerarOrdenProduccion)
			ped.GET("/:id/pdf", pedidosH.HojaPDF)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.GET("", ventasH.Listar)
			ventas.PATCH("/:id/estado-pago", ventasH.EstadoPago)
			ventas.PATCH("/:id/estado-entrega", ventasH.EstadoEntrega)
		}

		v1.GET("/dashboard", dashboardH.Resumen)
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
