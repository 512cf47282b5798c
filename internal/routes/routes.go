package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/controllers"
	"github.com/zaqqye/weld_backend_v1/internal/middleware"
	"github.com/zaqqye/weld_backend_v1/internal/service"
	"github.com/zaqqye/weld_backend_v1/internal/ws"
)

type Deps struct {
	Welds    *service.WeldService
	Hub      *ws.WeldHub
	Log      *zap.Logger
	Registry *prometheus.Registry
}

// NewRouter builds the engine with middleware and every route registered.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Log != nil {
		r.Use(middleware.RequestLogger(d.Log))
	}
	if d.Registry != nil {
		r.Use(middleware.NewMetrics(d.Registry).Handler())
	}
	r.Use(middleware.CORS())
	Register(r, d)
	return r
}

func Register(r *gin.Engine, d Deps) {
	weldCtrl := &controllers.WeldController{Service: d.Welds, Log: d.Log}

	r.GET("/healthz", func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if d.Hub != nil {
			body["subscribers"] = d.Hub.Subscribers()
		}
		c.JSON(http.StatusOK, body)
	})
	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		welds := api.Group("/welds")
		welds.GET("", weldCtrl.ListWelds)
		welds.POST("", weldCtrl.CreateWeld)
		welds.GET("/export", weldCtrl.ExportWelds)
		if d.Hub != nil {
			welds.GET("/stream", ws.WeldStreamHandler(d.Hub))
		}
		welds.GET("/:id", weldCtrl.GetWeld)
		welds.PATCH("/:id", weldCtrl.UpdateWeld)
		welds.DELETE("/:id", weldCtrl.DeleteWeld)
	}
}
