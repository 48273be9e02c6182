package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/jinwoohan/insuragraph/internal/http/handlers"
	httpMW "github.com/jinwoohan/insuragraph/internal/http/middleware"
)

type RouterConfig struct {
	ServiceName string

	HealthHandler *httpH.HealthHandler
	QAHandler     *httpH.QAHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.QAHandler != nil {
			api.POST("/sessions", cfg.QAHandler.CreateSession)
			api.GET("/sessions/:id", cfg.QAHandler.GetSession)
			api.POST("/sessions/:id/ask", cfg.QAHandler.Ask)
		}
	}

	return r
}
