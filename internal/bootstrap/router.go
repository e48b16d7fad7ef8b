package bootstrap

import (
	"time"

	httpapi "github.com/GoSim-25-26J-441/portfolio-api/internal/api/http"
	"github.com/GoSim-25-26J-441/portfolio-api/internal/api/http/middleware"
	projecthttp "github.com/GoSim-25-26J-441/portfolio-api/internal/projects/http"
	"github.com/GoSim-25-26J-441/portfolio-api/internal/projects/service"
	"github.com/GoSim-25-26J-441/portfolio-api/internal/storage/mongodb"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	Store        *mongodb.Store
	Env          httpapi.EnvStatus
	AllowOrigins []string
	Logger       logrus.FieldLogger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()

	metrics := middleware.NewMetrics()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(metrics.Middleware())
	r.Use(cors.New(corsConfig(dep.AllowOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	diagHandler := httpapi.NewDiagnosticsHandler(dep.Store, dep.Env)
	diagHandler.RegisterRoutes(r)

	metrics.Register(r)

	projectService := service.NewProjectService(dep.Store, dep.Logger)
	projectHandler := projecthttp.New(projectService)
	projectHandler.Register(r.Group("/api/projects"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		// "*" with credentials is rejected by browsers; echo the origin instead.
		cfg.AllowOriginFunc = func(string) bool { return true }
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
