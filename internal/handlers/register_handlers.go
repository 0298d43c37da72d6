package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/currency_purchase_api/cmd/docs"
	portssvc "github.com/SscSPs/currency_purchase_api/internal/core/ports/services"
	"github.com/SscSPs/currency_purchase_api/internal/middleware"
	"github.com/SscSPs/currency_purchase_api/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	useWireFieldNames()

	r.Use(cors.New(corsConfig(cfg)), middleware.MetricsMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("failed to build login rate limiter: %w", err)
	}

	api := r.Group("/api")
	protected := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret, services.TokenService))

	registerHomeRoutes(api)
	registerAuthRoutes(api, protected, services, middleware.RateLimit(loginLimiter))
	registerGoogleOAuthRoutes(api, services)
	registerCurrencyRoutes(api, services.Currency)
	registerTransactionRoutes(protected, services.Transaction)

	setupSwaggerRoutes(r, cfg)
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	for _, origin := range strings.Split(cfg.FrontendBaseURL, ",") {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			corsCfg.AllowOrigins = append(corsCfg.AllowOrigins, origin)
		}
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsCfg.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
