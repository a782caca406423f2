package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/gin-gonic/gin"
)

const defaultReadTimeout = 10 * time.Second

// RunServer serves the HTTP API until ctx is done
func RunServer(ctx context.Context, cfg Config, bridgeService *BridgeService) error {
	if len(cfg.HTTPPort) == 0 {
		return fmt.Errorf("invalid TCP port for HTTP server: '%s'", cfg.HTTPPort)
	}
	readTimeout := cfg.ReadTimeout.Duration
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           NewRouter(cfg, bridgeService),
		ReadHeaderTimeout: readTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second) //nolint:gomnd
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("HTTP Server is serving at ", cfg.HTTPPort)
	err := srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// NewRouter registers the API routes
func NewRouter(cfg Config, s *BridgeService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), allowCORS(), NewTraceIDInterceptor(), NewIPCheckInterceptor(cfg.IPBlocklist),
		NewRequestLogInterceptor(), NewRequestMetricsInterceptor())

	v1 := router.Group("/api/v1")
	v1.GET("/health", s.CheckAPI)
	v1.GET("/assets", s.GetAssets)
	v1.GET("/prices", s.GetPrices)
	v1.GET("/preferences", s.GetPreferences)
	v1.PUT("/preferences", s.PutPreferences)

	bridge := v1.Group("/bridge")
	bridge.POST("/validate", s.ValidateAmount)
	bridge.POST("/in", s.BridgeIn)
	bridge.POST("/out", s.BridgeOut)
	bridge.GET("/operations/:id", s.GetOperation)
	bridge.GET("/operations/:id/ws", s.StreamOperation)
	return router
}

// allowCORS allows Cross Origin Resource Sharing from any origin.
// Don't do this without consideration in production systems.
func allowCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
				c.Header("Access-Control-Allow-Headers", "*")
				c.Header("Access-Control-Allow-Methods", "*")
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		c.Next()
	}
}
