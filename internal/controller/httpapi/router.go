package httpapi

import (
	"fmt"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	CORSOrigins        []string
	RateLimitPerMinute int
	// TrustedProxies may set X-Forwarded-For; empty means the client IP is always RemoteAddr
	TrustedProxies []string
}

// NewRouter wires middleware and routes onto a fresh gin engine
func NewRouter(h *Handlers, cfg RouterConfig, logger *zap.Logger) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(AccessLogMiddleware(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	limited := RateLimitMiddleware(cfg.RateLimitPerMinute, logger)

	api := r.Group("/api")
	{
		consultations := api.Group("/consultations")
		consultations.GET("/availability", h.GetAvailability)
		consultations.GET("/calendar", h.GetCalendar)
		consultations.POST("/validate", limited, h.ValidateBooking)
		consultations.POST("", limited, h.CreateConsultation)

		quotes := api.Group("/quotes")
		quotes.GET("/questions", h.GetQuestions)
		quotes.POST("", limited, h.CreateQuote)
	}

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
