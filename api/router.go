package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         logrus.FieldLogger
}

// NewRouter mounts the storefront API under /api/v1.
func NewRouter(resolver AppResolver, hub *EventHub, cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := gin.New()
	r.Use(gin.Recovery(), Logger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", ProfileHeader},
		ExposeHeaders:    []string{"Content-Length", ProfileHeader},
		AllowCredentials: !containsWildcard(origins),
		MaxAge:           12 * time.Hour,
	}))

	v1 := r.Group("/api/v1", Profile(resolver))
	NewAuthHandler().Register(v1.Group("/auth"))
	NewFavoritesHandler().Register(v1.Group("/favorites"))
	NewCartHandler().Register(v1.Group("/cart"))
	NewBookingHandler().Register(v1.Group("/bookings"))
	NewCheckoutHandler().Register(v1.Group("/checkout"))
	if hub != nil {
		hub.Register(v1.Group("/events"))
	}

	return r
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
