package api

import (
	"time"

	"github.com/Domenick1991/eventra/internal/storefront"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	ProfileHeader = "X-Profile-ID"
	ProfileCookie = "eventra_profile"
	ProfileQuery  = "profile"

	appKey = "storefront_app"

	profileCookieMaxAge = 365 * 24 * 60 * 60
)

// AppResolver returns the state of one browser profile.
type AppResolver interface {
	For(profileID string) (*storefront.App, error)
}

func Logger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start),
			"client_ip":  c.ClientIP(),
			"profile_id": c.Writer.Header().Get(ProfileHeader),
		})

		if c.Writer.Status() >= 500 {
			entry.Error("Request failed")
		} else {
			entry.Info("Request processed")
		}
	}
}

// Profile binds the request to a browser profile taken from the header, the
// cookie or the query string. A new profile is issued when none is sent.
func Profile(resolver AppResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(ProfileHeader)
		if id == "" {
			id, _ = c.Cookie(ProfileCookie)
		}
		if id == "" {
			id = c.Query(ProfileQuery)
		}
		if id == "" {
			id = storefront.NewProfileID()
			c.SetCookie(ProfileCookie, id, profileCookieMaxAge, "/", "", false, true)
		}
		c.Header(ProfileHeader, id)

		app, err := resolver.For(id)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(appKey, app)
		c.Next()
	}
}

func appFrom(c *gin.Context) *storefront.App {
	return c.MustGet(appKey).(*storefront.App)
}
