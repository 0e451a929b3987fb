package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ConfigCORS allows the configured domains plus any localhost origin,
// so the dashboard can run on an arbitrary dev port.
func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			if strings.Contains(origin, "://localhost") || strings.Contains(origin, "://127.0.0.1") {
				return true
			}

			for _, domain := range allowedDomains {
				if origin == domain {
					return true
				}
			}

			return false
		},
		MaxAge: 12 * time.Hour,
	})
}
