package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the landing front-end origins to call the API
func CORS(allowedOrigins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Remaining"}
	config.MaxAge = 12 * time.Hour

	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		for _, origin := range allowedOrigins {
			if origin == "*" {
				config.AllowAllOrigins = true
				break
			}
		}
		if !config.AllowAllOrigins {
			config.AllowOrigins = allowedOrigins
		}
	}

	return cors.New(config)
}
