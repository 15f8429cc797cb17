package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/stegavault/stegavault/internal/api/middleware"
	"github.com/stegavault/stegavault/internal/auth"
	"github.com/stegavault/stegavault/internal/providers/localfs"
	"github.com/stegavault/stegavault/internal/ratelimit"
)

// SetupRoutes configures all REST API routes.
// Stored images are served from mediaDir when it is set. A nil limiter disables rate limiting.
func SetupRoutes(router *gin.Engine, handler Handler, authenticator auth.Authenticator, limiter ratelimit.Limiter, mediaDir string) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	if mediaDir != "" {
		router.Static(localfs.MediaRoute, mediaDir)
	}

	requireAuth := middleware.Auth(authenticator)
	limit := func(route string) gin.HandlerFunc {
		if limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimit(limiter, route)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Asset endpoints (public read access)
		v1.GET("/assets/:id", handler.GetAsset)
		v1.GET("/assets/:id/transactions", handler.GetAssetTransactions)
		v1.GET("/assets/:id/verify", limit(ratelimit.RouteVerify), handler.VerifyOwnership)

		// Ownership changes (requires session)
		v1.POST("/assets", requireAuth, limit(ratelimit.RouteMint), handler.MintAsset)
		v1.PATCH("/assets/:id", requireAuth, handler.UpdateAsset)
		v1.POST("/assets/:id/purchase", requireAuth, limit(ratelimit.RoutePurchase), handler.PurchaseAsset)

		// Marketplace excludes the caller's own assets (requires session)
		v1.GET("/marketplace", requireAuth, handler.GetMarketplace)

		// Caller account (requires session)
		v1.GET("/me", requireAuth, handler.GetAccount)
		v1.GET("/me/assets", requireAuth, handler.GetOwnedAssets)
		v1.GET("/me/transactions", requireAuth, handler.GetAccountTransactions)
	}
}
