package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tableside/backend/internal/infrastructure/auth"
	"github.com/tableside/backend/internal/infrastructure/config"
	"github.com/tableside/backend/internal/infrastructure/logger"
	"github.com/tableside/backend/internal/interfaces/http/handler"
	"github.com/tableside/backend/internal/interfaces/http/middleware"
)

// MaxRequestBodyBytes caps JSON payloads. Orders with many lines stay
// far below this.
const MaxRequestBodyBytes = 1 << 20

// Handlers collects everything the router mounts
type Handlers struct {
	System     *handler.SystemHandler
	Restaurant *handler.RestaurantHandler
	Table      *handler.TableHandler
	Catalog    *handler.CatalogHandler
	Order      *handler.OrderHandler
	Stream     *handler.OrderStreamHandler
	Storefront *handler.StorefrontHandler
}

// Setup builds the gin engine with the full route table. Three surfaces:
// health checks, the public storefront under /m/:slug, and the staff API
// under /api/v1 behind JWT auth.
func Setup(cfg *config.Config, jwtService *auth.JWTService, h Handlers, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSFromConfig(cfg.HTTP),
		middleware.BodyLimit(MaxRequestBodyBytes),
	)
	middleware.SetupValidator()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	// Public storefront, reached through table QR codes
	storefront := engine.Group("/m/:slug")
	{
		storefront.GET("/menu", h.Storefront.GetMenu)
		storefront.POST("/orders", h.Storefront.PlaceOrder)
		storefront.GET("/orders/:number", h.Storefront.TrackOrder)
		storefront.POST("/orders/:number/cancel", h.Storefront.CancelOrder)
	}

	api := engine.Group("/api/v1")

	// Tenant onboarding is the only unauthenticated API route
	api.POST("/restaurants", h.Restaurant.Register)

	staff := api.Group("", middleware.StaffAuth(jwtService))
	{
		restaurant := staff.Group("/restaurant")
		{
			restaurant.GET("", h.Restaurant.Get)
			restaurant.PUT("", h.Restaurant.UpdateProfile)
			restaurant.PUT("/tax", h.Restaurant.SetTax)
			restaurant.POST("/activate", h.Restaurant.Activate)
			restaurant.POST("/deactivate", h.Restaurant.Deactivate)
		}

		tables := staff.Group("/tables")
		{
			tables.POST("", h.Table.Create)
			tables.GET("", h.Table.List)
			tables.GET("/:id", h.Table.Get)
			tables.PUT("/:id/status", h.Table.SetStatus)
			tables.POST("/:id/rotate-token", h.Table.RotateToken)
			tables.DELETE("/:id", h.Table.Deactivate)
			tables.GET("/:id/qrcode.png", h.Table.QRCode)
		}

		menu := staff.Group("/menu")
		{
			menu.POST("/categories", h.Catalog.CreateCategory)
			menu.GET("/categories", h.Catalog.ListCategories)
			menu.PUT("/categories/:id", h.Catalog.UpdateCategory)
			menu.PUT("/categories/:id/active", h.Catalog.SetCategoryActive)
			menu.DELETE("/categories/:id", h.Catalog.DeleteCategory)

			menu.POST("/items", h.Catalog.CreateItem)
			menu.PUT("/items/:id", h.Catalog.UpdateItem)
			menu.PUT("/items/:id/price", h.Catalog.SetItemPrice)
			menu.PUT("/items/:id/availability", h.Catalog.SetItemAvailability)
			menu.DELETE("/items/:id", h.Catalog.DeleteItem)
			menu.POST("/items/:id/variants", h.Catalog.AddVariant)
			menu.PUT("/items/:id/addon-groups/:groupId", h.Catalog.LinkAddonGroup)
			menu.DELETE("/items/:id/addon-groups/:groupId", h.Catalog.UnlinkAddonGroup)

			menu.POST("/addon-groups", h.Catalog.CreateAddonGroup)
			menu.POST("/addon-groups/:id/addons", h.Catalog.AddAddon)
		}

		orders := staff.Group("/orders")
		{
			orders.GET("", h.Order.List)
			orders.GET("/stream", h.Stream.Stream)
			orders.GET("/stats/daily", h.Order.DailyStats)
			orders.GET("/:id", h.Order.Get)
			orders.PUT("/:id/status", h.Order.Transition)
			orders.POST("/:id/cancel", h.Order.Cancel)
			orders.PUT("/:id/payment", h.Order.SetPaymentStatus)
		}
	}

	return engine
}
