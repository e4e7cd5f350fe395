package server

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/farellandr/coupongen/config"
	"github.com/farellandr/coupongen/internal/handlers"
	"github.com/farellandr/coupongen/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())

	r.LoadHTMLGlob("templates/*.html")

	setupRoutes(r, db, logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("coupon generator started", zap.String("port", port))
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, logger *zap.Logger) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.LoggerMiddleware(logger))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)
	}

	admin := r.Group("/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware())
	admin.Use(middleware.RequireRole("admin", "shop_manager"))
	{
		coupons := admin.Group("/coupons")
		{
			coupons.GET("", handlers.ListCoupons)
			coupons.GET("/generate", handlers.ShowGeneratePage)
			coupons.POST("/generate", handlers.GenerateCoupons)
			coupons.GET("/:id", handlers.GetCoupon)
			coupons.GET("/:id/qr", handlers.GetCouponQR)
		}

		categories := admin.Group("/categories")
		{
			categories.GET("", handlers.ListCategories)
			categories.POST("", handlers.CreateCategory)
			categories.PUT("/:id", handlers.UpdateCategory)
			categories.DELETE("/:id", handlers.DeleteCategory)
		}
	}
}
