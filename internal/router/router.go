package router

import (
	"budgetbook/internal/config"
	"budgetbook/internal/handler"
	"budgetbook/internal/middleware"
	"budgetbook/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter builds the gin engine with all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	users := service.NewUserService(db, cfg.Defaults)
	accounts := service.NewAccountService(db)
	categories := service.NewCategoryService(db)
	vendors := service.NewVendorService(db)
	transactions := service.NewTransactionService(db)

	api := r.Group("/api")

	// registration and login need no token
	authHandler := handler.NewAuthHandler(users, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.AuditMiddleware(db),
	)

	userHandler := handler.NewUserHandler(users)
	protected.GET("/me", userHandler.GetMe)
	protected.PUT("/user", userHandler.Modify)
	protected.DELETE("/user", userHandler.Remove)

	accountHandler := handler.NewAccountHandler(accounts)
	protected.GET("/accounts", accountHandler.List)
	protected.POST("/accounts", accountHandler.Create)
	protected.PUT("/accounts", accountHandler.Update)
	protected.DELETE("/accounts/:id", accountHandler.Delete)

	categoryHandler := handler.NewCatalogHandler(categories)
	protected.GET("/categories", categoryHandler.List)
	protected.POST("/categories", categoryHandler.Create)
	protected.PUT("/categories", categoryHandler.Update)
	protected.DELETE("/categories", categoryHandler.Delete)

	vendorHandler := handler.NewCatalogHandler(vendors)
	protected.GET("/vendors", vendorHandler.List)
	protected.POST("/vendors", vendorHandler.Create)
	protected.PUT("/vendors", vendorHandler.Update)
	protected.DELETE("/vendors", vendorHandler.Delete)

	transactionHandler := handler.NewTransactionHandler(transactions)
	protected.GET("/transactions", transactionHandler.List)
	protected.POST("/transactions", transactionHandler.Create)
	protected.PUT("/transactions", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	reportHandler := handler.NewReportHandler(db)
	protected.GET("/reports/monthly", reportHandler.Monthly)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.CSV)
	protected.GET("/export/xlsx", exportHandler.XLSX)

	auditHandler := handler.NewAuditHandler(db)
	protected.GET("/logs", auditHandler.List)

	return r
}
