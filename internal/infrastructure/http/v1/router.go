// Package v1 wires the HTTP API: middleware chain, route table and the
// dependency graph behind each handler.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockledger/internal/core/types"
	"stockledger/internal/domain/auth"
	"stockledger/internal/domain/catalogs/costcenter"
	"stockledger/internal/domain/catalogs/costelement"
	"stockledger/internal/domain/catalogs/product"
	"stockledger/internal/domain/catalogs/workorder"
	"stockledger/internal/domain/ledger"
	"stockledger/internal/domain/reports"
	"stockledger/internal/infrastructure/http/v1/handlers"
	"stockledger/internal/infrastructure/http/v1/middleware"
	"stockledger/internal/infrastructure/storage/postgres"
	"stockledger/internal/infrastructure/storage/postgres/catalog_repo"
	"stockledger/internal/infrastructure/storage/postgres/ledger_repo"
	"stockledger/pkg/logger"
)

// Config carries everything the router needs that is not constructed
// here: infrastructure handles and runtime policy.
type Config struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager
	JWT       *auth.JWTService
	Log       *logger.Logger

	// LowStockRule is compiled once at startup; a broken rule fails
	// boot, never a request.
	LowStockRule *reports.LowStockRule
	// GlobalThreshold applies to products without a reorder point.
	GlobalThreshold types.Quantity
}

// NewRouter builds the full service: repositories, domain services,
// handlers and the middleware chain.
func NewRouter(cfg Config) *gin.Engine {
	// Storage layer.
	auditService, err := postgres.NewAuditService(cfg.TxManager)
	if err != nil {
		// zstd encoder construction only fails on bad options.
		panic(err)
	}

	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	costCenterRepo := catalog_repo.NewCostCenterRepo(cfg.TxManager)
	costElementRepo := catalog_repo.NewCostElementRepo(cfg.TxManager)
	workOrderRepo := catalog_repo.NewWorkOrderRepo(cfg.TxManager)
	ledgerRepo := ledger_repo.NewLedgerRepo(cfg.TxManager)

	// Domain layer.
	productService := product.NewService(productRepo, auditService)
	costCenterService := costcenter.NewService(costCenterRepo, auditService)
	costElementService := costelement.NewService(costElementRepo, auditService)
	workOrderService := workorder.NewService(workOrderRepo, costCenterRepo, costElementRepo, auditService)

	allocator := ledger.NewAllocator(costCenterRepo, costElementRepo, workOrderRepo)
	movementService := ledger.NewService(productRepo, allocator, ledgerRepo, cfg.TxManager)
	reportService := reports.NewService(productRepo, ledgerRepo, cfg.LowStockRule, cfg.GlobalThreshold)

	// Handlers.
	healthHandler := handlers.NewHealthHandler(cfg.Pool.Pool)
	stockHandler := handlers.NewStockHandler(movementService, reportService)
	productHandler := handlers.NewProductHandler(productService)
	masterDataHandler := handlers.NewMasterDataHandler(costCenterService, costElementService)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderService)

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.Trace(),
		middleware.Logger(cfg.Log),
		middleware.ErrorHandler(),
	)

	router.GET("/healthz", healthHandler.Healthz)

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWT))
	{
		stock := api.Group("/stock")
		{
			stock.POST("/movements", stockHandler.CreateMovement)
			stock.GET("/movements", stockHandler.MovementHistory)
			stock.GET("/balances/:productId", stockHandler.GetBalance)
			stock.GET("/low-stock", stockHandler.LowStock)
		}

		products := api.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.GetByID)
			products.PUT("/:id/cost", productHandler.UpdateCost)
			products.DELETE("/:id", productHandler.Deactivate)
		}

		masterData := api.Group("/master-data")
		{
			costCenters := masterData.Group("/cost-centers")
			{
				costCenters.POST("", masterDataHandler.CreateCostCenter)
				costCenters.GET("", masterDataHandler.ListCostCenters)
				costCenters.PUT("/:id/activate", masterDataHandler.SetCostCenterActive(true))
				costCenters.PUT("/:id/deactivate", masterDataHandler.SetCostCenterActive(false))
			}

			costElements := masterData.Group("/cost-elements")
			{
				costElements.POST("", masterDataHandler.CreateCostElement)
				costElements.GET("", masterDataHandler.ListCostElements)
				costElements.PUT("/:id/activate", masterDataHandler.SetCostElementActive(true))
				costElements.PUT("/:id/deactivate", masterDataHandler.SetCostElementActive(false))
			}
		}

		workOrders := api.Group("/work-orders")
		{
			workOrders.POST("", workOrderHandler.Create)
			workOrders.GET("", workOrderHandler.List)
			workOrders.GET("/:id", workOrderHandler.GetByID)
			workOrders.POST("/:id/status", workOrderHandler.Transition)
		}
	}

	return router
}
