package router

import (
	"tecstock/internal/config"
	"tecstock/internal/handler"
	"tecstock/internal/infra"
	"tecstock/internal/middleware"
	"tecstock/internal/repository"
	"tecstock/internal/service"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Datastore
func New(cfg *config.Config, ds *infra.Datastore) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	db := ds.DB()

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	repairPartRepo := repository.NewRepairPartRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	settingsStore := config.NewSettingsStore(cfg.SettingsFile)

	productSvc := service.NewProductService(ds, productRepo)
	supplierSvc := service.NewSupplierService(ds, supplierRepo, productRepo)
	ledgerSvc := service.NewLedgerService(ds, productRepo, movementRepo)
	repairPartSvc := service.NewRepairPartService(ds, repairPartRepo)
	laborSvc := service.NewLaborService(ds, serviceRepo)
	orderSvc := service.NewOrderService(ds, orderRepo, repairPartRepo, serviceRepo)
	purchaseSvc := service.NewPurchaseService(ds, purchaseRepo, repairPartRepo, orderRepo)
	dashboardSvc := service.NewDashboardService(ds, productRepo, supplierRepo)
	settingsSvc := service.NewSettingsService(settingsStore)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	movementsH := handler.NewMovementsHandler(ledgerSvc)
	repairPartsH := handler.NewRepairPartsHandler(repairPartSvc)
	servicesH := handler.NewServicesHandler(laborSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)

	r.GET("/health", handler.Health(ds))

	api := r.Group("/api")
	{
		api.GET("/dashboard", dashboardH.Snapshot)

		produtos := api.Group("/produtos")
		{
			produtos.POST("", productsH.Create)
			produtos.GET("", productsH.List)
			produtos.GET("/:id", productsH.Get)
			produtos.PUT("/:id", productsH.Update)
			produtos.DELETE("/:id", productsH.Delete)
		}

		fornecedores := api.Group("/fornecedores")
		{
			fornecedores.POST("", suppliersH.Create)
			fornecedores.GET("", suppliersH.List)
			fornecedores.GET("/:id", suppliersH.Get)
			fornecedores.PUT("/:id", suppliersH.Update)
			fornecedores.DELETE("/:id", suppliersH.Delete)
		}

		movimentacoes := api.Group("/movimentacoes")
		{
			movimentacoes.POST("", movementsH.Apply)
			movimentacoes.GET("", movementsH.List)
		}

		reparos := api.Group("/reparos")
		{
			reparos.POST("", repairPartsH.Create)
			reparos.GET("", repairPartsH.List)
			reparos.GET("/:id", repairPartsH.Get)
			reparos.PUT("/:id", repairPartsH.Update)
			reparos.PUT("/:id/custo", repairPartsH.UpdateCost)
			reparos.DELETE("/:id", repairPartsH.Delete)
		}

		servicos := api.Group("/servicos")
		{
			servicos.POST("", servicesH.Create)
			servicos.GET("", servicesH.List)
			servicos.GET("/:id", servicesH.Get)
			servicos.PUT("/:id", servicesH.Update)
			servicos.DELETE("/:id", servicesH.Delete)
		}

		ordens := api.Group("/ordens-servico")
		{
			ordens.POST("", ordersH.Create)
			ordens.GET("", ordersH.List)
			ordens.GET("/:id", ordersH.Get)
			ordens.PUT("/:id", ordersH.Update)
			ordens.DELETE("/:id", ordersH.Delete)
		}

		compras := api.Group("/compras")
		{
			compras.POST("", purchasesH.Create)
			compras.GET("", purchasesH.List)
			compras.GET("/:id", purchasesH.Get)
			compras.DELETE("/:id", purchasesH.Delete)
		}

		api.GET("/financas/lucros", purchasesH.ProfitReport)

		configuracoes := api.Group("/configuracoes")
		{
			configuracoes.GET("", settingsH.DefaultMessage)
			configuracoes.POST("", settingsH.Update)
			configuracoes.GET("/fornecedor/:id", settingsH.SupplierMessage)
		}
	}

	return r
}
