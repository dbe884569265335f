package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/configs"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/controllers"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/middlewares"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/taskqueue"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/services"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, queue *taskqueue.Queue, log *zap.Logger) {
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, restRepo, cfg.JWTSecret, cfg.JWTTTL)
	userSvc := services.NewUserService(userRepo)
	clientSvc := services.NewClientService(clientRepo, queue, log, cfg.UploadsDir)
	restSvc := services.NewRestaurantService(restRepo, userRepo)
	productSvc := services.NewProductService(productRepo, restRepo)
	orderSvc := services.NewOrderService(db, orderRepo, restRepo)
	reportSvc := services.NewReportService(reportRepo, queue, log, cfg.ReportsDir)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	userCtrl := controllers.NewUserController(userSvc)
	clientCtrl := controllers.NewClientController(clientSvc)
	restCtrl := controllers.NewRestaurantController(restSvc)
	productCtrl := controllers.NewProductController(productSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, userRepo)
	reportCtrl := controllers.NewReportController(reportSvc)

	auth := func(roles ...entity.Role) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, roles...)
	}

	// Auth (public)
	r.POST("/auth/login", authCtrl.Login)

	// Users
	users := r.Group("/users", auth())
	{
		users.POST("/register", authCtrl.Register)
		users.POST("/change-password", authCtrl.ChangePassword)
		users.GET("/list", userCtrl.List)
		users.PUT("/:id", userCtrl.Update)
		users.DELETE("/:id", userCtrl.Delete)
	}

	// same router constraint as product items: /users/:id excludes a
	// static /users/clients sibling, so clients get their own prefix
	clients := r.Group("/clients", auth())
	{
		clients.POST("", clientCtrl.Create)
		clients.GET("/list", clientCtrl.List)
		clients.PUT("/:id", clientCtrl.Update)
		clients.DELETE("/:id", clientCtrl.Delete)
		clients.POST("/bulk-upload", clientCtrl.BulkUpload)
		clients.GET("/bulk-upload/status", clientCtrl.BulkUploadStatus)
	}

	// Restaurants
	r.GET("/restaurants/all", restCtrl.ListAll)
	r.GET("/restaurants/menu/:restaurant_id", productCtrl.Menu)

	r.POST("/restaurants", auth(entity.RoleAdmin), restCtrl.Create)
	r.DELETE("/restaurants/:id", auth(entity.RoleAdmin), restCtrl.Delete)

	rest := r.Group("/restaurants", auth())
	{
		rest.GET("", restCtrl.ListOwn)
		rest.PUT("/:id", restCtrl.Update)
	}

	// product items live under their own prefix: gin's router rejects a
	// static /restaurants/product-items next to the /restaurants/:id
	// wildcard in the same method tree
	r.POST("/product-items", auth(entity.RoleAdmin, entity.RoleOwner), productCtrl.Create)
	products := r.Group("/product-items", auth())
	{
		products.GET("", productCtrl.List)
		products.PUT("/:id", productCtrl.Update)
		products.DELETE("/:id", productCtrl.Delete)
	}

	// Orders
	r.POST("/orders/create", auth(entity.RoleWaitress), orderCtrl.Create)

	orders := r.Group("/orders", auth())
	{
		orders.GET("/list/:restaurant_id", orderCtrl.ListByRestaurant)
		orders.PUT("/:id", orderCtrl.Update)
		orders.DELETE("/:id", orderCtrl.Delete)

		reports := orders.Group("/reports")
		{
			reports.POST("/generate", reportCtrl.Generate)
			reports.POST("/download", reportCtrl.Download)
			reports.GET("/requests", reportCtrl.ListRequests)
		}
	}
}
