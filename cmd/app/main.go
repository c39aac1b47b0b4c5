package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"mboga/cmd/fx/account_fx"
	"mboga/cmd/fx/catalog_fx"
	"mboga/cmd/fx/db_fx"
	"mboga/cmd/fx/order_fx"
	"mboga/cmd/fx/payment_fx"
	"mboga/internal/api/controllers"
	"mboga/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		catalog_fx.Module,
		order_fx.Module,
		payment_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	catalogController *controllers.CatalogController,
	orderController *controllers.OrderController,
	paymentController *controllers.PaymentController,
) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, catalogController, orderController, paymentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	catalogController *controllers.CatalogController,
	orderController *controllers.OrderController,
	paymentController *controllers.PaymentController) {

	r.POST("/register", accountController.Register)
	r.POST("/login", accountController.Login)

	// Provider webhook: unauthenticated, Daraja calls it directly.
	r.POST("/mpesaCallback", paymentController.MpesaCallback)

	r.GET("/products", catalogController.ListProducts)
	r.GET("/products/:id", catalogController.GetProduct)
	r.GET("/delivery/fee", catalogController.GetDeliveryFee)

	protected := r.Group("/")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.POST("/initiateMpesaPayment", paymentController.InitiateMpesaPayment)
		protected.POST("/getPaymentStatus", paymentController.GetPaymentStatus)

		protected.POST("/orders", orderController.SubmitOrder)
		protected.GET("/orders", orderController.ListOrders)
		protected.GET("/orders/duplicates", orderController.ListDuplicateOrders)
		protected.DELETE("/orders/:id", orderController.CancelOrder)
		protected.PUT("/orders/:id/items/:productId/remove", orderController.RemoveItem)
	}
}
