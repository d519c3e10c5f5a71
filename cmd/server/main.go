package main

import (
	"log"

	"futstore-be/internal/config"
	"futstore-be/internal/db"
	"futstore-be/internal/handler"
	"futstore-be/internal/history"
	"futstore-be/internal/logger"
	"futstore-be/internal/order"
	"futstore-be/internal/payment"
	"futstore-be/internal/product"
	"futstore-be/internal/router"
	"futstore-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	historyRepo := history.NewRepository(database)
	historySvc := history.NewService(historyRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, historySvc)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	gateway := payment.NewHTTPGateway(cfg.GatewayBaseURL, cfg.GatewayUser, cfg.GatewayPassword)
	linkRepo := payment.NewRepository(database)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, gateway, linkRepo, productRepo, cfg.CheckoutBaseURL)

	engine := router.Setup(&router.Handlers{
		Product: handler.NewProductHandler(productSvc),
		Order:   handler.NewOrderHandler(orderSvc),
		History: handler.NewHistoryHandler(historySvc),
		User:    handler.NewUserHandler(userSvc),
	}, cfg.CheckoutBaseURL)

	log.Printf("server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(engine.Run(":" + cfg.AppPort))
}
