package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"cakestory-client/internal/client"
	"cakestory-client/internal/config"
	"cakestory-client/internal/handler"
	"cakestory-client/internal/server"
	"cakestory-client/internal/service"
	"cakestory-client/internal/store"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	cartDB, err := store.InitCartDB(cfg.CartDBPath)
	if err != nil {
		log.Fatal("cart db init error: ", err)
	}

	api := client.NewCakeStoryClient(&cfg.Backend)

	customerID, err := client.CustomerIDFromToken(cfg.Backend.AccessToken)
	if err != nil {
		log.Println("no customer id in access token, orders will be rejected by the backend:", err)
	}

	cartRepo := store.NewCartRepository(cartDB)

	orderService := service.NewOrderService(api, customerID)
	walletService := service.NewWalletService(api)

	orderHandler := handler.NewOrderHandler(api, orderService, cfg.Poll)
	catalogHandler := handler.NewCatalogHandler(api)
	walletHandler := handler.NewWalletHandler(walletService)
	cartHandler := handler.NewCartHandler(cartRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(cfg.Backend.AccessToken, orderHandler, catalogHandler, walletHandler, cartHandler)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
