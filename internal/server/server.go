package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"cakestory-client/internal/handler"
	custommw "cakestory-client/internal/middleware"
)

type Server struct {
	echo           *echo.Echo
	orderHandler   *handler.OrderHandler
	catalogHandler *handler.CatalogHandler
	walletHandler  *handler.WalletHandler
	cartHandler    *handler.CartHandler
}

func NewServer(
	accessToken string,
	orderHandler *handler.OrderHandler,
	catalogHandler *handler.CatalogHandler,
	walletHandler *handler.WalletHandler,
	cartHandler *handler.CartHandler,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(custommw.AuthMiddleware(accessToken))

	s := &Server{
		echo:           e,
		orderHandler:   orderHandler,
		catalogHandler: catalogHandler,
		walletHandler:  walletHandler,
		cartHandler:    cartHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- catalog --------
	api.GET("/shops/:shopID/ingredients", s.catalogHandler.GetIngredients)
	api.GET("/marketplace-posts/:postID", s.catalogHandler.GetMarketplacePost)

	// -------- orders --------
	orders := api.Group("/orders")
	orders.POST("/quote", s.orderHandler.Quote)
	orders.POST("", s.orderHandler.Submit)
	orders.GET("/:orderID/payment-status", s.orderHandler.PaymentStatus)
	orders.GET("/:orderID/payment-status/watch", s.orderHandler.WatchPaymentStatus)

	// -------- wallet --------
	wallet := api.Group("/wallet")
	wallet.GET("/balance", s.walletHandler.GetBalance)
	wallet.POST("/topup", s.walletHandler.TopUp)

	// -------- local cart --------
	cart := api.Group("/cart")
	cart.GET("", s.cartHandler.List)
	cart.POST("", s.cartHandler.Add)
	cart.PATCH("/:itemID", s.cartHandler.UpdateQuantity)
	cart.DELETE("/:itemID", s.cartHandler.Remove)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
