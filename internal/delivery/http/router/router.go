// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"workbuddy/internal/delivery/http/middleware"
	"workbuddy/internal/delivery/http/router/handler"
	"workbuddy/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	AccountHandler   *handler.AccountHandler
	ProfileHandler   *handler.ProfileHandler
	CatalogHandler   *handler.CatalogHandler
	CartHandler      *handler.CartHandler
	DiscountHandler  *handler.DiscountHandler
	OfferHandler     *handler.OfferHandler
	OrderHandler     *handler.OrderHandler
	PaymentHandler   *handler.PaymentHandler
	ReviewHandler    *handler.ReviewHandler
	FavoritesHandler *handler.FavoritesHandler
	SettingsHandler  *handler.SettingsHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware
	staff := auth.RequireUserType(entity.UserTypeAdmin, entity.UserTypeEmployee)
	adminOnly := auth.RequireUserType(entity.UserTypeAdmin)
	clientOnly := auth.RequireUserType(entity.UserTypeClient)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.POST("/logout", r.params.AuthHandler.Logout)
		authGroup.POST("/register", r.params.AuthHandler.Register)
		authGroup.POST("/verify", r.params.AuthHandler.Verify)
		authGroup.POST("/recovery/request", r.params.AuthHandler.RequestRecovery)
		authGroup.POST("/recovery/verify", r.params.AuthHandler.VerifyRecovery)
		authGroup.POST("/recovery/reset", r.params.AuthHandler.ResetPassword)
	}

	// Client account management, restricted to back-office staff
	clientsGroup := e.Group("/clients", auth.Authenticate, staff)
	{
		clientsGroup.GET("", r.params.AccountHandler.ListClients)
		clientsGroup.GET("/:id", r.params.AccountHandler.GetClient)
		clientsGroup.POST("", r.params.AccountHandler.CreateClient)
		clientsGroup.PUT("/:id", r.params.AccountHandler.UpdateClient)
		clientsGroup.DELETE("/:id", r.params.AccountHandler.DeleteClient)
	}

	// Employee account management, restricted to the admin
	employeesGroup := e.Group("/employees", auth.Authenticate, adminOnly)
	{
		employeesGroup.GET("", r.params.AccountHandler.ListEmployees)
		employeesGroup.GET("/:id", r.params.AccountHandler.GetEmployee)
		employeesGroup.POST("", r.params.AccountHandler.CreateEmployee)
		employeesGroup.PUT("/:id", r.params.AccountHandler.UpdateEmployee)
		employeesGroup.DELETE("/:id", r.params.AccountHandler.DeleteEmployee)
	}

	// Own profile, any authenticated database-backed account
	profileGroup := e.Group("/profile", auth.Authenticate)
	{
		profileGroup.GET("", r.params.ProfileHandler.GetProfile)
		profileGroup.PUT("", r.params.ProfileHandler.UpdateProfile)
	}

	// Catalog: reads are open to any authenticated user, writes to staff
	productsGroup := e.Group("/products", auth.Authenticate)
	{
		productsGroup.GET("", r.params.CatalogHandler.ListProducts)
		productsGroup.GET("/:id", r.params.CatalogHandler.GetProduct)
		productsGroup.GET("/:id/reviews", r.params.ReviewHandler.ListProductReviews)
		productsGroup.POST("", r.params.CatalogHandler.CreateProduct, staff)
		productsGroup.PUT("/:id", r.params.CatalogHandler.UpdateProduct, staff)
		productsGroup.DELETE("/:id", r.params.CatalogHandler.DeleteProduct, staff)
	}

	// Carts
	cartsGroup := e.Group("/carts", auth.Authenticate)
	{
		cartsGroup.GET("", r.params.CartHandler.ListCarts, staff)
		cartsGroup.GET("/mine", r.params.CartHandler.GetOwnCart, clientOnly)
		cartsGroup.GET("/:id", r.params.CartHandler.GetCart)
		cartsGroup.POST("", r.params.CartHandler.CreateCart)
		cartsGroup.POST("/:id/items", r.params.CartHandler.AddItem)
		cartsGroup.PUT("/:id/items", r.params.CartHandler.UpdateItem)
		cartsGroup.DELETE("/:id/items/:productID", r.params.CartHandler.RemoveItem)
		cartsGroup.POST("/:id/discount", r.params.CartHandler.ApplyDiscount)
		cartsGroup.DELETE("/:id", r.params.CartHandler.DeleteCart)
	}

	// Discount codes, staff only
	discountsGroup := e.Group("/discounts", auth.Authenticate, staff)
	{
		discountsGroup.GET("", r.params.DiscountHandler.ListCodes)
		discountsGroup.GET("/:id", r.params.DiscountHandler.GetCode)
		discountsGroup.GET("/:id/image", r.params.DiscountHandler.CodeImage)
		discountsGroup.POST("", r.params.DiscountHandler.CreateCode)
		discountsGroup.PUT("/:id", r.params.DiscountHandler.UpdateCode)
		discountsGroup.DELETE("/:id", r.params.DiscountHandler.DeleteCode)
	}

	// Offers: reads for everyone signed in, writes for staff
	offersGroup := e.Group("/offers", auth.Authenticate)
	{
		offersGroup.GET("", r.params.OfferHandler.ListOffers)
		offersGroup.GET("/:id", r.params.OfferHandler.GetOffer)
		offersGroup.POST("", r.params.OfferHandler.CreateOffer, staff)
		offersGroup.PUT("/:id", r.params.OfferHandler.UpdateOffer, staff)
		offersGroup.DELETE("/:id", r.params.OfferHandler.DeleteOffer, staff)
	}

	// Orders and payments
	ordersGroup := e.Group("/orders", auth.Authenticate)
	{
		ordersGroup.GET("", r.params.OrderHandler.ListOrders, staff)
		ordersGroup.GET("/mine", r.params.OrderHandler.ListOwnOrders)
		ordersGroup.GET("/:id", r.params.OrderHandler.GetOrder)
		ordersGroup.POST("", r.params.OrderHandler.CreateOrder)
		ordersGroup.POST("/admin", r.params.OrderHandler.CreateOrderForClient, staff)
		ordersGroup.PATCH("/:id/status", r.params.OrderHandler.UpdateStatus, staff)
		ordersGroup.DELETE("/:id", r.params.OrderHandler.DeleteOrder)

		ordersGroup.POST("/:id/payment", r.params.PaymentHandler.CreatePayment)
		ordersGroup.POST("/:id/payment/capture", r.params.PaymentHandler.CapturePayment)
		ordersGroup.POST("/:id/payment/cancel", r.params.PaymentHandler.CancelPayment)
		ordersGroup.GET("/:id/payment", r.params.PaymentHandler.PaymentStatus)
	}

	// Reviews
	reviewsGroup := e.Group("/reviews", auth.Authenticate)
	{
		reviewsGroup.GET("/mine", r.params.ReviewHandler.ListOwnReviews, clientOnly)
		reviewsGroup.POST("", r.params.ReviewHandler.CreateReview)
		reviewsGroup.PUT("/:id", r.params.ReviewHandler.UpdateReview)
		reviewsGroup.DELETE("/:id", r.params.ReviewHandler.DeleteReview)
	}

	// Favorites
	favoritesGroup := e.Group("/favorites", auth.Authenticate)
	{
		favoritesGroup.GET("", r.params.FavoritesHandler.GetFavorites)
		favoritesGroup.POST("/:productID", r.params.FavoritesHandler.AddFavorite)
		favoritesGroup.DELETE("/:productID", r.params.FavoritesHandler.RemoveFavorite)
	}

	// Settings
	settingsGroup := e.Group("/settings", auth.Authenticate)
	{
		settingsGroup.GET("", r.params.SettingsHandler.GetSettings)
		settingsGroup.PUT("/preferences", r.params.SettingsHandler.UpdatePreferences)
		settingsGroup.POST("/addresses", r.params.SettingsHandler.AddAddress)
		settingsGroup.PUT("/addresses/:addressID", r.params.SettingsHandler.UpdateAddress)
		settingsGroup.DELETE("/addresses/:addressID", r.params.SettingsHandler.DeleteAddress)
		settingsGroup.POST("/addresses/:addressID/default", r.params.SettingsHandler.SetDefaultAddress)
	}
}
