package routes

import (
	"github.com/heksoli/Stocks-Watcher/handlers"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handlers.HealthCheckHandler)
	e.GET("/ready", handlers.ReadinessHandler)
	e.GET("/live", handlers.LivenessHandler)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/sign-up", handlers.SignUp)
	auth.POST("/sign-in", handlers.SignIn)
	auth.POST("/sign-out", handlers.SignOut)

	api.GET("/users/:id", handlers.GetUserByID)

	api.GET("/users/:id/watchlist", handlers.GetWatchlist)
	api.POST("/users/:id/watchlist", handlers.AddToWatchlist)
	api.DELETE("/users/:id/watchlist/:symbol", handlers.RemoveFromWatchlist)
}
