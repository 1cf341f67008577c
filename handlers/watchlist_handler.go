package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heksoli/Stocks-Watcher/config"
	"github.com/heksoli/Stocks-Watcher/models"

	"github.com/labstack/echo/v4"
)

// AddWatchlistRequest adds one symbol to a user's watchlist.
type AddWatchlistRequest struct {
	Symbol  string `json:"symbol" validate:"required"`
	Company string `json:"company"`
}

func watchlistUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// GetWatchlist lists a user's watchlist, newest first.
func GetWatchlist(c echo.Context) error {
	userID, err := watchlistUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid user id"})
	}

	var items []models.WatchlistItem
	if err := config.DB.Where("user_id = ?", userID).Order("added_at DESC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: err.Error()})
	}

	return c.JSON(http.StatusOK, AuthResponse{Success: true, Data: items})
}

// AddToWatchlist adds a symbol to the user's watchlist. Symbols are stored
// uppercase; adding a symbol that is already tracked returns the existing
// entry instead of an error, so the client can treat the call as idempotent.
func AddToWatchlist(c echo.Context) error {
	userID, err := watchlistUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid user id"})
	}

	var req AddWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: err.Error()})
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Symbol is required"})
	}

	var existing models.WatchlistItem
	if err := config.DB.Where("user_id = ? AND symbol = ?", userID, symbol).First(&existing).Error; err == nil {
		return c.JSON(http.StatusOK, AuthResponse{Success: true, Data: existing})
	}

	item := models.WatchlistItem{
		UserID:  userID,
		Symbol:  symbol,
		Company: strings.TrimSpace(req.Company),
	}
	if err := config.DB.Create(&item).Error; err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, AuthResponse{Success: true, Data: item})
}

// RemoveFromWatchlist removes a symbol from the user's watchlist. Removing
// a symbol that is not tracked is a no-op success.
func RemoveFromWatchlist(c echo.Context) error {
	userID, err := watchlistUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid user id"})
	}

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Symbol is required"})
	}

	if err := config.DB.Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&models.WatchlistItem{}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: err.Error()})
	}

	return c.JSON(http.StatusOK, AuthResponse{Success: true})
}
