package models

import "time"

// WatchlistItem is one tracked symbol on a user's watchlist. A user can
// hold each symbol at most once.
type WatchlistItem struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	UserID  uint      `json:"userId" gorm:"uniqueIndex:idx_watchlist_user_symbol"`
	Symbol  string    `json:"symbol" gorm:"uniqueIndex:idx_watchlist_user_symbol"`
	Company string    `json:"company"`
	AddedAt time.Time `json:"addedAt" gorm:"autoCreateTime"`
}
