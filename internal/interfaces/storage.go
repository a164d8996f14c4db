// Package interfaces defines service contracts for portdash
package interfaces

import (
	"github.com/bobmcallan/portdash/internal/models"
)

// DataStore holds the stock collection and the user collection.
// Implementations are not safe for concurrent use; the dashboard
// coordinator owns the store and serializes access.
type DataStore interface {
	// Users returns the user collection in insertion order.
	Users() []*models.User
	// Stocks returns the stock collection in load order.
	Stocks() []*models.Stock

	// FindUser returns the first user whose id equals id.
	FindUser(id models.ID) (*models.User, error)
	// FindStock returns the stock with the given symbol.
	FindStock(symbol string) (*models.Stock, error)

	// UpdateUser replaces the profile of the first user matching id.
	UpdateUser(id models.ID, profile models.Profile) error
	// DeleteUser removes the first user matching id.
	DeleteUser(id models.ID) error
}
