// Package storage holds the in-memory user and stock collections and the
// seed loader that fills them at startup.
package storage

import (
	"errors"
	"fmt"

	"github.com/bobmcallan/portdash/internal/models"
)

// Common errors for store operations.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrStockNotFound = errors.New("stock not found")
	ErrDuplicateID   = errors.New("duplicate user id")
)

// MemoryStore implements interfaces.DataStore over two slices.
// Lookups are linear scans; collection order is insertion order.
type MemoryStore struct {
	users  []*models.User
	stocks []*models.Stock
}

// NewMemoryStore takes ownership of the given collections.
func NewMemoryStore(users []*models.User, stocks []*models.Stock) *MemoryStore {
	return &MemoryStore{users: users, stocks: stocks}
}

func (s *MemoryStore) Users() []*models.User {
	return s.users
}

func (s *MemoryStore) Stocks() []*models.Stock {
	return s.stocks
}

func (s *MemoryStore) indexOfUser(id models.ID) int {
	for i, u := range s.users {
		if u.ID.Equal(id) {
			return i
		}
	}
	return -1
}

// FindUser returns ErrUserNotFound when no id matches.
func (s *MemoryStore) FindUser(id models.ID) (*models.User, error) {
	if i := s.indexOfUser(id); i >= 0 {
		return s.users[i], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

// FindStock returns ErrStockNotFound when no symbol matches.
func (s *MemoryStore) FindStock(symbol string) (*models.Stock, error) {
	for _, st := range s.stocks {
		if models.SameSymbol(st.Symbol, symbol) {
			return st, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrStockNotFound, symbol)
}

// UpdateUser overwrites the five profile fields of the first match in place.
// If later entries share the id they are left untouched and ErrDuplicateID
// is returned alongside the successful update.
func (s *MemoryStore) UpdateUser(id models.ID, profile models.Profile) error {
	i := s.indexOfUser(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	s.users[i].Profile = profile

	dups := 0
	for _, u := range s.users[i+1:] {
		if u.ID.Equal(id) {
			dups++
		}
	}
	if dups > 0 {
		return fmt.Errorf("%w: %s shared by %d entries", ErrDuplicateID, id, dups+1)
	}
	return nil
}

// DeleteUser removes exactly one entry, preserving the order of the rest.
func (s *MemoryStore) DeleteUser(id models.ID) error {
	i := s.indexOfUser(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	copy(s.users[i:], s.users[i+1:])
	s.users[len(s.users)-1] = nil
	s.users = s.users[:len(s.users)-1]
	return nil
}
