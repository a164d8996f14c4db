package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bobmcallan/portdash/internal/common"
	"github.com/bobmcallan/portdash/internal/models"
)

// ErrInvalidSeed is returned when a seed collection violates a load-time invariant.
var ErrInvalidSeed = errors.New("invalid seed data")

// Format is the encoding of a seed file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported seed file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

func decode(data []byte, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unknown seed format %q", format)
	}
}

// ParseUsers decodes and validates a user collection.
func ParseUsers(data []byte, format Format) ([]*models.User, error) {
	var users []*models.User
	if err := decode(data, format, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	for i, u := range users {
		if u == nil {
			return nil, fmt.Errorf("%w: user at index %d is null", ErrInvalidSeed, i)
		}
		if u.ID.IsZero() {
			return nil, fmt.Errorf("%w: user at index %d has no id", ErrInvalidSeed, i)
		}
		for j := 0; j < i; j++ {
			if users[j].ID.Equal(u.ID) {
				return nil, fmt.Errorf("%w: id %s appears at index %d and %d", ErrInvalidSeed, u.ID, j, i)
			}
		}
		for _, e := range u.Portfolio {
			if e.Owned < 0 {
				return nil, fmt.Errorf("%w: user %s owns %d shares of %s", ErrInvalidSeed, u.ID, e.Owned, e.Symbol)
			}
		}
	}
	return users, nil
}

// ParseStocks decodes and validates a stock collection.
func ParseStocks(data []byte, format Format) ([]*models.Stock, error) {
	var stocks []*models.Stock
	if err := decode(data, format, &stocks); err != nil {
		return nil, fmt.Errorf("failed to decode stocks: %w", err)
	}
	seen := make(map[string]int, len(stocks))
	for i, s := range stocks {
		if s == nil {
			return nil, fmt.Errorf("%w: stock at index %d is null", ErrInvalidSeed, i)
		}
		s.Symbol = strings.TrimSpace(s.Symbol)
		if s.Symbol == "" {
			return nil, fmt.Errorf("%w: stock at index %d has no symbol", ErrInvalidSeed, i)
		}
		if j, ok := seen[s.Symbol]; ok {
			return nil, fmt.Errorf("%w: symbol %s appears at index %d and %d", ErrInvalidSeed, s.Symbol, j, i)
		}
		seen[s.Symbol] = i
	}
	return stocks, nil
}

func readSeed(path string) ([]byte, Format, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, format, nil
}

// LoadUsers reads a user collection from a .json or .yaml file.
func LoadUsers(path string) ([]*models.User, error) {
	data, format, err := readSeed(path)
	if err != nil {
		return nil, err
	}
	users, err := ParseUsers(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return users, nil
}

// LoadStocks reads a stock collection from a .json or .yaml file.
func LoadStocks(path string) ([]*models.Stock, error) {
	data, format, err := readSeed(path)
	if err != nil {
		return nil, err
	}
	stocks, err := ParseStocks(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stocks, nil
}

// Load builds a MemoryStore from the configured seed files. Holdings whose
// symbol is missing from the stock collection are logged, not rejected.
func Load(logger *common.Logger, cfg common.DataConfig) (*MemoryStore, error) {
	stocks, err := LoadStocks(cfg.Stocks)
	if err != nil {
		return nil, fmt.Errorf("failed to load stocks: %w", err)
	}
	users, err := LoadUsers(cfg.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	store := NewMemoryStore(users, stocks)
	for _, u := range users {
		for _, e := range u.Portfolio {
			if _, err := store.FindStock(e.Symbol); err != nil {
				logger.Warn().
					Str("user_id", u.ID.String()).
					Str("symbol", e.Symbol).
					Msg("Portfolio entry references unknown stock")
			}
		}
	}

	logger.Info().
		Int("users", len(users)).
		Int("stocks", len(stocks)).
		Str("users_path", cfg.Users).
		Str("stocks_path", cfg.Stocks).
		Msg("Seed data loaded")

	return store, nil
}
