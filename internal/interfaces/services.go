package interfaces

import (
	"io"

	"github.com/bobmcallan/portdash/internal/models"
)

// DashboardService owns the dashboard state and the rendered page.
// All methods are safe for concurrent use; events are applied one at a time.
type DashboardService interface {
	// Dispatch applies one click event and resynchronizes the page.
	Dispatch(ev models.Event) error

	// WritePage renders the current page as HTML.
	WritePage(w io.Writer) error

	// Selected returns the currently selected user id, if any.
	Selected() (models.ID, bool)

	// Users returns a copy of the user collection.
	Users() []*models.User

	// User returns a copy of the first user matching id.
	User(id models.ID) (*models.User, error)

	// Stocks returns a copy of the stock collection.
	Stocks() []models.Stock

	// Stock returns a copy of the stock with the given symbol.
	Stock(symbol string) (*models.Stock, error)

	// HoldingsChart renders the holdings chart of a user as SVG.
	HoldingsChart(id models.ID) ([]byte, error)
}
