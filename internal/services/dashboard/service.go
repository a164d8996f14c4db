// Package dashboard coordinates dashboard events: it owns the data store,
// the selection and the page, applies each event and re-renders.
package dashboard

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bobmcallan/portdash/internal/common"
	"github.com/bobmcallan/portdash/internal/interfaces"
	"github.com/bobmcallan/portdash/internal/models"
	"github.com/bobmcallan/portdash/internal/storage"
	"github.com/bobmcallan/portdash/internal/view"
)

// ErrUnknownEvent is returned for an event whose region or target has no action.
var ErrUnknownEvent = errors.New("unknown event")

// Page is a document that can also be written out whole.
type Page interface {
	view.Document
	Render(w io.Writer) error
}

// Compile-time interface check
var _ interfaces.DashboardService = (*Service)(nil)

// Service implements DashboardService. mu serializes events and page
// renders; the store, selection and page are only touched under it.
type Service struct {
	mu        sync.Mutex
	store     interfaces.DataStore
	page      Page
	renderer  *view.Renderer
	selection Selection
	logger    *common.Logger
}

// NewService creates the coordinator and renders the initial page: the user
// list, a blank form, a header-only portfolio and an empty stock panel.
func NewService(store interfaces.DataStore, page Page, logger *common.Logger) (*Service, error) {
	s := &Service{
		store:    store,
		page:     page,
		renderer: view.NewRenderer(page),
		logger:   logger,
	}
	if err := s.resetAll(); err != nil {
		return nil, fmt.Errorf("initial render failed: %w", err)
	}
	return s, nil
}

func (s *Service) resetAll() error {
	if err := s.renderer.RenderUserList(s.store.Users()); err != nil {
		return err
	}
	if err := s.renderer.RenderForm(nil); err != nil {
		return err
	}
	if err := s.renderer.RenderPortfolio(nil); err != nil {
		return err
	}
	return s.renderer.RenderStockDetail(nil)
}

// Dispatch routes an event by region, then by inspecting its target.
func (s *Service) Dispatch(ev models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Region {
	case models.RegionUserList:
		// A click on the list itself rather than on an entry carries no target.
		if strings.TrimSpace(ev.Target) == "" {
			return nil
		}
		return s.selectUser(models.ID(ev.Target))

	case models.RegionPortfolio:
		// Only the per-row action buttons view a stock.
		if !strings.EqualFold(ev.Tag, "button") {
			return nil
		}
		return s.viewStock(ev.Target)

	case models.RegionEditForm:
		if err := s.applyInput(ev.Input); err != nil {
			return err
		}
		switch ev.Target {
		case models.ActionSave:
			return s.save()
		case models.ActionDelete:
			return s.deleteUser()
		}
		return fmt.Errorf("%w: edit-form target %q", ErrUnknownEvent, ev.Target)
	}

	return fmt.Errorf("%w: region %q", ErrUnknownEvent, ev.Region)
}

// SelectUser selects id and shows its form and portfolio.
func (s *Service) SelectUser(id models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectUser(id)
}

// ViewStock shows the stock detail panel for symbol.
func (s *Service) ViewStock(symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewStock(symbol)
}

// Save writes the rendered form back to the matching user.
func (s *Service) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// Delete removes the user whose id is in the rendered form.
func (s *Service) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteUser()
}

func (s *Service) selectUser(id models.ID) error {
	s.selection.Select(id)

	user, err := s.store.FindUser(id)
	if err != nil {
		// Unknown ids render the blank state.
		s.logger.Debug().Str("user_id", id.String()).Msg("Selected user not found")
		user = nil
	}

	if err := s.renderer.RenderForm(user); err != nil {
		return err
	}
	if err := s.renderer.RenderPortfolio(user); err != nil {
		return err
	}

	s.logger.Debug().Str("user_id", id.String()).Bool("found", user != nil).Msg("User selected")
	return nil
}

func (s *Service) viewStock(symbol string) error {
	stock, err := s.store.FindStock(symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Msg("Stock not found")
		if rerr := s.renderer.RenderStockDetail(nil); rerr != nil {
			return rerr
		}
		return err
	}
	return s.renderer.RenderStockDetail(stock)
}

// applyInput copies submitted field values into the page, as a browser's
// input state would hold them.
func (s *Service) applyInput(input map[string]string) error {
	for _, f := range view.FormFields {
		v, ok := input[f]
		if !ok {
			continue
		}
		if err := s.page.SetValue(f, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) formValues() (models.ID, models.Profile, error) {
	values := make(map[string]string, len(view.FormFields))
	for _, f := range view.FormFields {
		v, err := s.page.Value(f)
		if err != nil {
			return "", models.Profile{}, err
		}
		values[f] = v
	}
	return models.ID(values[view.FieldID]), models.Profile{
		Firstname: values[view.FieldFirstname],
		Lastname:  values[view.FieldLastname],
		Address:   values[view.FieldAddress],
		City:      values[view.FieldCity],
		Email:     values[view.FieldEmail],
	}, nil
}

func (s *Service) save() error {
	id, profile, err := s.formValues()
	if err != nil {
		return err
	}

	err = s.store.UpdateUser(id, profile)
	switch {
	case errors.Is(err, storage.ErrUserNotFound):
		s.logger.Debug().Str("user_id", id.String()).Msg("Save ignored, no matching user")
		return nil
	case errors.Is(err, storage.ErrDuplicateID):
		s.logger.Warn().Err(err).Msg("Data integrity violation, only the first match was updated")
	case err != nil:
		return err
	}

	s.logger.Info().Str("user_id", id.String()).Msg("User saved")
	return s.renderer.RenderUserList(s.store.Users())
}

func (s *Service) deleteUser() error {
	id, _, err := s.formValues()
	if err != nil {
		return err
	}

	if err := s.store.DeleteUser(id); err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			return err
		}
		s.logger.Debug().Str("user_id", id.String()).Msg("Delete ignored, no matching user")
	} else {
		s.logger.Info().Str("user_id", id.String()).Msg("User deleted")
	}

	s.selection.Clear()

	if err := s.renderer.RenderUserList(s.store.Users()); err != nil {
		return err
	}
	if err := s.renderer.RenderForm(nil); err != nil {
		return err
	}
	return s.renderer.RenderPortfolio(nil)
}

// WritePage renders the current page.
func (s *Service) WritePage(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.Render(w)
}

// Selected returns the current selection.
func (s *Service) Selected() (models.ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Current()
}

// Users returns deep copies of every user.
func (s *Service) Users() []*models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.store.Users()
	out := make([]*models.User, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}

// User returns a deep copy of the first user matching id.
func (s *Service) User(id models.ID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.store.FindUser(id)
	if err != nil {
		return nil, err
	}
	return u.Clone(), nil
}

// Stocks returns copies of every stock.
func (s *Service) Stocks() []models.Stock {
	s.mu.Lock()
	defer s.mu.Unlock()

	stocks := s.store.Stocks()
	out := make([]models.Stock, len(stocks))
	for i, st := range stocks {
		out[i] = *st
	}
	return out
}

// Stock returns a copy of the stock with the given symbol.
func (s *Service) Stock(symbol string) (*models.Stock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.store.FindStock(symbol)
	if err != nil {
		return nil, err
	}
	c := *st
	return &c, nil
}

// HoldingsChart renders outside the lock from a copy of the user.
func (s *Service) HoldingsChart(id models.ID) ([]byte, error) {
	u, err := s.User(id)
	if err != nil {
		return nil, err
	}
	return view.RenderHoldingsChart(u)
}
