package dashboard

import "github.com/bobmcallan/portdash/internal/models"

// Selection tracks which user the edit form and portfolio panel show.
// It does not check that the id exists.
type Selection struct {
	id  models.ID
	set bool
}

// Select makes id the current selection.
func (s *Selection) Select(id models.ID) {
	s.id = id
	s.set = true
}

// Clear removes the selection.
func (s *Selection) Clear() {
	s.id = ""
	s.set = false
}

// Current returns the selected id and whether one is set.
func (s *Selection) Current() (models.ID, bool) {
	return s.id, s.set
}
