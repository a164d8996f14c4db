package models

// Event regions. Each region of the page posts its clicks with one of these
// names; the coordinator then inspects the target to pick the action.
const (
	RegionUserList  = "user-list"
	RegionPortfolio = "portfolio"
	RegionEditForm  = "edit-form"
)

// Edit form actions carried as the event target.
const (
	ActionSave   = "save"
	ActionDelete = "delete"
)

// Event is a click delivered to one region of the dashboard.
type Event struct {
	Region string
	// Target identifies what was clicked: a user id in the user list, a
	// symbol in the portfolio, or an action in the edit form.
	Target string
	// Tag is the element name of the click target ("button", "li", ...).
	Tag string
	// Input holds form field values submitted with the click, keyed by
	// field id. Only fields present in the submission are applied.
	Input map[string]string
}
