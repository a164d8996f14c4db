// Package view projects the dashboard state onto a document with named
// regions. Every render call rebuilds its region from scratch.
package view

import "errors"

// ErrUnknownRegion is returned when a document has no element with the
// requested id.
var ErrUnknownRegion = errors.New("unknown document region")

// Regions and fields of the dashboard page, by element id.
const (
	RegionUserList  = "userList"
	RegionPortfolio = "portfolioList"

	FieldID        = "userID"
	FieldFirstname = "firstname"
	FieldLastname  = "lastname"
	FieldAddress   = "address"
	FieldCity      = "city"
	FieldEmail     = "email"

	StockName     = "stockName"
	StockSector   = "stockSector"
	StockIndustry = "stockIndustry"
	StockAddress  = "stockAddress"
	StockLogo     = "logo"

	PortfolioChart = "portfolioChart"
)

// FormFields lists the edit form inputs in display order.
var FormFields = []string{FieldID, FieldFirstname, FieldLastname, FieldAddress, FieldCity, FieldEmail}

// Attr is a single element attribute. Order is preserved on output.
type Attr struct {
	Key string
	Val string
}

// Element describes a display element to attach to a region.
type Element struct {
	Tag      string
	Text     string
	Attrs    []Attr
	Children []Element
}

// Attr returns the value of key, or "" when absent.
func (e Element) Attr(key string) string {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Document is the display surface the renderer writes to.
type Document interface {
	// ClearRegion removes every child of the region.
	ClearRegion(region string) error
	// Append attaches el as the last child of the region.
	Append(region string, el Element) error
	// SetValue sets the value of a form field.
	SetValue(field, value string) error
	// Value returns the currently rendered value of a form field.
	Value(field string) (string, error)
	// SetText replaces the text content of an element.
	SetText(id, text string) error
	// SetAttr sets one attribute of an element.
	SetAttr(id, key, value string) error
}
