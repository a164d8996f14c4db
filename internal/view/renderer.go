package view

import (
	"net/url"
	"strconv"

	"github.com/bobmcallan/portdash/internal/models"
)

// Portfolio table header labels.
var portfolioHeader = []string{"Symbol", "# Shares", "Actions"}

// Renderer writes the four dashboard views to a Document. It only reads
// the values it is handed; callers own the state.
type Renderer struct {
	doc Document
}

// NewRenderer creates a renderer over doc.
func NewRenderer(doc Document) *Renderer {
	return &Renderer{doc: doc}
}

// RenderUserList rebuilds the user list: one entry per user in collection
// order, labelled "lastname, firstname" and tagged with the user's id.
func (r *Renderer) RenderUserList(users []*models.User) error {
	if err := r.doc.ClearRegion(RegionUserList); err != nil {
		return err
	}
	for _, u := range users {
		id := u.ID.String()
		entry := Element{
			Tag:   "li",
			Attrs: []Attr{{Key: "data-user-id", Val: id}},
			Children: []Element{{
				Tag: "button",
				Attrs: []Attr{
					{Key: "type", Val: "submit"},
					{Key: "name", Val: "target"},
					{Key: "value", Val: id},
				},
				Text: u.DisplayName(),
			}},
		}
		if err := r.doc.Append(RegionUserList, entry); err != nil {
			return err
		}
	}
	return nil
}

// RenderForm writes all six form fields; a nil user blanks them.
func (r *Renderer) RenderForm(u *models.User) error {
	values := make(map[string]string, len(FormFields))
	if u != nil {
		values[FieldID] = u.ID.String()
		values[FieldFirstname] = u.Profile.Firstname
		values[FieldLastname] = u.Profile.Lastname
		values[FieldAddress] = u.Profile.Address
		values[FieldCity] = u.Profile.City
		values[FieldEmail] = u.Profile.Email
	}
	for _, f := range FormFields {
		if err := r.doc.SetValue(f, values[f]); err != nil {
			return err
		}
	}
	return nil
}

// RenderPortfolio rebuilds the portfolio table: a header row, then one row
// per holding with a View action tagged with the symbol. A nil user or an
// empty portfolio leaves only the header.
func (r *Renderer) RenderPortfolio(u *models.User) error {
	if err := r.doc.ClearRegion(RegionPortfolio); err != nil {
		return err
	}

	header := Element{
		Tag:   "div",
		Attrs: []Attr{{Key: "class", Val: "portfolio-row portfolio-header"}},
	}
	for _, label := range portfolioHeader {
		header.Children = append(header.Children, Element{Tag: "h3", Text: label})
	}
	if err := r.doc.Append(RegionPortfolio, header); err != nil {
		return err
	}

	chart := ""
	if u != nil {
		for _, e := range u.Portfolio {
			row := Element{
				Tag: "div",
				Attrs: []Attr{
					{Key: "class", Val: "portfolio-row"},
					{Key: "data-symbol", Val: e.Symbol},
				},
				Children: []Element{
					{Tag: "p", Text: e.Symbol},
					{Tag: "p", Text: strconv.Itoa(e.Owned)},
					{
						Tag: "button",
						Attrs: []Attr{
							{Key: "type", Val: "submit"},
							{Key: "name", Val: "target"},
							{Key: "value", Val: e.Symbol},
						},
						Text: "View",
					},
				},
			}
			if err := r.doc.Append(RegionPortfolio, row); err != nil {
				return err
			}
		}
		if len(u.Portfolio) > 0 {
			chart = ChartPath(u.ID)
		}
	}

	return r.doc.SetAttr(PortfolioChart, "src", chart)
}

// RenderStockDetail fills the stock panel; a nil stock blanks it.
func (r *Renderer) RenderStockDetail(s *models.Stock) error {
	var name, sector, industry, address, logo string
	if s != nil {
		name, sector, industry, address = s.Name, s.Sector, s.SubIndustry, s.Address
		logo = s.LogoPath()
	}
	for id, text := range map[string]string{
		StockName:     name,
		StockSector:   sector,
		StockIndustry: industry,
		StockAddress:  address,
	} {
		if err := r.doc.SetText(id, text); err != nil {
			return err
		}
	}
	return r.doc.SetAttr(StockLogo, "src", logo)
}

// ChartPath is the holdings chart URL for a user.
func ChartPath(id models.ID) string {
	return "/charts/portfolio.svg?user=" + url.QueryEscape(id.String())
}
