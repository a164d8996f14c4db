package models

// Profile holds the editable fields of a user.
type Profile struct {
	Firstname string `json:"firstname" yaml:"firstname"`
	Lastname  string `json:"lastname" yaml:"lastname"`
	Address   string `json:"address" yaml:"address"`
	City      string `json:"city" yaml:"city"`
	Email     string `json:"email" yaml:"email"`
}

// User is one entry of the user collection.
type User struct {
	ID        ID               `json:"id" yaml:"id"`
	Profile   Profile          `json:"user" yaml:"user"`
	Portfolio []PortfolioEntry `json:"portfolio" yaml:"portfolio"`
}

// DisplayName is the user list label, "lastname, firstname".
func (u *User) DisplayName() string {
	return u.Profile.Lastname + ", " + u.Profile.Firstname
}

// Clone returns a deep copy so readers never alias store state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Portfolio != nil {
		c.Portfolio = make([]PortfolioEntry, len(u.Portfolio))
		copy(c.Portfolio, u.Portfolio)
	}
	return &c
}
