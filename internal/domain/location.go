package domain

// Location 办公地点
type Location struct {
	ID            int64  `json:"id,omitempty" db:"id"`
	StreetAddress string `json:"streetAddress" db:"street_address"`
	PostalCode    string `json:"postalCode" db:"postal_code"`
	City          string `json:"city" db:"city"`
	StateProvince string `json:"stateProvince" db:"state_province"`
	Country       *Ref   `json:"country" db:"country_id"`
}

func (l Location) EntityID() int64 { return l.ID }

func (l Location) WithID(id int64) Location { l.ID = id; return l }
