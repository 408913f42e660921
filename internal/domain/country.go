package domain

// Country 国家，归属一个 Region
type Country struct {
	ID          int64  `json:"id,omitempty" db:"id"`
	CountryName string `json:"countryName" db:"country_name"`
	Region      *Ref   `json:"region" db:"region_id"`
}

func (c Country) EntityID() int64 { return c.ID }

func (c Country) WithID(id int64) Country { c.ID = id; return c }
