package domain

// Region 区域
type Region struct {
	ID         int64  `json:"id,omitempty" db:"id"`
	RegionName string `json:"regionName" db:"region_name"`
}

func (r Region) EntityID() int64 { return r.ID }

func (r Region) WithID(id int64) Region { r.ID = id; return r }
