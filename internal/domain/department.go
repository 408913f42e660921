package domain

// Department 部门（department_name NOT NULL）
type Department struct {
	ID             int64  `json:"id,omitempty" db:"id"`
	DepartmentName string `json:"departmentName" db:"department_name" validate:"required"`
	Location       *Ref   `json:"location" db:"location_id"`
}

func (d Department) EntityID() int64 { return d.ID }

func (d Department) WithID(id int64) Department { d.ID = id; return d }
