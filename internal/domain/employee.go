package domain

import "time"

// Employee 员工
type Employee struct {
	ID            int64      `json:"id,omitempty" db:"id"`
	FirstName     string     `json:"firstName" db:"first_name"`
	LastName      string     `json:"lastName" db:"last_name"`
	Email         string     `json:"email" db:"email" validate:"omitempty,email"`
	PhoneNumber   string     `json:"phoneNumber" db:"phone_number"`
	HireDate      *time.Time `json:"hireDate" db:"hire_date"`
	Salary        *int64     `json:"salary" db:"salary"`
	CommissionPct *int64     `json:"commissionPct" db:"commission_pct"`
	Manager       *Ref       `json:"manager" db:"manager_id"`
	Department    *Ref       `json:"department" db:"department_id"`
}

func (e Employee) EntityID() int64 { return e.ID }

func (e Employee) WithID(id int64) Employee { e.ID = id; return e }
