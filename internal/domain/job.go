package domain

// Job 职位；tasks 为多对多（rel_job__task）
type Job struct {
	ID        int64     `json:"id,omitempty" db:"id"`
	JobTitle  string    `json:"jobTitle" db:"job_title"`
	MinSalary *int64    `json:"minSalary" db:"min_salary"`
	MaxSalary *int64    `json:"maxSalary" db:"max_salary"`
	Tasks     []TaskRef `json:"tasks"`
	Employee  *Ref      `json:"employee" db:"employee_id"`
}

func (j Job) EntityID() int64 { return j.ID }

func (j Job) WithID(id int64) Job { j.ID = id; return j }
