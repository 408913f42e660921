package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"

	"github.com/lib/pq"
)

var RegionTable = Table[domain.Region]{
	Name:    "region",
	Entity:  "region",
	Columns: []string{"region_name"},
	Values: func(v domain.Region) []any {
		return []any{nullString(v.RegionName)}
	},
	Scan: func(scan func(dest ...any) error) (domain.Region, error) {
		var v domain.Region
		var name sql.NullString
		err := scan(&v.ID, &name)
		v.RegionName = name.String
		return v, err
	},
	Sortable: map[string]string{"id": "id", "regionName": "region_name"},
}

var CountryTable = Table[domain.Country]{
	Name:    "country",
	Entity:  "country",
	Columns: []string{"country_name", "region_id"},
	Values: func(v domain.Country) []any {
		return []any{nullString(v.CountryName), nullRef(v.Region)}
	},
	Scan: func(scan func(dest ...any) error) (domain.Country, error) {
		var v domain.Country
		var name sql.NullString
		var region sql.NullInt64
		err := scan(&v.ID, &name, &region)
		v.CountryName = name.String
		v.Region = refFrom(region)
		return v, err
	},
	Sortable: map[string]string{"id": "id", "countryName": "country_name"},
}

var LocationTable = Table[domain.Location]{
	Name:    "location",
	Entity:  "location",
	Columns: []string{"street_address", "postal_code", "city", "state_province", "country_id"},
	Values: func(v domain.Location) []any {
		return []any{
			nullString(v.StreetAddress),
			nullString(v.PostalCode),
			nullString(v.City),
			nullString(v.StateProvince),
			nullRef(v.Country),
		}
	},
	Scan: func(scan func(dest ...any) error) (domain.Location, error) {
		var v domain.Location
		var street, postal, city, state sql.NullString
		var country sql.NullInt64
		err := scan(&v.ID, &street, &postal, &city, &state, &country)
		v.StreetAddress = street.String
		v.PostalCode = postal.String
		v.City = city.String
		v.StateProvince = state.String
		v.Country = refFrom(country)
		return v, err
	},
	Sortable: map[string]string{
		"id":            "id",
		"streetAddress": "street_address",
		"postalCode":    "postal_code",
		"city":          "city",
		"stateProvince": "state_province",
	},
}

var DepartmentTable = Table[domain.Department]{
	Name:    "department",
	Entity:  "department",
	Columns: []string{"department_name", "location_id"},
	Values: func(v domain.Department) []any {
		return []any{v.DepartmentName, nullRef(v.Location)}
	},
	Scan: func(scan func(dest ...any) error) (domain.Department, error) {
		var v domain.Department
		var location sql.NullInt64
		err := scan(&v.ID, &v.DepartmentName, &location)
		v.Location = refFrom(location)
		return v, err
	},
	Sortable: map[string]string{"id": "id", "departmentName": "department_name"},
}

var TaskTable = Table[domain.Task]{
	Name:    "task",
	Entity:  "task",
	Columns: []string{"title", "description"},
	Values: func(v domain.Task) []any {
		return []any{nullString(v.Title), nullString(v.Description)}
	},
	Scan: func(scan func(dest ...any) error) (domain.Task, error) {
		var v domain.Task
		var title, desc sql.NullString
		err := scan(&v.ID, &title, &desc)
		v.Title = title.String
		v.Description = desc.String
		return v, err
	},
	Sortable: map[string]string{"id": "id", "title": "title", "description": "description"},
}

var EmployeeTable = Table[domain.Employee]{
	Name:   "employee",
	Entity: "employee",
	Columns: []string{
		"first_name", "last_name", "email", "phone_number", "hire_date",
		"salary", "commission_pct", "manager_id", "department_id",
	},
	Values: func(v domain.Employee) []any {
		return []any{
			nullString(v.FirstName),
			nullString(v.LastName),
			nullString(v.Email),
			nullString(v.PhoneNumber),
			nullTime(v.HireDate),
			nullInt(v.Salary),
			nullInt(v.CommissionPct),
			nullRef(v.Manager),
			nullRef(v.Department),
		}
	},
	Scan: func(scan func(dest ...any) error) (domain.Employee, error) {
		var v domain.Employee
		var first, last, email, phone sql.NullString
		var hire sql.NullTime
		var salary, pct, manager, dept sql.NullInt64
		err := scan(&v.ID, &first, &last, &email, &phone, &hire, &salary, &pct, &manager, &dept)
		v.FirstName = first.String
		v.LastName = last.String
		v.Email = email.String
		v.PhoneNumber = phone.String
		v.HireDate = timePtr(hire)
		v.Salary = intPtr(salary)
		v.CommissionPct = intPtr(pct)
		v.Manager = refFrom(manager)
		v.Department = refFrom(dept)
		return v, err
	},
	Sortable: map[string]string{
		"id":            "id",
		"firstName":     "first_name",
		"lastName":      "last_name",
		"email":         "email",
		"phoneNumber":   "phone_number",
		"hireDate":      "hire_date",
		"salary":        "salary",
		"commissionPct": "commission_pct",
	},
}

var JobTable = Table[domain.Job]{
	Name:    "job",
	Entity:  "job",
	Columns: []string{"job_title", "min_salary", "max_salary", "employee_id"},
	Values: func(v domain.Job) []any {
		return []any{nullString(v.JobTitle), nullInt(v.MinSalary), nullInt(v.MaxSalary), nullRef(v.Employee)}
	},
	Scan: func(scan func(dest ...any) error) (domain.Job, error) {
		var v domain.Job
		var title sql.NullString
		var minS, maxS, employee sql.NullInt64
		err := scan(&v.ID, &title, &minS, &maxS, &employee)
		v.JobTitle = title.String
		v.MinSalary = intPtr(minS)
		v.MaxSalary = intPtr(maxS)
		v.Employee = refFrom(employee)
		v.Tasks = []domain.TaskRef{}
		return v, err
	},
	Sortable: map[string]string{
		"id":        "id",
		"jobTitle":  "job_title",
		"minSalary": "min_salary",
		"maxSalary": "max_salary",
	},
	SaveRelations: saveJobTasks,
	LoadRelations: loadJobTasks,
}

var JobHistoryTable = Table[domain.JobHistory]{
	Name:    "job_history",
	Entity:  "jobHistory",
	Columns: []string{"start_date", "end_date", "language", "job_id", "department_id", "employee_id"},
	Values: func(v domain.JobHistory) []any {
		return []any{
			nullTime(v.StartDate),
			nullTime(v.EndDate),
			nullString(string(v.Language)),
			nullRef(v.Job),
			nullRef(v.Department),
			nullRef(v.Employee),
		}
	},
	Scan: func(scan func(dest ...any) error) (domain.JobHistory, error) {
		var v domain.JobHistory
		var start, end sql.NullTime
		var lang sql.NullString
		var job, dept, employee sql.NullInt64
		err := scan(&v.ID, &start, &end, &lang, &job, &dept, &employee)
		v.StartDate = timePtr(start)
		v.EndDate = timePtr(end)
		v.Language = domain.Language(lang.String)
		v.Job = refFrom(job)
		v.Department = refFrom(dept)
		v.Employee = refFrom(employee)
		return v, err
	},
	Sortable: map[string]string{
		"id":        "id",
		"startDate": "start_date",
		"endDate":   "end_date",
		"language":  "language",
	},
}

var userLoginKey = UniqueKey[domain.User]{
	ErrorKey: "userexists",
	Message:  "Login name already used!",
	Value:    func(u domain.User) string { return u.Login },
}

var UserTable = Table[domain.User]{
	Name:    "hr_user",
	Entity:  "user",
	Columns: []string{"login", "first_name", "last_name", "email", "activated", "lang_key"},
	Values: func(v domain.User) []any {
		return []any{
			v.Login,
			nullString(v.FirstName),
			nullString(v.LastName),
			nullString(v.Email),
			v.Activated,
			nullString(v.LangKey),
		}
	},
	Scan: func(scan func(dest ...any) error) (domain.User, error) {
		var v domain.User
		var first, last, email, lang sql.NullString
		err := scan(&v.ID, &v.Login, &first, &last, &email, &v.Activated, &lang)
		v.FirstName = first.String
		v.LastName = last.String
		v.Email = email.String
		v.LangKey = lang.String
		v.Authorities = []string{}
		return v, err
	},
	Sortable: map[string]string{
		"id":        "id",
		"login":     "login",
		"firstName": "first_name",
		"lastName":  "last_name",
		"email":     "email",
		"activated": "activated",
		"langKey":   "lang_key",
	},
	Unique:        map[string]UniqueKey[domain.User]{"hr_user_login_key": userLoginKey},
	SaveRelations: saveUserAuthorities,
	LoadRelations: loadUserAuthorities,
}

// ---- Job <-> Task (rel_job__task) ----

func saveJobTasks(ctx context.Context, tx execer, v domain.Job) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM rel_job__task WHERE job_id = $1`, v.ID); err != nil {
		return fmt.Errorf("failed to clear job tasks: %w", err)
	}
	for _, t := range v.Tasks {
		if t.ID == 0 {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rel_job__task (job_id, task_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, v.ID, t.ID)
		if err != nil {
			return fmt.Errorf("failed to link task %d to job %d: %w", t.ID, v.ID, err)
		}
	}
	return nil
}

func loadJobTasks(ctx context.Context, q queryer, items []domain.Job) error {
	idx := make(map[int64]int, len(items))
	ids := make([]int64, len(items))
	for i, j := range items {
		idx[j.ID] = i
		ids[i] = j.ID
	}

	rows, err := q.QueryContext(ctx, `
		SELECT r.job_id, t.id, t.title
		FROM rel_job__task r
		JOIN task t ON t.id = r.task_id
		WHERE r.job_id = ANY($1)
		ORDER BY r.job_id, t.id`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query job tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var jobID int64
		var t domain.TaskRef
		var title sql.NullString
		if err := rows.Scan(&jobID, &t.ID, &title); err != nil {
			return fmt.Errorf("failed to scan job task: %w", err)
		}
		t.Title = title.String
		if i, ok := idx[jobID]; ok {
			items[i].Tasks = append(items[i].Tasks, t)
		}
	}
	return rows.Err()
}

// ---- User <-> Authority (hr_user_authority) ----

func saveUserAuthorities(ctx context.Context, tx execer, v domain.User) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM hr_user_authority WHERE user_id = $1`, v.ID); err != nil {
		return fmt.Errorf("failed to clear user authorities: %w", err)
	}
	for _, name := range v.Authorities {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO hr_user_authority (user_id, authority_name) VALUES ($1, $2) ON CONFLICT DO NOTHING`, v.ID, name)
		if err != nil {
			return fmt.Errorf("failed to grant %s to user %d: %w", name, v.ID, err)
		}
	}
	return nil
}

func loadUserAuthorities(ctx context.Context, q queryer, items []domain.User) error {
	idx := make(map[int64]int, len(items))
	ids := make([]int64, len(items))
	for i, u := range items {
		idx[u.ID] = i
		ids[i] = u.ID
	}

	rows, err := q.QueryContext(ctx, `
		SELECT user_id, authority_name
		FROM hr_user_authority
		WHERE user_id = ANY($1)
		ORDER BY user_id, authority_name`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query user authorities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var name string
		if err := rows.Scan(&userID, &name); err != nil {
			return fmt.Errorf("failed to scan user authority: %w", err)
		}
		if i, ok := idx[userID]; ok {
			items[i].Authorities = append(items[i].Authorities, name)
		}
	}
	return rows.Err()
}
