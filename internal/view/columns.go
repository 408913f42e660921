package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

// Column 列表/详情页的一列
type Column[T any] struct {
	Header string
	Value  func(v T) string
}

func idText(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func intText(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

func refText(r *domain.Ref) string { return idText(domain.RefID(r)) }

func RegionColumns() []Column[domain.Region] {
	return []Column[domain.Region]{
		{"ID", func(v domain.Region) string { return idText(v.ID) }},
		{"Region Name", func(v domain.Region) string { return v.RegionName }},
	}
}

func CountryColumns() []Column[domain.Country] {
	return []Column[domain.Country]{
		{"ID", func(v domain.Country) string { return idText(v.ID) }},
		{"Country Name", func(v domain.Country) string { return v.CountryName }},
		{"Region", func(v domain.Country) string { return refText(v.Region) }},
	}
}

func LocationColumns() []Column[domain.Location] {
	return []Column[domain.Location]{
		{"ID", func(v domain.Location) string { return idText(v.ID) }},
		{"Street Address", func(v domain.Location) string { return v.StreetAddress }},
		{"Postal Code", func(v domain.Location) string { return v.PostalCode }},
		{"City", func(v domain.Location) string { return v.City }},
		{"State Province", func(v domain.Location) string { return v.StateProvince }},
		{"Country", func(v domain.Location) string { return refText(v.Country) }},
	}
}

func DepartmentColumns() []Column[domain.Department] {
	return []Column[domain.Department]{
		{"ID", func(v domain.Department) string { return idText(v.ID) }},
		{"Department Name", func(v domain.Department) string { return v.DepartmentName }},
		{"Location", func(v domain.Department) string { return refText(v.Location) }},
	}
}

func TaskColumns() []Column[domain.Task] {
	return []Column[domain.Task]{
		{"ID", func(v domain.Task) string { return idText(v.ID) }},
		{"Title", func(v domain.Task) string { return v.Title }},
		{"Description", func(v domain.Task) string { return v.Description }},
	}
}

func EmployeeColumns(loc *time.Location) []Column[domain.Employee] {
	return []Column[domain.Employee]{
		{"ID", func(v domain.Employee) string { return idText(v.ID) }},
		{"First Name", func(v domain.Employee) string { return v.FirstName }},
		{"Last Name", func(v domain.Employee) string { return v.LastName }},
		{"Email", func(v domain.Employee) string { return v.Email }},
		{"Phone Number", func(v domain.Employee) string { return v.PhoneNumber }},
		{"Hire Date", func(v domain.Employee) string { return displayDateTime(v.HireDate, loc) }},
		{"Salary", func(v domain.Employee) string { return intText(v.Salary) }},
		{"Commission Pct", func(v domain.Employee) string { return intText(v.CommissionPct) }},
		{"Manager", func(v domain.Employee) string { return refText(v.Manager) }},
		{"Department", func(v domain.Employee) string { return refText(v.Department) }},
	}
}

func JobColumns() []Column[domain.Job] {
	return []Column[domain.Job]{
		{"ID", func(v domain.Job) string { return idText(v.ID) }},
		{"Job Title", func(v domain.Job) string { return v.JobTitle }},
		{"Min Salary", func(v domain.Job) string { return intText(v.MinSalary) }},
		{"Max Salary", func(v domain.Job) string { return intText(v.MaxSalary) }},
		{"Employee", func(v domain.Job) string { return refText(v.Employee) }},
	}
}

// JobDetailColumns 详情页额外展示 tasks
func JobDetailColumns() []Column[domain.Job] {
	cols := JobColumns()
	tasks := Column[domain.Job]{"Task", func(v domain.Job) string {
		names := make([]string, 0, len(v.Tasks))
		for _, t := range v.Tasks {
			if t.Title != "" {
				names = append(names, t.Title)
			} else {
				names = append(names, idText(t.ID))
			}
		}
		return strings.Join(names, ", ")
	}}
	employee := cols[len(cols)-1]
	return append(cols[:len(cols)-1:len(cols)-1], tasks, employee)
}

func JobHistoryColumns(loc *time.Location) []Column[domain.JobHistory] {
	return []Column[domain.JobHistory]{
		{"ID", func(v domain.JobHistory) string { return idText(v.ID) }},
		{"Start Date", func(v domain.JobHistory) string { return displayDateTime(v.StartDate, loc) }},
		{"End Date", func(v domain.JobHistory) string { return displayDateTime(v.EndDate, loc) }},
		{"Language", func(v domain.JobHistory) string { return string(v.Language) }},
		{"Job", func(v domain.JobHistory) string { return refText(v.Job) }},
		{"Department", func(v domain.JobHistory) string { return refText(v.Department) }},
		{"Employee", func(v domain.JobHistory) string { return refText(v.Employee) }},
	}
}

func UserColumns() []Column[domain.User] {
	return []Column[domain.User]{
		{"ID", func(v domain.User) string { return idText(v.ID) }},
		{"Login", func(v domain.User) string { return v.Login }},
		{"Email", func(v domain.User) string { return v.Email }},
		{"Activated", func(v domain.User) string { return strconv.FormatBool(v.Activated) }},
		{"Lang Key", func(v domain.User) string { return v.LangKey }},
		{"Profiles", func(v domain.User) string { return strings.Join(v.Authorities, ", ") }},
	}
}

func AuthorityColumns() []Column[domain.Authority] {
	return []Column[domain.Authority]{
		{"Name", func(v domain.Authority) string { return v.Name }},
	}
}
