package view

import (
	"strconv"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

func RegionBinding() FormBinding[domain.Region] {
	return FormBinding[domain.Region]{
		Fields: []Field{{Name: "regionName", Label: "Region Name", Kind: FieldText}},
		ToValues: func(v domain.Region, w *FormWriter) {
			w.Str("regionName", v.RegionName)
		},
		Apply: func(b domain.Region, r *FormReader) domain.Region {
			b.RegionName = r.Str("regionName", b.RegionName)
			return b
		},
	}
}

func CountryBinding(c *client.Client) FormBinding[domain.Country] {
	return FormBinding[domain.Country]{
		Fields: []Field{
			{Name: "countryName", Label: "Country Name", Kind: FieldText},
			{Name: "regionId", Label: "Region", Kind: FieldRelation},
		},
		Relations: []Relation{
			{Field: "regionId", Load: OptionsFrom(client.Regions(c), nil)},
		},
		ToValues: func(v domain.Country, w *FormWriter) {
			w.Str("countryName", v.CountryName)
			w.Ref("regionId", v.Region)
		},
		Apply: func(b domain.Country, r *FormReader) domain.Country {
			b.CountryName = r.Str("countryName", b.CountryName)
			b.Region = r.Ref("regionId", b.Region)
			return b
		},
	}
}

func LocationBinding(c *client.Client) FormBinding[domain.Location] {
	return FormBinding[domain.Location]{
		Fields: []Field{
			{Name: "streetAddress", Label: "Street Address", Kind: FieldText},
			{Name: "postalCode", Label: "Postal Code", Kind: FieldText},
			{Name: "city", Label: "City", Kind: FieldText},
			{Name: "stateProvince", Label: "State Province", Kind: FieldText},
			{Name: "countryId", Label: "Country", Kind: FieldRelation},
		},
		Relations: []Relation{
			{Field: "countryId", Load: OptionsFrom(client.Countries(c), nil)},
		},
		ToValues: func(v domain.Location, w *FormWriter) {
			w.Str("streetAddress", v.StreetAddress)
			w.Str("postalCode", v.PostalCode)
			w.Str("city", v.City)
			w.Str("stateProvince", v.StateProvince)
			w.Ref("countryId", v.Country)
		},
		Apply: func(b domain.Location, r *FormReader) domain.Location {
			b.StreetAddress = r.Str("streetAddress", b.StreetAddress)
			b.PostalCode = r.Str("postalCode", b.PostalCode)
			b.City = r.Str("city", b.City)
			b.StateProvince = r.Str("stateProvince", b.StateProvince)
			b.Country = r.Ref("countryId", b.Country)
			return b
		},
	}
}

func DepartmentBinding(c *client.Client) FormBinding[domain.Department] {
	return FormBinding[domain.Department]{
		Fields: []Field{
			{Name: "departmentName", Label: "Department Name", Kind: FieldText, Required: true},
			{Name: "locationId", Label: "Location", Kind: FieldRelation},
		},
		Relations: []Relation{
			{Field: "locationId", Load: OptionsFrom(client.Locations(c), nil)},
		},
		ToValues: func(v domain.Department, w *FormWriter) {
			w.Str("departmentName", v.DepartmentName)
			w.Ref("locationId", v.Location)
		},
		Apply: func(b domain.Department, r *FormReader) domain.Department {
			b.DepartmentName = r.Str("departmentName", b.DepartmentName)
			b.Location = r.Ref("locationId", b.Location)
			return b
		},
	}
}

func TaskBinding() FormBinding[domain.Task] {
	return FormBinding[domain.Task]{
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: FieldText},
			{Name: "description", Label: "Description", Kind: FieldText},
		},
		ToValues: func(v domain.Task, w *FormWriter) {
			w.Str("title", v.Title)
			w.Str("description", v.Description)
		},
		Apply: func(b domain.Task, r *FormReader) domain.Task {
			b.Title = r.Str("title", b.Title)
			b.Description = r.Str("description", b.Description)
			return b
		},
	}
}

func EmployeeBinding(c *client.Client) FormBinding[domain.Employee] {
	return FormBinding[domain.Employee]{
		Fields: []Field{
			{Name: "firstName", Label: "First Name", Kind: FieldText},
			{Name: "lastName", Label: "Last Name", Kind: FieldText},
			{Name: "email", Label: "Email", Kind: FieldText},
			{Name: "phoneNumber", Label: "Phone Number", Kind: FieldText},
			{Name: "hireDate", Label: "Hire Date", Kind: FieldDateTime},
			{Name: "salary", Label: "Salary", Kind: FieldNumber},
			{Name: "commissionPct", Label: "Commission Pct", Kind: FieldNumber},
			{Name: "managerId", Label: "Manager", Kind: FieldRelation},
			{Name: "departmentId", Label: "Department", Kind: FieldRelation},
		},
		Relations: []Relation{
			{Field: "managerId", Load: OptionsFrom(client.Employees(c), nil)},
			{Field: "departmentId", Load: OptionsFrom(client.Departments(c), nil)},
		},
		ToValues: func(v domain.Employee, w *FormWriter) {
			w.Str("firstName", v.FirstName)
			w.Str("lastName", v.LastName)
			w.Str("email", v.Email)
			w.Str("phoneNumber", v.PhoneNumber)
			w.Time("hireDate", v.HireDate)
			w.Int("salary", v.Salary)
			w.Int("commissionPct", v.CommissionPct)
			w.Ref("managerId", v.Manager)
			w.Ref("departmentId", v.Department)
		},
		Apply: func(b domain.Employee, r *FormReader) domain.Employee {
			b.FirstName = r.Str("firstName", b.FirstName)
			b.LastName = r.Str("lastName", b.LastName)
			b.Email = r.Str("email", b.Email)
			b.PhoneNumber = r.Str("phoneNumber", b.PhoneNumber)
			b.HireDate = r.Time("hireDate", b.HireDate)
			b.Salary = r.Int("salary", b.Salary)
			b.CommissionPct = r.Int("commissionPct", b.CommissionPct)
			b.Manager = r.Ref("managerId", b.Manager)
			b.Department = r.Ref("departmentId", b.Department)
			return b
		},
	}
}

// JobBinding tasks 为多选，选项标签为 task 的 title
func JobBinding(c *client.Client) FormBinding[domain.Job] {
	return FormBinding[domain.Job]{
		Fields: []Field{
			{Name: "jobTitle", Label: "Job Title", Kind: FieldText},
			{Name: "minSalary", Label: "Min Salary", Kind: FieldNumber},
			{Name: "maxSalary", Label: "Max Salary", Kind: FieldNumber},
			{Name: "tasks", Label: "Task", Kind: FieldMultiRelation},
			{Name: "employeeId", Label: "Employee", Kind: FieldRelation},
		},
		Relations: []Relation{
			{Field: "tasks", Multi: true, Load: OptionsFrom(client.Tasks(c), func(t domain.Task) string { return t.Title })},
			{Field: "employeeId", Load: OptionsFrom(client.Employees(c), nil)},
		},
		ToValues: func(v domain.Job, w *FormWriter) {
			w.Str("jobTitle", v.JobTitle)
			w.Int("minSalary", v.MinSalary)
			w.Int("maxSalary", v.MaxSalary)
			ids := make([]string, len(v.Tasks))
			for i, t := range v.Tasks {
				ids[i] = strconv.FormatInt(t.ID, 10)
			}
			w.List("tasks", ids)
			w.Ref("employeeId", v.Employee)
		},
		Apply: func(b domain.Job, r *FormReader) domain.Job {
			b.JobTitle = r.Str("jobTitle", b.JobTitle)
			b.MinSalary = r.Int("minSalary", b.MinSalary)
			b.MaxSalary = r.Int("maxSalary", b.MaxSalary)
			if sel, ok := r.Selected("tasks"); ok {
				b.Tasks = make([]domain.TaskRef, 0, len(sel))
				for _, o := range sel {
					id, err := strconv.ParseInt(o.Value, 10, 64)
					if err != nil {
						continue
					}
					b.Tasks = append(b.Tasks, domain.TaskRef{ID: id, Title: o.Label})
				}
			}
			b.Employee = r.Ref("employeeId", b.Employee)
			return b
		},
	}
}

// JobHistoryBinding 新建时 language 默认 FRENCH
func JobHistoryBinding(c *client.Client) FormBinding[domain.JobHistory] {
	langs := make([]string, len(domain.Languages))
	for i, l := range domain.Languages {
		langs[i] = string(l)
	}
	return FormBinding[domain.JobHistory]{
		Fields: []Field{
			{Name: "startDate", Label: "Start Date", Kind: FieldDateTime},
			{Name: "endDate", Label: "End Date", Kind: FieldDateTime},
			{Name: "language", Label: "Language", Kind: FieldSelect, Choices: langs},
			{Name: "jobId", Label: "Job", Kind: FieldRelation},
			{Name: "departmentId", Label: "Department", Kind: FieldRelation},
			{Name: "employeeId", Label: "Employee", Kind: FieldRelation},
		},
		Relations: []Relation{
			{Field: "jobId", Load: OptionsFrom(client.Jobs(c), nil)},
			{Field: "departmentId", Load: OptionsFrom(client.Departments(c), nil)},
			{Field: "employeeId", Load: OptionsFrom(client.Employees(c), nil)},
		},
		Defaults: Values{"language": string(domain.LanguageFrench)},
		ToValues: func(v domain.JobHistory, w *FormWriter) {
			w.Time("startDate", v.StartDate)
			w.Time("endDate", v.EndDate)
			w.Str("language", string(v.Language))
			w.Ref("jobId", v.Job)
			w.Ref("departmentId", v.Department)
			w.Ref("employeeId", v.Employee)
		},
		Apply: func(b domain.JobHistory, r *FormReader) domain.JobHistory {
			b.StartDate = r.Time("startDate", b.StartDate)
			b.EndDate = r.Time("endDate", b.EndDate)
			b.Language = domain.Language(r.Str("language", string(b.Language)))
			b.Job = r.Ref("jobId", b.Job)
			b.Department = r.Ref("departmentId", b.Department)
			b.Employee = r.Ref("employeeId", b.Employee)
			return b
		},
	}
}

// UserBinding authorities 按名称多选
func UserBinding(c *client.Client) FormBinding[domain.User] {
	return FormBinding[domain.User]{
		Fields: []Field{
			{Name: "login", Label: "Login", Kind: FieldText, Required: true},
			{Name: "firstName", Label: "First Name", Kind: FieldText},
			{Name: "lastName", Label: "Last Name", Kind: FieldText},
			{Name: "email", Label: "Email", Kind: FieldText},
			{Name: "activated", Label: "Activated", Kind: FieldCheckbox},
			{Name: "langKey", Label: "Language", Kind: FieldText},
			{Name: "authorities", Label: "Profiles", Kind: FieldMultiRelation},
		},
		Relations: []Relation{
			{Field: "authorities", Multi: true, Load: OptionsFrom(client.Authorities(c), nil)},
		},
		Defaults: Values{"activated": "true", "langKey": "en"},
		ToValues: func(v domain.User, w *FormWriter) {
			w.Str("login", v.Login)
			w.Str("firstName", v.FirstName)
			w.Str("lastName", v.LastName)
			w.Str("email", v.Email)
			w.Bool("activated", v.Activated)
			w.Str("langKey", v.LangKey)
			w.List("authorities", v.Authorities)
		},
		Apply: func(b domain.User, r *FormReader) domain.User {
			b.Login = r.Str("login", b.Login)
			b.FirstName = r.Str("firstName", b.FirstName)
			b.LastName = r.Str("lastName", b.LastName)
			b.Email = r.Str("email", b.Email)
			b.Activated = r.Bool("activated", b.Activated)
			b.LangKey = r.Str("langKey", b.LangKey)
			if sel, ok := r.Selected("authorities"); ok {
				b.Authorities = make([]string, len(sel))
				for i, o := range sel {
					b.Authorities[i] = o.Value
				}
			}
			return b
		},
	}
}

func AuthorityBinding() FormBinding[domain.Authority] {
	return FormBinding[domain.Authority]{
		Fields: []Field{{Name: "name", Label: "Name", Kind: FieldText, Required: true}},
		ToValues: func(v domain.Authority, w *FormWriter) {
			w.Str("name", v.Name)
		},
		Apply: func(b domain.Authority, r *FormReader) domain.Authority {
			b.Name = r.Str("name", b.Name)
			return b
		},
	}
}
