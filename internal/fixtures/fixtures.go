// Package fixtures holds the frozen sample records used by tests and the
// scripted flows. Every accessor builds a fresh value, so callers may
// mutate what they get back.
package fixtures

import (
	"time"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

// Samples 一个实体的四份样例：必填 / 部分 / 完整 / 新建（无 id）
type Samples[T any] struct {
	required func() T
	partial  func() T
	full     func() T
	fresh    func() T
}

func (s Samples[T]) Required() T { return s.required() }
func (s Samples[T]) Partial() T  { return s.partial() }
func (s Samples[T]) Full() T     { return s.full() }
func (s Samples[T]) New() T      { return s.fresh() }

// All returns required, partial and full, in that order.
func (s Samples[T]) All() []T {
	return []T{s.required(), s.partial(), s.full()}
}

func i64(n int64) *int64 { return &n }

func at(s string) *time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	t = t.UTC()
	return &t
}

var Regions = Samples[domain.Region]{
	required: func() domain.Region { return domain.Region{ID: 98305} },
	partial:  func() domain.Region { return domain.Region{ID: 6419, RegionName: "Handcrafted"} },
	full:     func() domain.Region { return domain.Region{ID: 12786, RegionName: "bypassing Money"} },
	fresh:    func() domain.Region { return domain.Region{RegionName: "Bedfordshire Assurance"} },
}

var Countries = Samples[domain.Country]{
	required: func() domain.Country { return domain.Country{ID: 3471} },
	partial:  func() domain.Country { return domain.Country{ID: 45218, CountryName: "Lebanon"} },
	full: func() domain.Country {
		return domain.Country{ID: 80432, CountryName: "Estonia", Region: domain.NewRef(12786)}
	},
	fresh: func() domain.Country { return domain.Country{CountryName: "Portugal"} },
}

var Locations = Samples[domain.Location]{
	required: func() domain.Location { return domain.Location{ID: 51337} },
	partial: func() domain.Location {
		return domain.Location{ID: 27795, PostalCode: "70135-3962", City: "East Lilianeport"}
	},
	full: func() domain.Location {
		return domain.Location{
			ID:            90874,
			StreetAddress: "6 Mayert Ridge",
			PostalCode:    "02563",
			City:          "Lake Kaitlyn",
			StateProvince: "Ohio",
			Country:       domain.NewRef(80432),
		}
	},
	fresh: func() domain.Location {
		return domain.Location{StreetAddress: "919 Gulgowski Plains", City: "Port Rylee"}
	},
}

var Departments = Samples[domain.Department]{
	required: func() domain.Department { return domain.Department{ID: 7262, DepartmentName: "Shoes"} },
	partial:  func() domain.Department { return domain.Department{ID: 14309, DepartmentName: "Tools"} },
	full: func() domain.Department {
		return domain.Department{ID: 30016, DepartmentName: "Electronics", Location: domain.NewRef(90874)}
	},
	fresh: func() domain.Department { return domain.Department{DepartmentName: "Grocery"} },
}

var Tasks = Samples[domain.Task]{
	required: func() domain.Task { return domain.Task{ID: 35046} },
	partial:  func() domain.Task { return domain.Task{ID: 70412, Title: "withdrawal"} },
	full: func() domain.Task {
		return domain.Task{ID: 9921, Title: "Function-based", Description: "Human Chair Tunisia"}
	},
	fresh: func() domain.Task { return domain.Task{Title: "expedite", Description: "Iowa New Architect"} },
}

var Employees = Samples[domain.Employee]{
	required: func() domain.Employee { return domain.Employee{ID: 61877} },
	partial: func() domain.Employee {
		return domain.Employee{ID: 22650, FirstName: "Ottilie", PhoneNumber: "1-360-318-4079", Salary: i64(59231)}
	},
	full: func() domain.Employee {
		return domain.Employee{
			ID:            4189,
			FirstName:     "Marlene",
			LastName:      "Schowalter",
			Email:         "marlene.schowalter@example.com",
			PhoneNumber:   "(702) 555-0187",
			HireDate:      at("2022-01-24T01:23"),
			Salary:        i64(87461),
			CommissionPct: i64(12),
			Manager:       domain.NewRef(22650),
			Department:    domain.NewRef(30016),
		}
	},
	fresh: func() domain.Employee {
		return domain.Employee{FirstName: "Kaylin", LastName: "Kuhn", Email: "kaylin.kuhn@example.com", HireDate: at("2022-01-23T14:02")}
	},
}

var Jobs = Samples[domain.Job]{
	required: func() domain.Job { return domain.Job{ID: 42671} },
	partial:  func() domain.Job { return domain.Job{ID: 1554, JobTitle: "Lead Brand Liaison", MaxSalary: i64(26000)} },
	full: func() domain.Job {
		return domain.Job{
			ID:        31130,
			JobTitle:  "Legacy Creative Producer",
			MinSalary: i64(25140),
			MaxSalary: i64(96542),
			Tasks:     []domain.TaskRef{{ID: 9921, Title: "Function-based"}},
			Employee:  domain.NewRef(4189),
		}
	},
	fresh: func() domain.Job {
		return domain.Job{JobTitle: "Corporate Markets Director", MinSalary: i64(42138), MaxSalary: i64(82698)}
	},
}

var JobHistories = Samples[domain.JobHistory]{
	required: func() domain.JobHistory { return domain.JobHistory{ID: 24038} },
	partial: func() domain.JobHistory {
		return domain.JobHistory{ID: 50960, EndDate: at("2022-01-24T09:52"), Language: domain.LanguageSpanish}
	},
	full: func() domain.JobHistory {
		return domain.JobHistory{
			ID:         11746,
			StartDate:  at("2022-01-23T22:07"),
			EndDate:    at("2022-01-24T06:35"),
			Language:   domain.LanguageEnglish,
			Job:        domain.NewRef(31130),
			Department: domain.NewRef(30016),
			Employee:   domain.NewRef(4189),
		}
	},
	fresh: func() domain.JobHistory {
		return domain.JobHistory{StartDate: at("2022-01-24T05:11"), Language: domain.LanguageFrench}
	},
}

var Users = Samples[domain.User]{
	required: func() domain.User { return domain.User{ID: 24813, Login: `tM@NF3p\AgLjJ9\ik`} },
	partial:  func() domain.User { return domain.User{ID: 23611, Login: "hZCm0N@pDp7n"} },
	full:     func() domain.User { return domain.User{ID: 25883, Login: `0~*@DqD\(nVmsL\tt90\J31ogDX`} },
	fresh: func() domain.User {
		return domain.User{Login: "kelli.gleason", Email: "kelli.gleason@example.com", Activated: true, LangKey: "en"}
	},
}

// Authorities 以 name 为键；New 的 name 为空，与"新建尚未命名"一致
var Authorities = Samples[domain.Authority]{
	required: func() domain.Authority { return domain.Authority{Name: "ebe493c7-e0e0-4be5-99c3-eb92e48697d0"} },
	partial:  func() domain.Authority { return domain.Authority{Name: "2451657b-ac80-4bc4-925b-df36605698ad"} },
	full:     func() domain.Authority { return domain.Authority{Name: "e8d3881d-2520-472d-9c42-6cb063c6bb74"} },
	fresh:    func() domain.Authority { return domain.Authority{} },
}
