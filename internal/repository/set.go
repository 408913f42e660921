package repository

import (
	"database/sql"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

// Set 所有实体的 Repository
type Set struct {
	Regions      EntityRepository[domain.Region]
	Countries    EntityRepository[domain.Country]
	Locations    EntityRepository[domain.Location]
	Departments  EntityRepository[domain.Department]
	Tasks        EntityRepository[domain.Task]
	Employees    EntityRepository[domain.Employee]
	Jobs         EntityRepository[domain.Job]
	JobHistories EntityRepository[domain.JobHistory]
	Users        EntityRepository[domain.User]
	Authorities  AuthorityRepository
}

func NewPostgresSet(db *sql.DB) *Set {
	return &Set{
		Regions:      NewPostgresRepo(db, RegionTable),
		Countries:    NewPostgresRepo(db, CountryTable),
		Locations:    NewPostgresRepo(db, LocationTable),
		Departments:  NewPostgresRepo(db, DepartmentTable),
		Tasks:        NewPostgresRepo(db, TaskTable),
		Employees:    NewPostgresRepo(db, EmployeeTable),
		Jobs:         NewPostgresRepo(db, JobTable),
		JobHistories: NewPostgresRepo(db, JobHistoryTable),
		Users:        NewPostgresRepo(db, UserTable),
		Authorities:  NewPostgresAuthorityRepository(db),
	}
}

func NewMemorySet() *Set {
	return &Set{
		Regions:      NewMemoryRepo[domain.Region]("region"),
		Countries:    NewMemoryRepo[domain.Country]("country"),
		Locations:    NewMemoryRepo[domain.Location]("location"),
		Departments:  NewMemoryRepo[domain.Department]("department"),
		Tasks:        NewMemoryRepo[domain.Task]("task"),
		Employees:    NewMemoryRepo[domain.Employee]("employee"),
		Jobs:         NewMemoryRepo[domain.Job]("job"),
		JobHistories: NewMemoryRepo[domain.JobHistory]("jobHistory"),
		Users:        NewMemoryRepo[domain.User]("user").WithUnique(userLoginKey),
		Authorities:  NewMemoryAuthorityRepo(),
	}
}
