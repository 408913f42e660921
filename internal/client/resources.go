package client

import "github.com/tuannt39-study/jhipster-sample/internal/domain"

func idOf[T domain.Entity[T]](v T) int64 { return v.EntityID() }

func Regions(c *Client) *Reducer[domain.Region, int64] {
	return NewReducer(c, "regions", idOf[domain.Region], true)
}

func Countries(c *Client) *Reducer[domain.Country, int64] {
	return NewReducer(c, "countries", idOf[domain.Country], true)
}

func Locations(c *Client) *Reducer[domain.Location, int64] {
	return NewReducer(c, "locations", idOf[domain.Location], true)
}

func Departments(c *Client) *Reducer[domain.Department, int64] {
	return NewReducer(c, "departments", idOf[domain.Department], true)
}

func Tasks(c *Client) *Reducer[domain.Task, int64] {
	return NewReducer(c, "tasks", idOf[domain.Task], true)
}

func Employees(c *Client) *Reducer[domain.Employee, int64] {
	return NewReducer(c, "employees", idOf[domain.Employee], true)
}

func Jobs(c *Client) *Reducer[domain.Job, int64] {
	return NewReducer(c, "jobs", idOf[domain.Job], true)
}

func JobHistories(c *Client) *Reducer[domain.JobHistory, int64] {
	return NewReducer(c, "job-histories", idOf[domain.JobHistory], true)
}

func Users(c *Client) *Reducer[domain.User, int64] {
	return NewReducer(c, "users", idOf[domain.User], true)
}

// Authorities 以 name 为键，不可检索
func Authorities(c *Client) *Reducer[domain.Authority, string] {
	return NewReducer(c, "authorities", func(a domain.Authority) string { return a.Name }, false)
}
