package view

import (
	"context"
	"errors"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
	"github.com/tuannt39-study/jhipster-sample/internal/domain"
	httpapi "github.com/tuannt39-study/jhipster-sample/internal/http"
	"github.com/tuannt39-study/jhipster-sample/internal/repository"
	"github.com/tuannt39-study/jhipster-sample/internal/search"
	"github.com/tuannt39-study/jhipster-sample/internal/service"
)

var testLoc = time.FixedZone("UTC+2", 2*60*60)

func newTestCatalog(t *testing.T) (*Catalog, *client.Client) {
	t.Helper()
	svcs := service.NewServices(repository.NewMemorySet(), service.Options{
		Index:  search.NewIndex(),
		Logger: zap.NewNop(),
	})
	srv := httptest.NewServer(httpapi.NewAPI(svcs, zap.NewNop(), nil).Handler())
	t.Cleanup(srv.Close)

	c := client.New(srv.URL, nil)
	now := func() time.Time { return time.Date(2024, 3, 9, 17, 45, 0, 0, testLoc) }
	return NewCatalog(c, Env{Loc: testLoc, Now: now}), c
}

func TestDateTimeConversion(t *testing.T) {
	ts, err := DateTimeToServer("2022-01-24T10:30", testLoc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 1, 24, 8, 30, 0, 0, time.UTC), *ts)
	assert.Equal(t, "2022-01-24T10:30", DateTimeFromServer(ts, testLoc))

	ts, err = DateTimeToServer("", testLoc)
	require.NoError(t, err)
	assert.Nil(t, ts)
	assert.Equal(t, "", DateTimeFromServer(nil, testLoc))

	_, err = DateTimeToServer("24/01/2022", testLoc)
	assert.Error(t, err)

	now := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-10T00:00", DefaultDateTime(now, testLoc))
}

func TestListView_EmptyCollectionRendersNoTable(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Jobs.List.Mount(ctx))
	out := cat.Jobs.List.Render()
	assert.Nil(t, out.Table)
	assert.Equal(t, "No Jobs found", out.Notice)
	assert.Equal(t, "/job", cat.Env.Nav.Path())
	assert.Contains(t, RenderText(out), "No Jobs found")
}

func TestListView_RendersRowsAndSearch(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()
	tasks := cat.Tasks.Reducer

	a, err := tasks.CreateEntity(ctx, domain.Task{Title: "Backup", Description: "nightly"})
	require.NoError(t, err)
	_, err = tasks.CreateEntity(ctx, domain.Task{Title: "Audit"})
	require.NoError(t, err)

	list := cat.Tasks.List
	require.NoError(t, list.Mount(ctx))
	out := list.Render()
	require.NotNil(t, out.Table)
	assert.Equal(t, []string{"ID", "Title", "Description"}, out.Table.Headers)
	require.Len(t, out.Table.Rows, 2)
	row := out.Table.Rows[0]
	assert.Equal(t, strconv.FormatInt(a.ID, 10), row.Key)
	assert.Equal(t, "/task/"+row.Key+"/edit", row.EditLink)
	assert.Equal(t, "/task/"+row.Key+"/delete", row.DeleteLink)
	assert.Equal(t, 2, out.TotalItems)

	require.NoError(t, list.Search(ctx, "id:"+row.Key))
	out = list.Render()
	require.NotNil(t, out.Table)
	require.Len(t, out.Table.Rows, 1)
	assert.Equal(t, "Backup", out.Table.Rows[0].Cells[1])

	require.NoError(t, list.Clear(ctx))
	assert.Len(t, list.Render().Table.Rows, 2)

	text := RenderText(list.Render())
	assert.Contains(t, text, "Backup")
	assert.Contains(t, text, "Showing 2 of 2 items")
}

func TestUpdateForm_NewJobHistoryDefaults(t *testing.T) {
	cat, _ := newTestCatalog(t)
	form := cat.JobHistories.Form

	require.NoError(t, form.OpenNew(context.Background()))
	assert.Equal(t, FormReady, form.State())
	assert.Equal(t, "/job-history/new", cat.Env.Nav.Path())

	vals := form.DefaultValues()
	assert.Equal(t, "FRENCH", vals["language"])
	assert.Equal(t, "2024-03-09T00:00", vals["startDate"])
	assert.Equal(t, "2024-03-09T00:00", vals["endDate"])
}

func TestUpdateForm_SubmitResolvesRelations(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	task, err := cat.Tasks.Reducer.CreateEntity(ctx, domain.Task{Title: "Hiring"})
	require.NoError(t, err)
	emp, err := cat.Employees.Reducer.CreateEntity(ctx, domain.Employee{FirstName: "Ada"})
	require.NoError(t, err)

	form := cat.Jobs.Form
	require.NoError(t, form.OpenNew(ctx))
	require.Len(t, form.Options("tasks"), 1)
	require.Len(t, form.Options("employeeId"), 1)

	taskID := strconv.FormatInt(task.ID, 10)
	saved, err := form.Submit(ctx, Values{
		"jobTitle":   "Corporate Markets Director",
		"minSalary":  "42138",
		"maxSalary":  "82698",
		"tasks":      taskID + ",999",
		"employeeId": strconv.FormatInt(emp.ID, 10),
	})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, FormSuccess, form.State())
	assert.Equal(t, "/job", cat.Env.Nav.Path())
	require.Len(t, saved.Tasks, 1)
	assert.Equal(t, task.ID, saved.Tasks[0].ID)
	assert.Equal(t, emp.ID, domain.RefID(saved.Employee))
	require.NotNil(t, saved.MinSalary)
	assert.Equal(t, int64(42138), *saved.MinSalary)

	// 编辑：未知的关联 id 解析为空
	require.NoError(t, form.OpenEdit(ctx, saved.ID))
	vals := form.DefaultValues()
	assert.Equal(t, strconv.FormatInt(saved.ID, 10), vals["id"])
	assert.Equal(t, "Corporate Markets Director", vals["jobTitle"])
	assert.Equal(t, taskID, vals["tasks"])

	vals["employeeId"] = "424242"
	updated, err := form.Submit(ctx, vals)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Nil(t, updated.Employee)
	assert.Len(t, updated.Tasks, 1)
}

func TestUpdateForm_InvalidNumberSendsNothing(t *testing.T) {
	cat, c := newTestCatalog(t)
	ctx := context.Background()

	form := cat.Jobs.Form
	require.NoError(t, form.OpenNew(ctx))
	before := c.Interceptor().Len()

	_, err := form.Submit(ctx, Values{"jobTitle": "x", "minSalary": "lots"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, before, c.Interceptor().Len())
	assert.Equal(t, FormReady, form.State())
}

func TestUpdateForm_ServerRejectionReturnsToReady(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	form := cat.Departments.Form
	require.NoError(t, form.OpenNew(ctx))
	_, err := form.Submit(ctx, Values{"departmentName": ""})
	require.Error(t, err)
	assert.Equal(t, FormReady, form.State())
	assert.NotEmpty(t, cat.Departments.Reducer.State().ErrorMessage)
	assert.Equal(t, "/department/new", cat.Env.Nav.Path())
}

func TestDetailAndDeleteDialog(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	job, err := cat.Jobs.Reducer.CreateEntity(ctx, domain.Job{JobTitle: "Engineer"})
	require.NoError(t, err)

	_, err = cat.Jobs.Detail.Open(ctx, job.ID)
	require.NoError(t, err)
	fields := cat.Jobs.Detail.Render()
	assert.Equal(t, DetailField{Label: "Job Title", Value: "Engineer"}, fields[1])

	dlg := cat.Jobs.Delete
	assert.ErrorIs(t, dlg.Confirm(ctx), ErrDialogClosed)
	require.NoError(t, dlg.Open(ctx, job.ID))
	assert.Contains(t, dlg.Question(), "Job "+strconv.FormatInt(job.ID, 10))
	require.NoError(t, dlg.Confirm(ctx))
	assert.True(t, cat.Jobs.Reducer.State().UpdateSuccess)
	assert.Equal(t, "/job", cat.Env.Nav.Path())

	require.NoError(t, cat.Jobs.List.Mount(ctx))
	assert.Nil(t, cat.Jobs.List.Render().Table)
}

func TestCatalog_Listers(t *testing.T) {
	cat, _ := newTestCatalog(t)

	ls := cat.Listers()
	assert.Len(t, ls, 10)
	assert.Equal(t, "Job Histories", ls["job-histories"].Heading())

	out, err := ls["authorities"].Load(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, out.Table)
	assert.Equal(t, []string{"Name"}, out.Table.Headers)
}
