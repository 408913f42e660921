package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
	"github.com/tuannt39-study/jhipster-sample/internal/events"
	"github.com/tuannt39-study/jhipster-sample/internal/repository"
	"github.com/tuannt39-study/jhipster-sample/internal/search"
	"github.com/tuannt39-study/jhipster-sample/internal/store"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) actions() []events.Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Action, len(p.events))
	for i, e := range p.events {
		out[i] = e.Action
	}
	return out
}

type fixture struct {
	mr    *miniredis.Miniredis
	index *search.Index
	pub   *recordingPublisher
	opts  Options
}

func setup(t *testing.T) fixture {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := fixture{mr: mr, index: search.NewIndex(), pub: &recordingPublisher{}}
	f.opts = Options{
		Index:     f.index,
		KV:        store.NewRedisKV(client),
		CacheTTL:  time.Minute,
		Publisher: f.pub,
		Logger:    zap.NewNop(),
	}
	return f
}

func badRequestKey(t *testing.T, err error) string {
	t.Helper()
	var bre *domain.BadRequestError
	require.True(t, errors.As(err, &bre), "expected BadRequestError, got %v", err)
	return bre.ErrorKey
}

func TestEntityService_Create(t *testing.T) {
	f := setup(t)
	svc := NewEntityService("job", "jobs", repository.NewMemoryRepo[domain.Job]("job"), f.opts)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Job{ID: 3, JobTitle: "x"})
	assert.Equal(t, "idexists", badRequestKey(t, err))

	created, err := svc.Create(ctx, domain.Job{JobTitle: "Corporate Markets Director"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := svc.Search(ctx, "id:1")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Corporate Markets Director", found[0].JobTitle)
	assert.Equal(t, []events.Action{events.ActionCreated}, f.pub.actions())
}

func TestEntityService_Create_Validation(t *testing.T) {
	f := setup(t)
	svc := NewEntityService("department", "departments", repository.NewMemoryRepo[domain.Department]("department"), f.opts)

	_, err := svc.Create(context.Background(), domain.Department{})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, f.pub.actions())
}

func TestEntityService_Update_IDRules(t *testing.T) {
	f := setup(t)
	svc := NewEntityService("region", "regions", repository.NewMemoryRepo[domain.Region]("region"), f.opts)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Region{RegionName: "EMEA"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, domain.Region{RegionName: "x"})
	assert.Equal(t, "idnull", badRequestKey(t, err))

	_, err = svc.Update(ctx, created.ID+1, created)
	assert.Equal(t, "idinvalid", badRequestKey(t, err))

	_, err = svc.Update(ctx, 42, domain.Region{ID: 42})
	assert.Equal(t, "idnotfound", badRequestKey(t, err))

	created.RegionName = "APAC"
	updated, err := svc.Update(ctx, created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, "APAC", updated.RegionName)
}

func TestEntityService_Get_CachesAndInvalidates(t *testing.T) {
	f := setup(t)
	svc := NewEntityService("task", "tasks", repository.NewMemoryRepo[domain.Task]("task"), f.opts)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Task{Title: "a"})
	require.NoError(t, err)
	assert.False(t, f.mr.Exists("hr:entity:tasks:1"))

	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, f.mr.Exists("hr:entity:tasks:1"))

	created.Title = "b"
	_, err = svc.Update(ctx, created.ID, created)
	require.NoError(t, err)
	assert.False(t, f.mr.Exists("hr:entity:tasks:1"))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Title)

	_, err = svc.Get(ctx, 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEntityService_PartialUpdate_IgnoresNulls(t *testing.T) {
	f := setup(t)
	svc := NewEntityService("job", "jobs", repository.NewMemoryRepo[domain.Job]("job"), f.opts)
	ctx := context.Background()

	minS := int64(42138)
	created, err := svc.Create(ctx, domain.Job{JobTitle: "Director", MinSalary: &minS})
	require.NoError(t, err)

	patched, err := svc.PartialUpdate(ctx, created.ID, []byte(`{"id":1,"jobTitle":"Lead","minSalary":null}`))
	require.NoError(t, err)
	assert.Equal(t, "Lead", patched.JobTitle)
	require.NotNil(t, patched.MinSalary)
	assert.Equal(t, int64(42138), *patched.MinSalary)

	_, err = svc.PartialUpdate(ctx, created.ID, []byte(`{"jobTitle":"x"}`))
	assert.Equal(t, "idnull", badRequestKey(t, err))

	_, err = svc.PartialUpdate(ctx, created.ID, []byte(`not json`))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestEntityService_PartialUpdate_ValidatesMergedEntity(t *testing.T) {
	f := setup(t)
	svc := NewEntityService("jobHistory", "job-histories", repository.NewMemoryRepo[domain.JobHistory]("jobHistory"), f.opts)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.JobHistory{Language: domain.LanguageFrench})
	require.NoError(t, err)

	_, err = svc.PartialUpdate(ctx, created.ID, []byte(`{"id":1,"language":"GERMAN"}`))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestEntityService_Delete(t *testing.T) {
	f := setup(t)
	svc := NewEntityService("task", "tasks", repository.NewMemoryRepo[domain.Task]("task"), f.opts)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Task{Title: "a"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	found, err := svc.Search(ctx, "*")
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Equal(t, []events.Action{events.ActionCreated, events.ActionDeleted}, f.pub.actions())
}

func TestEntityService_SearchUnsupported(t *testing.T) {
	svc := NewEntityService("region", "regions", repository.NewMemoryRepo[domain.Region]("region"), Options{})
	assert.False(t, svc.Searchable())

	_, err := svc.Search(context.Background(), "*")
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestEntityService_Reindex(t *testing.T) {
	f := setup(t)
	repo := repository.NewMemoryRepo[domain.Region]("region")
	ctx := context.Background()
	for _, n := range []string{"EMEA", "APAC"} {
		_, err := repo.Create(ctx, domain.Region{RegionName: n})
		require.NoError(t, err)
	}

	svc := NewEntityService("region", "regions", repo, f.opts)
	n, err := svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	found, err := svc.Search(ctx, "apac")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "APAC", found[0].RegionName)
}

func TestAuthorityService(t *testing.T) {
	f := setup(t)
	svc := NewAuthorityService(repository.NewMemoryAuthorityRepo(), f.opts)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Authority{Name: "ROLE_ADMIN"})
	assert.Equal(t, "idexists", badRequestKey(t, err))

	_, err = svc.Create(ctx, domain.Authority{Name: "  "})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	created, err := svc.Create(ctx, domain.Authority{Name: "ROLE_HR"})
	require.NoError(t, err)
	assert.Equal(t, "ROLE_HR", created.Name)

	require.NoError(t, svc.Delete(ctx, "ROLE_HR"))
	_, err = svc.Get(ctx, "ROLE_HR")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, []events.Action{events.ActionCreated, events.ActionDeleted}, f.pub.actions())
}

func TestServices_Reindex(t *testing.T) {
	f := setup(t)
	repos := repository.NewMemorySet()
	_, err := repos.Jobs.Create(context.Background(), domain.Job{JobTitle: "Director"})
	require.NoError(t, err)

	svcs := NewServices(repos, f.opts)
	require.NoError(t, svcs.Reindex(context.Background()))
	assert.Equal(t, 1, f.index.Len("jobs"))
}

func TestServices_WriteFlushesDependentCaches(t *testing.T) {
	f := setup(t)
	svcs := NewServices(repository.NewMemorySet(), f.opts)
	ctx := context.Background()

	task, err := svcs.Tasks.Create(ctx, domain.Task{Title: "Review"})
	require.NoError(t, err)
	job, err := svcs.Jobs.Create(ctx, domain.Job{JobTitle: "Director", Tasks: []domain.TaskRef{{ID: task.ID, Title: task.Title}}})
	require.NoError(t, err)
	user, err := svcs.Users.Create(ctx, domain.User{Login: "ann", Authorities: []string{"ROLE_USER"}})
	require.NoError(t, err)

	_, err = svcs.Jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	_, err = svcs.Users.Get(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, f.mr.Exists("hr:entity:jobs:1"))
	require.True(t, f.mr.Exists("hr:entity:users:1"))

	// 新建 task 不影响已缓存的 job
	_, err = svcs.Tasks.Create(ctx, domain.Task{Title: "Other"})
	require.NoError(t, err)
	assert.True(t, f.mr.Exists("hr:entity:jobs:1"))

	task.Title = "Audit"
	_, err = svcs.Tasks.Update(ctx, task.ID, task)
	require.NoError(t, err)
	assert.False(t, f.mr.Exists("hr:entity:jobs:1"))
	assert.True(t, f.mr.Exists("hr:entity:users:1"))

	_, err = svcs.Jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	require.NoError(t, svcs.Employees.Delete(ctx, 42))
	assert.False(t, f.mr.Exists("hr:entity:jobs:1"))

	require.NoError(t, svcs.Authorities.Delete(ctx, "ROLE_USER"))
	assert.False(t, f.mr.Exists("hr:entity:users:1"))
}
