package repository

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

func TestMemoryRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo[domain.Job]("job")

	minSalary := int64(42138)
	created, err := repo.Create(ctx, domain.Job{JobTitle: "Corporate Markets Director", MinSalary: &minSalary})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corporate Markets Director", got.JobTitle)
	assert.Equal(t, int64(42138), *got.MinSalary)

	got.JobTitle = "Lead"
	_, err = repo.Update(ctx, got)
	require.NoError(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// 删除不存在的 id 不报错
	assert.NoError(t, repo.Delete(ctx, 999))
}

func TestMemoryRepo_UniqueLogin(t *testing.T) {
	ctx := context.Background()
	repos := NewMemorySet()

	first, err := repos.Users.Create(ctx, domain.User{Login: "dup"})
	require.NoError(t, err)

	_, err = repos.Users.Create(ctx, domain.User{Login: "dup"})
	var bre *domain.BadRequestError
	require.True(t, errors.As(err, &bre), "got %v", err)
	assert.Equal(t, "userexists", bre.ErrorKey)

	other, err := repos.Users.Create(ctx, domain.User{Login: "other"})
	require.NoError(t, err)
	other.Login = "dup"
	_, err = repos.Users.Update(ctx, other)
	require.True(t, errors.As(err, &bre), "got %v", err)

	// 保持自己的 login 不算冲突
	first.FirstName = "Ann"
	_, err = repos.Users.Update(ctx, first)
	require.NoError(t, err)

	n, err := repos.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPage_OffsetSaturates(t *testing.T) {
	assert.Equal(t, 40, Page{Page: 2, Size: 20}.Offset())
	assert.Equal(t, 0, Page{Page: -3, Size: 20}.Offset())
	assert.Equal(t, math.MaxInt, Page{Page: math.MaxInt / 4, Size: 20}.Offset())

	repo := NewMemoryRepo[domain.Task]("task")
	_, err := repo.Create(context.Background(), domain.Task{Title: "a"})
	require.NoError(t, err)
	items, total, err := repo.List(context.Background(), Page{Page: 461168601842738791, Size: 20})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, total)
}

func TestMemoryRepo_UpdateMissing(t *testing.T) {
	repo := NewMemoryRepo[domain.Region]("region")
	_, err := repo.Update(context.Background(), domain.Region{ID: 5, RegionName: "EMEA"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemoryRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo[domain.Job]("job")

	created, err := repo.Create(ctx, domain.Job{Tasks: []domain.TaskRef{{ID: 1, Title: "a"}}})
	require.NoError(t, err)

	created.Tasks[0].Title = "mutated"
	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Tasks[0].Title)
}

func TestMemoryRepo_ListPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo[domain.Task]("task")
	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, domain.Task{Title: "t"})
		require.NoError(t, err)
	}

	items, total, err := repo.List(ctx, Page{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].ID)
	assert.Equal(t, int64(4), items[1].ID)

	items, _, err = repo.List(ctx, Page{Desc: true})
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, int64(5), items[0].ID)

	items, _, err = repo.List(ctx, Page{Page: 9, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryAuthorityRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAuthorityRepo()

	items, total, err := repo.List(ctx, Page{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []domain.Authority{{Name: "ROLE_ADMIN"}, {Name: "ROLE_USER"}}, items)

	_, err = repo.Create(ctx, domain.Authority{Name: "ROLE_HR"})
	require.NoError(t, err)
	ok, err := repo.Exists(ctx, "ROLE_HR")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(ctx, "ROLE_HR"))
	_, err = repo.Get(ctx, "ROLE_HR")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
