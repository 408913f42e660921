//go:build integration

package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannt39-study/jhipster-sample/common/config"
	"github.com/tuannt39-study/jhipster-sample/common/database"
	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

// 获取测试数据库连接，连不上则跳过
func getTestDB(t *testing.T) *sql.DB {
	cfg := &config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "hr_admin_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil
	}
	t.Cleanup(func() { database.Close(db) })

	if _, err := database.MigrateUp(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestPostgresJobs_Integration(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	set := NewPostgresSet(db)

	task, err := set.Tasks.Create(ctx, domain.Task{Title: "Integration task"})
	require.NoError(t, err)
	defer set.Tasks.Delete(ctx, task.ID)

	minS, maxS := int64(42138), int64(82698)
	job, err := set.Jobs.Create(ctx, domain.Job{
		JobTitle:  "Corporate Markets Director",
		MinSalary: &minS,
		MaxSalary: &maxS,
		Tasks:     []domain.TaskRef{{ID: task.ID}},
	})
	require.NoError(t, err)
	defer set.Jobs.Delete(ctx, job.ID)

	assert.Equal(t, []domain.TaskRef{{ID: task.ID, Title: "Integration task"}}, job.Tasks)

	job.Tasks = nil
	updated, err := set.Jobs.Update(ctx, job)
	require.NoError(t, err)
	assert.Empty(t, updated.Tasks)

	require.NoError(t, set.Jobs.Delete(ctx, job.ID))
	ok, err := set.Jobs.Exists(ctx, job.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgresUsers_Integration(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	set := NewPostgresSet(db)

	u, err := set.Users.Create(ctx, domain.User{Login: "it-user", Activated: true, Authorities: []string{"ROLE_USER"}})
	require.NoError(t, err)
	defer set.Users.Delete(ctx, u.ID)

	assert.Equal(t, []string{"ROLE_USER"}, u.Authorities)

	_, err = set.Users.Create(ctx, domain.User{Login: "it-user"})
	var bre *domain.BadRequestError
	require.True(t, errors.As(err, &bre), "got %v", err)
	assert.Equal(t, "userexists", bre.ErrorKey)
}
