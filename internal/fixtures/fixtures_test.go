package fixtures

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

func TestSamples_MutationIsNotObservable(t *testing.T) {
	job := Jobs.Full()
	job.JobTitle = "changed"
	*job.MinSalary = 1
	job.Tasks[0].Title = "changed"
	job.Employee.ID = 1

	again := Jobs.Full()
	assert.Equal(t, "Legacy Creative Producer", again.JobTitle)
	assert.Equal(t, int64(25140), *again.MinSalary)
	assert.Equal(t, "Function-based", again.Tasks[0].Title)
	assert.Equal(t, int64(4189), again.Employee.ID)

	h := JobHistories.Full()
	*h.StartDate = h.StartDate.AddDate(1, 0, 0)
	assert.Equal(t, 2022, JobHistories.Full().StartDate.Year())
}

func TestSamples_IDs(t *testing.T) {
	for _, j := range Jobs.All() {
		assert.NotZero(t, j.ID)
	}
	assert.Zero(t, Jobs.New().ID)
	assert.Zero(t, JobHistories.New().ID)
	assert.Zero(t, Users.New().ID)
	assert.Equal(t, int64(24813), Users.Required().ID)
	assert.Equal(t, `tM@NF3p\AgLjJ9\ik`, Users.Required().Login)
	assert.Empty(t, Authorities.New().Name)
}

func TestSamples_NewJobMatchesScenario(t *testing.T) {
	j := Jobs.New()
	assert.Equal(t, "Corporate Markets Director", j.JobTitle)
	require.NotNil(t, j.MinSalary)
	require.NotNil(t, j.MaxSalary)
	assert.Equal(t, int64(42138), *j.MinSalary)
	assert.Equal(t, int64(82698), *j.MaxSalary)
}

func TestSamples_PassValidation(t *testing.T) {
	v := validator.New()
	for _, d := range Departments.All() {
		assert.NoError(t, v.Struct(d))
	}
	for _, h := range append(JobHistories.All(), JobHistories.New()) {
		assert.NoError(t, v.Struct(h))
	}
	for _, u := range append(Users.All(), Users.New()) {
		assert.NoError(t, v.Struct(u))
	}
	assert.NoError(t, v.Struct(Authorities.Full()))
	assert.Error(t, v.Struct(Authorities.New()))
	assert.True(t, domain.LanguageSpanish.Valid())
}
