package domain

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestRef(t *testing.T) {
	assert.Nil(t, NewRef(0))
	assert.Equal(t, int64(3), NewRef(3).ID)
	assert.Equal(t, int64(0), RefID(nil))
	assert.Equal(t, int64(9), RefID(&Ref{ID: 9}))
}

func TestWithID_ReturnsCopy(t *testing.T) {
	j := Job{JobTitle: "Director"}
	saved := j.WithID(12)

	assert.Equal(t, int64(0), j.EntityID())
	assert.Equal(t, int64(12), saved.EntityID())
	assert.Equal(t, "Director", saved.JobTitle)
}

func TestBadRequestError_Is(t *testing.T) {
	err := NewBadRequest("job", "idexists", "A new job cannot already have an ID")

	assert.True(t, errors.Is(err, ErrBadRequest))
	var bre *BadRequestError
	assert.True(t, errors.As(err, &bre))
	assert.Equal(t, "idexists", bre.ErrorKey)
}

func TestLanguage_Valid(t *testing.T) {
	for _, l := range Languages {
		assert.True(t, l.Valid(), l)
	}
	assert.False(t, Language("GERMAN").Valid())
	assert.False(t, Language("").Valid())
}

func TestValidationTags(t *testing.T) {
	v := validator.New()

	assert.Error(t, v.Struct(Department{}))
	assert.NoError(t, v.Struct(Department{DepartmentName: "R&D"}))

	assert.NoError(t, v.Struct(JobHistory{}))
	assert.NoError(t, v.Struct(JobHistory{Language: LanguageSpanish}))
	assert.Error(t, v.Struct(JobHistory{Language: "GERMAN"}))

	assert.Error(t, v.Struct(User{}))
	assert.NoError(t, v.Struct(User{Login: "admin", Email: "admin@localhost.com"}))
	assert.Error(t, v.Struct(User{Login: "admin", Email: "nope"}))

	assert.Error(t, v.Struct(Authority{}))
	assert.NoError(t, v.Struct(Employee{Email: "a@b.io"}))
}
