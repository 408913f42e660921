package domain

import (
	"errors"
	"fmt"
)

// Entity is implemented by every record with a server-assigned numeric id.
// WithID returns a copy, so implementations use value receivers.
type Entity[T any] interface {
	EntityID() int64
	WithID(id int64) T
}

// Ref 关联实体引用（只携带 id，与前端 {id: n} 形态一致）
type Ref struct {
	ID int64 `json:"id"`
}

// NewRef returns nil for a zero id.
func NewRef(id int64) *Ref {
	if id == 0 {
		return nil
	}
	return &Ref{ID: id}
}

// RefID returns 0 for a nil ref.
func RefID(r *Ref) int64 {
	if r == nil {
		return 0
	}
	return r.ID
}

var (
	ErrNotFound   = errors.New("entity not found")
	ErrBadRequest = errors.New("bad request")
	ErrValidation = errors.New("validation failed")
)

// BadRequestError carries the error key the admin UI keys its alerts on
// (idexists, idnull, idinvalid, idnotfound, ...).
type BadRequestError struct {
	EntityName string
	ErrorKey   string
	Message    string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.EntityName, e.Message, e.ErrorKey)
}

func (e *BadRequestError) Unwrap() error { return ErrBadRequest }

func NewBadRequest(entityName, errorKey, message string) error {
	return &BadRequestError{EntityName: entityName, ErrorKey: errorKey, Message: message}
}
