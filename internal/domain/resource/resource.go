// Package resource describes the list/get/create/update/delete surface shared
// by the HRMS master-data entities.
package resource

import (
	"context"
	"errors"
	"net/url"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

var ErrInvalidID = errors.New("Invalid resource identifier")

// Validatable is implemented by write requests; it runs before any upstream call.
type Validatable interface {
	Validate() error
}

// Repository is the upstream CRUD API of one entity.
type Repository[T any, W any] interface {
	List(ctx context.Context, token string, query url.Values) ([]T, error)
	Get(ctx context.Context, token, id string) (T, error)
	Create(ctx context.Context, token string, in W) (T, error)
	Update(ctx context.Context, token, id string, in W) (T, error)
	Delete(ctx context.Context, token, id string) error
}

type Service[T any, W Validatable] interface {
	List(ctx context.Context, sess *session.Session, query url.Values) ([]T, error)
	Get(ctx context.Context, sess *session.Session, id string) (T, error)
	Create(ctx context.Context, sess *session.Session, in W) (T, error)
	Update(ctx context.Context, sess *session.Session, id string, in W) (T, error)
	Delete(ctx context.Context, sess *session.Session, id string) error
}
