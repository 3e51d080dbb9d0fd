// Package resource is the CRUD service shared by the HRMS master-data
// entities. Write requests are validated before anything reaches upstream.
package resource

import (
	"context"
	"net/url"
	"strings"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/resource"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

type ServiceImpl[T any, W resource.Validatable] struct {
	repository resource.Repository[T, W]
	filters    map[string]bool
}

// NewService builds a service over repository. Only query keys listed in
// filters are forwarded upstream.
func NewService[T any, W resource.Validatable](repository resource.Repository[T, W], filters []string) resource.Service[T, W] {
	allowed := make(map[string]bool, len(filters))
	for _, f := range filters {
		allowed[f] = true
	}
	return &ServiceImpl[T, W]{repository: repository, filters: allowed}
}

func (s *ServiceImpl[T, W]) List(ctx context.Context, sess *session.Session, query url.Values) ([]T, error) {
	return s.repository.List(ctx, sess.AccessToken, s.filter(query))
}

func (s *ServiceImpl[T, W]) Get(ctx context.Context, sess *session.Session, id string) (T, error) {
	if strings.TrimSpace(id) == "" {
		var zero T
		return zero, resource.ErrInvalidID
	}
	return s.repository.Get(ctx, sess.AccessToken, id)
}

func (s *ServiceImpl[T, W]) Create(ctx context.Context, sess *session.Session, in W) (T, error) {
	if err := in.Validate(); err != nil {
		var zero T
		return zero, err
	}
	return s.repository.Create(ctx, sess.AccessToken, in)
}

func (s *ServiceImpl[T, W]) Update(ctx context.Context, sess *session.Session, id string, in W) (T, error) {
	var zero T
	if strings.TrimSpace(id) == "" {
		return zero, resource.ErrInvalidID
	}
	if err := in.Validate(); err != nil {
		return zero, err
	}
	return s.repository.Update(ctx, sess.AccessToken, id, in)
}

func (s *ServiceImpl[T, W]) Delete(ctx context.Context, sess *session.Session, id string) error {
	if strings.TrimSpace(id) == "" {
		return resource.ErrInvalidID
	}
	return s.repository.Delete(ctx, sess.AccessToken, id)
}

// filter drops query keys the entity does not support and empty values.
func (s *ServiceImpl[T, W]) filter(query url.Values) url.Values {
	out := url.Values{}
	for key, values := range query {
		if !s.filters[key] {
			continue
		}
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				out.Add(key, v)
			}
		}
	}
	return out
}
