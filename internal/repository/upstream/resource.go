package upstream

import (
	"context"
	"net/url"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
)

// Resource is a generic CRUD repository over one upstream collection.
type Resource[T any, W any] struct {
	client   *apiclient.Client
	entity   string
	path     string
	mapOne   func([]byte) (T, error)
	notFound error
}

func NewResource[T any, W any](client *apiclient.Client, entity, path string, mapOne func([]byte) (T, error), notFound error) *Resource[T, W] {
	return &Resource[T, W]{
		client:   client,
		entity:   entity,
		path:     path,
		mapOne:   mapOne,
		notFound: notFound,
	}
}

func (r *Resource[T, W]) List(ctx context.Context, token string, query url.Values) ([]T, error) {
	body, err := r.client.Get(ctx, token, r.path, query)
	if err != nil {
		return nil, err
	}
	return payload.MapList(r.entity, unwrapList(body, r.entity+"s"), r.mapOne)
}

func (r *Resource[T, W]) Get(ctx context.Context, token, id string) (T, error) {
	var zero T
	seg, err := segment(id)
	if err != nil {
		return zero, err
	}
	body, err := r.client.Get(ctx, token, r.path+"/"+seg, nil)
	if err != nil {
		return zero, notFound(err, r.notFound)
	}
	return r.decode(body)
}

func (r *Resource[T, W]) Create(ctx context.Context, token string, in W) (T, error) {
	body, err := r.client.Post(ctx, token, r.path, in)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.decode(body)
}

func (r *Resource[T, W]) Update(ctx context.Context, token, id string, in W) (T, error) {
	var zero T
	seg, err := segment(id)
	if err != nil {
		return zero, err
	}
	body, err := r.client.Put(ctx, token, r.path+"/"+seg, in)
	if err != nil {
		return zero, notFound(err, r.notFound)
	}
	return r.decode(body)
}

func (r *Resource[T, W]) Delete(ctx context.Context, token, id string) error {
	seg, err := segment(id)
	if err != nil {
		return err
	}
	if err := r.client.Delete(ctx, token, r.path+"/"+seg); err != nil {
		return notFound(err, r.notFound)
	}
	return nil
}

func (r *Resource[T, W]) decode(body []byte) (T, error) {
	if body == nil {
		var zero T
		return zero, emptyResponse(r.entity)
	}
	return r.mapOne(unwrapOne(body, r.entity))
}
