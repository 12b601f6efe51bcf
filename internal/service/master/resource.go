package master

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
)

// resource is the CRUD plumbing shared by the settings pages. P is the wire
// shape, T the entity the pages work with.
type resource[P any, T any] struct {
	client   *apiclient.Client
	path     string
	name     string
	notFound error
	convert  func(P) T
	config   listquery.Config[T]
}

func (r resource[P, T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r resource[P, T]) translate(ctx context.Context, err error) error {
	if errors.Is(err, apiclient.ErrNotFound) {
		return r.notFound
	}
	return session.Translate(ctx, err)
}

// decode converts a single-resource body. Writes answered with an empty body
// yield the zero T.
func (r resource[P, T]) decode(raw []byte) (T, error) {
	var zero T
	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, nil
	}
	p, err := apiclient.Decode[P](raw)
	if err != nil {
		return zero, err
	}
	return r.convert(p), nil
}

func (r resource[P, T]) all(ctx context.Context) ([]T, error) {
	client, _, err := session.Client(ctx, r.client)
	if err != nil {
		return nil, err
	}
	payloads, err := apiclient.GetAll[P](ctx, client, r.path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.name, r.translate(ctx, err))
	}
	items := make([]T, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, r.convert(p))
	}
	return items, nil
}

func (r resource[P, T]) list(ctx context.Context, q listquery.Query) (listquery.Result[T], error) {
	src := listquery.ClientSource[T]{Load: r.all, Config: r.config}
	return src.Fetch(ctx, q)
}

func (r resource[P, T]) get(ctx context.Context, id string) (T, error) {
	var zero T
	client, _, err := session.Client(ctx, r.client)
	if err != nil {
		return zero, err
	}
	raw, err := client.Get(ctx, r.itemPath(id), nil)
	if err != nil {
		return zero, r.translate(ctx, err)
	}
	return r.decode(raw)
}

func (r resource[P, T]) create(ctx context.Context, body any) (T, error) {
	var zero T
	client, _, err := session.Client(ctx, r.client)
	if err != nil {
		return zero, err
	}
	raw, err := client.Post(ctx, r.path, body)
	if err != nil {
		return zero, r.translate(ctx, err)
	}
	return r.decode(raw)
}

func (r resource[P, T]) update(ctx context.Context, id string, body any) (T, error) {
	var zero T
	client, _, err := session.Client(ctx, r.client)
	if err != nil {
		return zero, err
	}
	raw, err := client.Put(ctx, r.itemPath(id), body)
	if err != nil {
		return zero, r.translate(ctx, err)
	}
	return r.decode(raw)
}

func (r resource[P, T]) delete(ctx context.Context, id string) error {
	client, _, err := session.Client(ctx, r.client)
	if err != nil {
		return err
	}
	if err := client.Delete(ctx, r.itemPath(id)); err != nil {
		return r.translate(ctx, err)
	}
	return nil
}
