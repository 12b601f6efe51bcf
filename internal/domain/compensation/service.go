package compensation

import (
	"context"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

// CatalogService manages the benefit and deduction templates.
type CatalogService interface {
	List(ctx context.Context, kind Kind, q listquery.Query) (listquery.Result[Item], error)
	Get(ctx context.Context, kind Kind, id string) (Item, error)
	Create(ctx context.Context, kind Kind, req ItemRequest) (Item, error)
	Update(ctx context.Context, kind Kind, id string, req ItemRequest) (Item, error)
	Delete(ctx context.Context, kind Kind, id string) error
}
