package master

import (
	"context"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/compensation"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

const (
	benefitsPath   = "/api/v1/employee-benefits"
	deductionsPath = "/api/v1/employee-deductions"
)

type catalogService struct {
	catalogs map[compensation.Kind]resource[compensation.ItemPayload, compensation.Item]
}

func NewCatalogService(client *apiclient.Client) compensation.CatalogService {
	catalog := func(kind compensation.Kind, path, name string) resource[compensation.ItemPayload, compensation.Item] {
		return resource[compensation.ItemPayload, compensation.Item]{
			client:   client,
			path:     path,
			name:     name,
			notFound: compensation.ErrItemNotFound,
			convert:  func(p compensation.ItemPayload) compensation.Item { return p.ToItem(kind) },
			config:   compensation.ListConfig,
		}
	}
	return &catalogService{
		catalogs: map[compensation.Kind]resource[compensation.ItemPayload, compensation.Item]{
			compensation.KindBenefit:   catalog(compensation.KindBenefit, benefitsPath, "benefits"),
			compensation.KindDeduction: catalog(compensation.KindDeduction, deductionsPath, "deductions"),
		},
	}
}

func (s *catalogService) catalog(kind compensation.Kind) (resource[compensation.ItemPayload, compensation.Item], error) {
	res, ok := s.catalogs[kind]
	if !ok {
		return res, compensation.ErrUnknownKind
	}
	return res, nil
}

func (s *catalogService) List(ctx context.Context, kind compensation.Kind, q listquery.Query) (listquery.Result[compensation.Item], error) {
	res, err := s.catalog(kind)
	if err != nil {
		return listquery.Result[compensation.Item]{}, err
	}
	return res.list(ctx, q)
}

func (s *catalogService) Get(ctx context.Context, kind compensation.Kind, id string) (compensation.Item, error) {
	res, err := s.catalog(kind)
	if err != nil {
		return compensation.Item{}, err
	}
	return res.get(ctx, id)
}

func (s *catalogService) Create(ctx context.Context, kind compensation.Kind, req compensation.ItemRequest) (compensation.Item, error) {
	res, err := s.catalog(kind)
	if err != nil {
		return compensation.Item{}, err
	}
	if err := req.Validate(); err != nil {
		return compensation.Item{}, err
	}
	return res.create(ctx, req.Body())
}

func (s *catalogService) Update(ctx context.Context, kind compensation.Kind, id string, req compensation.ItemRequest) (compensation.Item, error) {
	res, err := s.catalog(kind)
	if err != nil {
		return compensation.Item{}, err
	}
	if err := req.Validate(); err != nil {
		return compensation.Item{}, err
	}
	return res.update(ctx, id, req.Body())
}

func (s *catalogService) Delete(ctx context.Context, kind compensation.Kind, id string) error {
	res, err := s.catalog(kind)
	if err != nil {
		return err
	}
	return res.delete(ctx, id)
}
