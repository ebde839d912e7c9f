package catalog

import (
	"context"

	"github.com/DillanMilo/angus-biltong-sub000/models"
)

// Fetcher reads products from the commerce platform.
type Fetcher interface {
	ListProducts(ctx context.Context, includeImages bool) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (models.Product, error)
}

// Service answers catalog reads. Every call re-fetches from upstream.
type Service struct {
	fetcher  Fetcher
	resolver *Resolver
}

func NewService(f Fetcher, r *Resolver) *Service {
	return &Service{fetcher: f, resolver: r}
}

func (s *Service) Products(ctx context.Context) ([]models.Product, error) {
	return s.fetcher.ListProducts(ctx, true)
}

func (s *Service) Product(ctx context.Context, id int) (models.Product, error) {
	return s.fetcher.GetProduct(ctx, id)
}

// ProductsInCategory fetches the full catalog and filters it to the category at path.
// Unknown paths fail with ErrCategoryNotFound before anything is fetched.
func (s *Service) ProductsInCategory(ctx context.Context, path string) ([]models.Product, models.Category, error) {
	if _, ok := s.resolver.Category(path); !ok {
		return s.resolver.Resolve(path, nil)
	}
	products, err := s.fetcher.ListProducts(ctx, true)
	if err != nil {
		return []models.Product{}, models.Category{}, err
	}
	return s.resolver.Resolve(path, products)
}

func (s *Service) Categories() []models.Category {
	return s.resolver.Categories()
}

func (s *Service) Resolver() *Resolver {
	return s.resolver
}
