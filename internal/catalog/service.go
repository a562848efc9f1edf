package catalog

import (
	"context"

	"github.com/gelaboca/gelaboca-backend/pkg/logger"
	"github.com/gelaboca/gelaboca-backend/pkg/pinecone"
)

const (
	// EmbeddingDims is the dimension of the index vectors
	// (text-embedding-3-large).
	EmbeddingDims = 3072

	// listTopK is the page size used for full-catalog listings. The shop
	// catalog is far below this, so a single query returns everything.
	listTopK = 1000

	// PromotionalCap bounds the promotional listing.
	PromotionalCap = 10
)

// IndexQuerier is the slice of the vector index client the catalog needs.
type IndexQuerier interface {
	Query(ctx context.Context, req pinecone.QueryRequest) ([]pinecone.Match, error)
}

// Service exposes catalog listings and similarity search over the vector index.
type Service interface {
	// ListProducts returns every active product. It never fails: on index
	// errors it serves the static sample catalog.
	ListProducts(ctx context.Context) []Product
	// ListPromotional returns active promotional products, capped. It falls
	// back to the promotional entries of the sample catalog on index errors.
	ListPromotional(ctx context.Context) []Product
	// SearchSimilar runs a ranked similarity search restricted to active
	// products.
	SearchSimilar(ctx context.Context, vector []float32, topK int) ([]Product, error)
}

type service struct {
	index IndexQuerier
	logg  *logger.Logger
}

// NewService builds the catalog service.
func NewService(index IndexQuerier, logg *logger.Logger) Service {
	return &service{index: index, logg: logg}
}

func (s *service) ListProducts(ctx context.Context) []Product {
	products, err := s.listAll(ctx)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog listing failed, serving sample catalog")
		return SampleProducts()
	}
	return products
}

func (s *service) ListPromotional(ctx context.Context) []Product {
	products, err := s.listAll(ctx)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "promotional listing failed, serving sample catalog")
		products = SampleProducts()
	}

	promotional := make([]Product, 0, PromotionalCap)
	for _, product := range products {
		if !product.Promotional {
			continue
		}
		promotional = append(promotional, product)
		if len(promotional) == PromotionalCap {
			break
		}
	}
	return promotional
}

func (s *service) SearchSimilar(ctx context.Context, vector []float32, topK int) ([]Product, error) {
	matches, err := s.index.Query(ctx, pinecone.QueryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
		Filter:          pinecone.ActiveOnlyFilter(),
	})
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(matches))
	for _, match := range matches {
		products = append(products, ProductFromMatch(match))
	}
	return products, nil
}

// listAll sweeps the index with a zero vector and filters to active products
// client-side, since a broad listing has no meaningful ranking vector.
func (s *service) listAll(ctx context.Context) ([]Product, error) {
	matches, err := s.index.Query(ctx, pinecone.QueryRequest{
		Vector:          pinecone.ZeroVector(EmbeddingDims),
		TopK:            listTopK,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(matches))
	for _, match := range matches {
		product := ProductFromMatch(match)
		if !product.Active {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}
