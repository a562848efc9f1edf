package catalog

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/gelaboca/gelaboca-backend/pkg/logger"
	"github.com/gelaboca/gelaboca-backend/pkg/pinecone"
	"github.com/rs/zerolog"
)

type stubIndex struct {
	matches  []pinecone.Match
	err      error
	lastReq  pinecone.QueryRequest
	queryCnt int
}

func (s *stubIndex) Query(_ context.Context, req pinecone.QueryRequest) ([]pinecone.Match, error) {
	s.lastReq = req
	s.queryCnt++
	if s.err != nil {
		return nil, s.err
	}
	return s.matches, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func productMatch(id, name string, price float64, active, promotional bool) pinecone.Match {
	return pinecone.Match{
		ID: id,
		Metadata: map[string]any{
			"nome":        name,
			"valor":       price,
			"ativado":     active,
			"promocional": promotional,
		},
	}
}

func TestListProductsFiltersInactive(t *testing.T) {
	index := &stubIndex{matches: []pinecone.Match{
		productMatch("choc-1", "Sorvete de Chocolate", 8.90, true, false),
		productMatch("old-1", "Sorvete Antigo", 5.00, false, false),
		productMatch("mor-1", "Sorvete de Morango", 8.90, true, true),
	}}
	svc := NewService(index, testLogger())

	products := svc.ListProducts(context.Background())

	if len(products) != 2 {
		t.Fatalf("expected 2 active products, got %d", len(products))
	}
	for _, product := range products {
		if !product.Active {
			t.Fatalf("inactive product leaked: %s", product.ID)
		}
	}
	if index.lastReq.TopK != listTopK {
		t.Fatalf("expected topK=%d, got %d", listTopK, index.lastReq.TopK)
	}
	if len(index.lastReq.Vector) != EmbeddingDims {
		t.Fatalf("expected %d-dim zero vector, got %d", EmbeddingDims, len(index.lastReq.Vector))
	}
}

func TestListProductsServesSampleOnIndexError(t *testing.T) {
	index := &stubIndex{err: errors.New("index down")}
	svc := NewService(index, testLogger())

	products := svc.ListProducts(context.Background())

	if len(products) != len(SampleProducts()) {
		t.Fatalf("expected sample catalog, got %d products", len(products))
	}
	if products[0].Code != "CHOC001" {
		t.Fatalf("unexpected first sample product code %q", products[0].Code)
	}
}

func TestListPromotionalFiltersAndCaps(t *testing.T) {
	matches := make([]pinecone.Match, 0, 15)
	for i := 0; i < 15; i++ {
		matches = append(matches, productMatch("promo", "Promo", 9.90, true, true))
	}
	matches = append(matches, productMatch("plain", "Sorvete", 8.90, true, false))
	index := &stubIndex{matches: matches}
	svc := NewService(index, testLogger())

	products := svc.ListPromotional(context.Background())

	if len(products) != PromotionalCap {
		t.Fatalf("expected cap of %d, got %d", PromotionalCap, len(products))
	}
	for _, product := range products {
		if !product.Promotional {
			t.Fatalf("non-promotional product leaked: %s", product.ID)
		}
	}
}

func TestSearchSimilarAppliesActiveFilter(t *testing.T) {
	index := &stubIndex{matches: []pinecone.Match{
		productMatch("choc-1", "Sorvete de Chocolate", 8.90, true, false),
	}}
	svc := NewService(index, testLogger())

	products, err := svc.SearchSimilar(context.Background(), []float32{0.1, 0.2}, 8)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Sorvete de Chocolate" {
		t.Fatalf("unexpected products %+v", products)
	}
	if index.lastReq.Filter == nil {
		t.Fatal("expected active-only filter on similarity search")
	}
	if !index.lastReq.IncludeMetadata {
		t.Fatal("expected metadata to be requested")
	}
}

func TestSearchSimilarPropagatesError(t *testing.T) {
	index := &stubIndex{err: errors.New("boom")}
	svc := NewService(index, testLogger())

	if _, err := svc.SearchSimilar(context.Background(), []float32{0.1}, 8); err == nil {
		t.Fatal("expected error")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Sorvete de Chocolate", "sorvete-de-chocolate"},
		{"Açaí com Granola", "acai-com-granola"},
		{"  Sundae  de Morango!  ", "sundae-de-morango"},
		{"Milkshake 500ml", "milkshake-500ml"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
