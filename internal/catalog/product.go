package catalog

import (
	"strings"

	"github.com/gelaboca/gelaboca-backend/pkg/pinecone"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as stored in the vector index. The JSON field
// names follow the index metadata schema, which is also the wire contract of
// the listing endpoints.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"nome"`
	Image       string    `json:"imagem"`
	Category    string    `json:"categoria"`
	Code        string    `json:"codigo"`
	Price       float64   `json:"valor"`
	Description string    `json:"descricao"`
	Ingredients []string  `json:"ingredientes"`
	Addons      []string  `json:"adicionais"`
	Active      bool      `json:"ativado"`
	Promotional bool      `json:"promocional"`
	Embedding   []float32 `json:"textoEmbedding,omitempty"`
}

// PriceDecimal returns the price as a decimal for money arithmetic.
func (p Product) PriceDecimal() decimal.Decimal {
	return decimal.NewFromFloat(p.Price)
}

// Slug returns a URL-safe identifier derived from the product name.
func (p Product) Slug() string {
	return Slugify(p.Name)
}

// ProductFromMatch maps an index match's metadata bag onto a Product.
func ProductFromMatch(match pinecone.Match) Product {
	meta := match.Metadata
	return Product{
		ID:          match.ID,
		Name:        metaString(meta, "nome"),
		Image:       metaString(meta, "imagem"),
		Category:    metaString(meta, "categoria"),
		Code:        metaString(meta, "codigo"),
		Price:       metaFloat(meta, "valor"),
		Description: metaString(meta, "descricao"),
		Ingredients: metaStrings(meta, "ingredientes"),
		Addons:      metaStrings(meta, "adicionais"),
		Active:      metaBool(meta, "ativado"),
		Promotional: metaBool(meta, "promocional"),
		Embedding:   metaVector(meta, "textoEmbedding"),
	}
}

// Slugify lowercases, strips Portuguese diacritics and joins words with
// hyphens, dropping anything that is not alphanumeric.
func Slugify(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	lowered = strings.Map(stripDiacritic, lowered)

	var b strings.Builder
	lastHyphen := true
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func stripDiacritic(r rune) rune {
	switch r {
	case 'á', 'à', 'â', 'ã', 'ä':
		return 'a'
	case 'é', 'è', 'ê', 'ë':
		return 'e'
	case 'í', 'ì', 'î', 'ï':
		return 'i'
	case 'ó', 'ò', 'ô', 'õ', 'ö':
		return 'o'
	case 'ú', 'ù', 'û', 'ü':
		return 'u'
	case 'ç':
		return 'c'
	case 'ñ':
		return 'n'
	}
	return r
}

func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if value, ok := meta[key].(string); ok {
		return value
	}
	return ""
}

func metaFloat(meta map[string]any, key string) float64 {
	if meta == nil {
		return 0
	}
	switch value := meta[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case string:
		// The index stores some numeric fields as strings.
		parsed, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return 0
		}
		f, _ := parsed.Float64()
		return f
	}
	return 0
}

func metaBool(meta map[string]any, key string) bool {
	if meta == nil {
		return false
	}
	if value, ok := meta[key].(bool); ok {
		return value
	}
	return false
}

func metaStrings(meta map[string]any, key string) []string {
	if meta == nil {
		return nil
	}
	raw, ok := meta[key].([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s, ok := entry.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

func metaVector(meta map[string]any, key string) []float32 {
	if meta == nil {
		return nil
	}
	raw, ok := meta[key].([]any)
	if !ok {
		return nil
	}
	vector := make([]float32, 0, len(raw))
	for _, entry := range raw {
		f, ok := entry.(float64)
		if !ok {
			return nil
		}
		vector = append(vector, float32(f))
	}
	return vector
}
