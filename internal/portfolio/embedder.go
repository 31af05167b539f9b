package portfolio

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Embedder turns texts into vectors, one per text in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

const defaultHashDims = 512

// HashEmbedder is an offline embedder: lower-cased word tokens hashed into a fixed
// number of buckets, L2 normalized. Texts sharing vocabulary score close.
type HashEmbedder struct {
	Dims int
}

// Embed implements Embedder.
func (h HashEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dims := h.Dims
	if dims <= 0 {
		dims = defaultHashDims
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = hashVector(text, dims)
	}
	return out, nil
}

func hashVector(text string, dims int) []float32 {
	vec := make([]float32, dims)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		hasher := fnv.New32a()
		_, _ = hasher.Write([]byte(tok))
		vec[hasher.Sum32()%uint32(dims)]++
	}
	normalize(vec)
	return vec
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
