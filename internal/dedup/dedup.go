package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"

	"github.com/leo88345/Marketlive/internal/model"
)

// Store holds the seen-state. Admit must decide and record atomically: no two
// concurrent calls may both admit the same URL or fingerprint. There is no
// removal; the sets grow for the life of the store.
type Store interface {
	Admit(ctx context.Context, url, fingerprint string) (bool, error)
	Counts(ctx context.Context) (urls int64, fingerprints int64, err error)
}

// Fingerprint digests normalized headline and summary text so near-identical
// articles from different sources collapse to the same key.
func Fingerprint(headline, summary string) string {
	content := strings.ToLower(strings.TrimSpace(headline)) + " " + strings.ToLower(strings.TrimSpace(summary))
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

type Filter struct {
	store Store
}

func NewFilter(store Store) *Filter {
	return &Filter{store: store}
}

// Admit reports whether the article is new. On admission both the URL and the
// content fingerprint are recorded, so a repeat of either is rejected from
// then on. Store errors count as rejection.
func (f *Filter) Admit(ctx context.Context, article model.Article) bool {
	fingerprint := Fingerprint(article.Headline, article.Summary)

	admitted, err := f.store.Admit(ctx, article.URL, fingerprint)
	if err != nil {
		slog.Error("dedup store error", "url", article.URL, "error", err)
		return false
	}
	return admitted
}

func (f *Filter) Counts(ctx context.Context) (int64, int64, error) {
	return f.store.Counts(ctx)
}
