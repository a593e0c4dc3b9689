package translate

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog"
)

// Translator satisfies ports.TranslatorPort: it never fails and always returns
// one string per input. Successful translations are cached per target.
type Translator struct {
	client  BatchClient
	timeout time.Duration
	ttl     time.Duration
	cache   *ristretto.Cache
	log     zerolog.Logger
}

type Option func(*Translator)

// WithCache enables caching for ttl. A zero ttl disables it.
func WithCache(ttl time.Duration) Option {
	return func(t *Translator) { t.ttl = ttl }
}

func WithLogger(log zerolog.Logger) Option {
	return func(t *Translator) { t.log = log }
}

// New returns a translator over client. A nil client yields the identity
// translator.
func New(client BatchClient, timeout time.Duration, opts ...Option) (*Translator, error) {
	t := &Translator{client: client, timeout: timeout, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	if client != nil && t.ttl > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: 100_000,
			MaxCost:     8 << 20,
			BufferItems: 64,
		})
		if err != nil {
			return nil, err
		}
		t.cache = cache
	}
	return t, nil
}

func (t *Translator) Translate(ctx context.Context, texts []string, target string) []string {
	out := append([]string{}, texts...)
	target = strings.TrimSpace(target)
	if t.client == nil || len(texts) == 0 || target == "" {
		return out
	}

	// only send what the cache does not already know
	var (
		missing []string
		slots   []int
	)
	for i, text := range texts {
		if v, ok := t.cached(target, text); ok {
			out[i] = v
			continue
		}
		missing = append(missing, text)
		slots = append(slots, i)
	}
	if len(missing) == 0 {
		return out
	}

	callCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	translated, err := t.client.TranslateBatch(callCtx, missing, target)
	if err != nil {
		t.log.Warn().Err(err).Str("target", target).Int("texts", len(missing)).Msg("translation failed, returning original text")
		return append([]string{}, texts...)
	}
	if len(translated) != len(missing) {
		t.log.Warn().Int("want", len(missing)).Int("got", len(translated)).Msg("translation length mismatch, returning original text")
		return append([]string{}, texts...)
	}

	for j, v := range translated {
		out[slots[j]] = v
		t.store(target, missing[j], v)
	}
	return out
}

// Close releases the cache goroutines.
func (t *Translator) Close() {
	if t.cache != nil {
		t.cache.Close()
	}
}

func cacheKey(target, text string) string {
	return target + "|" + text
}

func (t *Translator) cached(target, text string) (string, bool) {
	if t.cache == nil {
		return "", false
	}
	v, ok := t.cache.Get(cacheKey(target, text))
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (t *Translator) store(target, text, translated string) {
	if t.cache == nil {
		return
	}
	t.cache.SetWithTTL(cacheKey(target, text), translated, int64(len(text)+len(translated)), t.ttl)
}
