package app

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seeded returns a deterministic random source.
func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func quoteList(t *testing.T, items ...string) *domain.QuoteList {
	t.Helper()

	list, err := domain.NewQuoteList(items)
	require.NoError(t, err)

	return list
}

// fixedRand always returns the same index, clamped to n.
type fixedRand int

func (f fixedRand) IntN(n int) int {
	return min(int(f), n-1)
}
