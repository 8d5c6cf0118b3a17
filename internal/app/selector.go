// Package app runs the poster loop: locate the daily discussion post, reply
// with a quote, sleep, repeat. It depends on ports only; adapters are injected.
package app

import (
	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
)

// Rand is the source of randomness for quote and interval draws.
// *math/rand/v2.Rand satisfies it; tests pass a seeded one.
type Rand interface {
	IntN(n int) int
}

// SelectQuote picks a quote uniformly at random, avoiding last when the list
// has more than one entry. The list is never modified.
func SelectQuote(rng Rand, quotes *domain.QuoteList, last string) string {
	pool := quotes.CandidatePool(last)

	return pool[rng.IntN(len(pool))]
}
