package domain

// QuoteList is the ordered set of quotes the bot draws from.
// It is built once at startup and never mutated afterwards.
type QuoteList struct {
	items []string
}

// NewQuoteList copies items into a QuoteList.
// Returns a validation error if items is empty.
func NewQuoteList(items []string) (*QuoteList, error) {
	if len(items) == 0 {
		return nil, NewValidationError("quotes", "at least one quote is required")
	}

	owned := make([]string, len(items))
	copy(owned, items)

	return &QuoteList{items: owned}, nil
}

// Len returns the number of quotes, duplicates included.
func (l *QuoteList) Len() int {
	return len(l.items)
}

// Items returns a copy of the quotes in load order.
func (l *QuoteList) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)

	return out
}

// CandidatePool returns the quotes eligible for the next draw.
//
// When exclude is non-empty and the list holds more than one quote, the first
// entry equal to exclude is left out. An exclude value that is not in the list
// leaves the pool equal to the full list. The receiver is never modified.
func (l *QuoteList) CandidatePool(exclude string) []string {
	return CandidatePool(l.items, exclude)
}

// CandidatePool is the slice form of QuoteList.CandidatePool.
func CandidatePool(quotes []string, exclude string) []string {
	pool := make([]string, 0, len(quotes))
	if exclude == "" || len(quotes) <= 1 {
		return append(pool, quotes...)
	}

	removed := false
	for _, q := range quotes {
		if !removed && q == exclude {
			removed = true
			continue
		}
		pool = append(pool, q)
	}

	return pool
}
