package payouts

const (
	// DefaultPoolPercent is the slice of monthly net subscription
	// revenue distributed to authors.
	DefaultPoolPercent = 30.0

	// CompletionBonusUnits is added per finished read on top of the
	// minutes actually spent in the book.
	CompletionBonusUnits = 5
)

// BookEngagement aggregates one book's eligible reading in a period.
type BookEngagement struct {
	BookID      uint
	AuthorID    uint
	Minutes     int
	Completions int
}

// Units is the weight a book carries in the pool split.
func (e BookEngagement) Units() int {
	return e.Minutes + e.Completions*CompletionBonusUnits
}

// Share is one book's cut of the monthly pool, credited to its author.
type Share struct {
	AuthorID         uint
	BookID           uint
	AmountCents      int64
	Units            int
	PoolSharePercent float64
}

// PoolCents computes the distributable pool for a period.
func PoolCents(netRevenueCents int64, poolPercent float64) int64 {
	if netRevenueCents <= 0 || poolPercent <= 0 {
		return 0
	}
	return int64(float64(netRevenueCents) * poolPercent / 100)
}

// DistributePool splits poolCents across books in proportion to their
// engagement units. Amounts floor to whole cents, so the returned
// shares never sum past the pool; shares that floor to zero are
// dropped. Pure, and deterministic for a given input order.
func DistributePool(poolCents int64, engagement []BookEngagement) []Share {
	totalUnits := 0
	for _, e := range engagement {
		totalUnits += e.Units()
	}
	if poolCents <= 0 || totalUnits == 0 {
		return nil
	}

	shares := make([]Share, 0, len(engagement))
	for _, e := range engagement {
		units := e.Units()
		if units == 0 {
			continue
		}
		amount := poolCents * int64(units) / int64(totalUnits)
		if amount == 0 {
			continue
		}
		shares = append(shares, Share{
			AuthorID:         e.AuthorID,
			BookID:           e.BookID,
			AmountCents:      amount,
			Units:            units,
			PoolSharePercent: float64(units) / float64(totalUnits) * 100,
		})
	}
	return shares
}
