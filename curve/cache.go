package curve

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rustyeddy/fxflow/market"
	"github.com/shopspring/decimal"
)

// Source is anything that can produce forward points for a trade.
type Source interface {
	Interpolate(pair string, valueDate, maturity, reference time.Time) (decimal.Decimal, bool)
}

type cachedPoints struct {
	points decimal.Decimal
	ok     bool
}

// Cached memoises a Source. Trades booked on the same pair and dates share
// one interpolation. Entries never expire; build one per run.
type Cached struct {
	src  Source
	memo *cache.Cache
}

// NewCached wraps src with an empty memo.
func NewCached(src Source) *Cached {
	return &Cached{src: src, memo: cache.New(cache.NoExpiration, 0)}
}

// Interpolate returns the memoised result for the trade's pair and dates,
// asking src on the first lookup. Misses are remembered too.
func (c *Cached) Interpolate(pair string, valueDate, maturity, reference time.Time) (decimal.Decimal, bool) {
	key := strings.Join([]string{
		market.NormalizePair(pair),
		market.FormatDate(market.DateOf(valueDate)),
		market.FormatDate(market.DateOf(maturity)),
		market.FormatDate(market.DateOf(reference)),
	}, "|")

	if v, found := c.memo.Get(key); found {
		cp := v.(cachedPoints)
		return cp.points, cp.ok
	}
	pts, ok := c.src.Interpolate(pair, valueDate, maturity, reference)
	c.memo.Set(key, cachedPoints{points: pts, ok: ok}, cache.NoExpiration)
	return pts, ok
}

// Len is the number of memoised lookups.
func (c *Cached) Len() int { return c.memo.ItemCount() }
