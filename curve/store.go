package curve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/rustyeddy/fxflow/market"
	"github.com/rustyeddy/fxflow/pkg/logging"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Store is the parsed forward points report. It is read-only once loaded.
type Store struct {
	strategy Strategy
	series   map[string]*Series
	spot     map[string]decimal.Decimal
}

// NewStore returns an empty store that resolves horizons with s.
func NewStore(s Strategy) *Store {
	if s == nil {
		s = DateAnchored{}
	}
	return &Store{
		strategy: s,
		series:   make(map[string]*Series),
		spot:     make(map[string]decimal.Decimal),
	}
}

// LoadFile loads a report from disk. A missing file is an empty store.
func LoadFile(path string, s Strategy, log logrus.FieldLogger) (*Store, error) {
	log = logging.OrDiscard(log)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("path", path).Warn("points report not found, continuing without curve")
		return NewStore(s), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open points report: %w", err)
	}
	defer f.Close()

	return Load(f, s, log)
}

// loadState is carried from line to line while scanning a report.
type loadState struct {
	pair string
	line int
}

// Load parses a report. Rows that do not parse are skipped.
func Load(r io.Reader, s Strategy, log logrus.FieldLogger) (*Store, error) {
	st := NewStore(s)
	log = logging.OrDiscard(log).WithField("strategy", st.strategy.Name())

	sc := bufio.NewScanner(r)
	acc := loadState{}
	for sc.Scan() {
		acc = st.fold(acc, sc.Text(), log)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read points report: %w", err)
	}

	log.WithFields(logrus.Fields{
		"pairs":  len(st.series),
		"points": st.Len(),
	}).Debug("loaded points report")
	return st, nil
}

func (st *Store) fold(acc loadState, raw string, log logrus.FieldLogger) loadState {
	acc.line++
	line := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
	if line == "" || strings.HasPrefix(line, "#") {
		return acc
	}

	if !strings.Contains(line, ",") {
		if pair, ok := pairHeader(line); ok {
			acc.pair = pair
			st.ensure(pair)
		}
		return acc
	}

	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if fields[0] == "Tenor" {
		return acc
	}
	if acc.pair == "" || len(fields) < 4 {
		return acc
	}

	rowLog := log.WithFields(logrus.Fields{"line": acc.line, "pair": acc.pair})
	if sq, ok := st.strategy.(spotQuoter); ok {
		if rate, ok := sq.SpotRate(fields); ok {
			st.spot[acc.pair] = rate
		}
	}

	p, err := st.strategy.ParseRow(fields)
	if err != nil {
		rowLog.WithError(err).Debug("skipping points row")
		return acc
	}
	if ta, ok := st.strategy.(TenorAnchored); ok && !ta.Known(p.Label) {
		rowLog.WithField("tenor", p.Label).Debug("unknown tenor, horizon 0")
	}

	s := st.ensure(acc.pair)
	s.Points = append(s.Points, p)
	return acc
}

// pairHeader recognises "EURUSD" and "EUR/USD" style header lines. Any other
// line without a comma, such as a report title, is not a header.
func pairHeader(line string) (string, bool) {
	h := strings.TrimSpace(line)
	if strings.Contains(h, market.PairSeparator) {
		return h, true
	}
	if len([]rune(h)) < 5 {
		return "", false
	}
	for _, r := range h {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	return h, true
}

func (st *Store) ensure(pair string) *Series {
	key := market.NormalizePair(pair)
	s, ok := st.series[key]
	if !ok {
		s = &Series{Pair: pair}
		st.series[key] = s
	}
	return s
}

// Strategy returns the horizon strategy the store was built with.
func (st *Store) Strategy() Strategy { return st.strategy }

// Series returns the points for pair in any of its spellings.
func (st *Store) Series(pair string) (Series, bool) {
	s, ok := st.series[market.NormalizePair(pair)]
	if !ok {
		return Series{}, false
	}
	return *s, true
}

// Pairs lists the report's pairs as written in their headers, sorted.
func (st *Store) Pairs() []string {
	out := make([]string, 0, len(st.series))
	for _, s := range st.series {
		out = append(out, s.Pair)
	}
	sort.Strings(out)
	return out
}

// Len is the total number of points across all pairs.
func (st *Store) Len() int {
	n := 0
	for _, s := range st.series {
		n += len(s.Points)
	}
	return n
}

// SpotRates returns the outright spot mid of every pair whose report carried
// an SP row with outright quotes, keyed by the pair header.
func (st *Store) SpotRates() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(st.spot))
	for k, v := range st.spot {
		out[k] = v
	}
	return out
}
