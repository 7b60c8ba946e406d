package curve

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dateReport = `# forward points report
USDCNY
Tenor,Settlement,Bid,Ask,BidOutright,AskOutright
SP,2026/01/05,0,0,7.0100,7.0120
1M,2026/02/04,-100,-90,7.0000,7.0030
3M,2026/04/05,-200,-180
bad,notadate,1,2
BAD,2026/05/05,x,2

JPY/CNY
1M,04/02/2026,-50,-40
3M,short
`

const tenorReport = `EURUSD
Tenor,Date,Bid,Ask
SP,-,0,0
ON,-,1,1
1M,-,9,11
3M,-,19,21
ZZ,-,100,100
GBPUSD
1W,-,x,1
`

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLoadDateAnchored(t *testing.T) {
	t.Parallel()

	st, err := Load(strings.NewReader(dateReport), DateAnchored{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"JPY/CNY", "USDCNY"}, st.Pairs())
	assert.Equal(t, 4, st.Len())

	s, ok := st.Series("USD/CNY")
	require.True(t, ok)
	require.Len(t, s.Points, 3)
	assert.Equal(t, "SP", s.Points[0].Label)
	assert.Equal(t, "2026-02-04", s.Points[1].Settlement.Format("2006-01-02"))
	assert.True(t, d("-95").Equal(s.Points[1].Mid))
	assert.True(t, d("-190").Equal(s.Points[2].Mid))

	jpy, ok := st.Series("JPYCNY")
	require.True(t, ok)
	require.Len(t, jpy.Points, 1)
	assert.Equal(t, "2026-02-04", jpy.Points[0].Settlement.Format("2006-01-02"))
	assert.True(t, d("-45").Equal(jpy.Points[0].Mid))
}

func TestLoadSpotRates(t *testing.T) {
	t.Parallel()

	st, err := Load(strings.NewReader(dateReport), DateAnchored{}, nil)
	require.NoError(t, err)

	spot := st.SpotRates()
	require.Len(t, spot, 1)
	assert.True(t, d("7.011").Equal(spot["USDCNY"]))

	tenor, err := Load(strings.NewReader(tenorReport), TenorAnchored{}, nil)
	require.NoError(t, err)
	assert.Empty(t, tenor.SpotRates())
}

func TestLoadTenorAnchored(t *testing.T) {
	t.Parallel()

	st, err := Load(strings.NewReader(tenorReport), TenorAnchored{}, nil)
	require.NoError(t, err)

	s, ok := st.Series("EUR/USD")
	require.True(t, ok)
	require.Len(t, s.Points, 5)

	days := make(map[string]int)
	for _, p := range s.Points {
		days[p.Label] = p.TenorDays
	}
	assert.Equal(t, map[string]int{"SP": 0, "ON": 1, "1M": 30, "3M": 90, "ZZ": 0}, days)

	gbp, ok := st.Series("GBPUSD")
	require.True(t, ok)
	assert.Empty(t, gbp.Points)
}

func TestLoadIgnoresRowsWithoutPair(t *testing.T) {
	t.Parallel()

	report := "1M,2026/02/04,1,2\nabc\n1M,2026/02/04,1,2\n"
	st, err := Load(strings.NewReader(report), DateAnchored{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
	assert.Empty(t, st.Pairs())
}

func TestLoadSkipsTitleLines(t *testing.T) {
	t.Parallel()

	report := "USDCNY\nForward points as of 2026-01-05\nTenor,Date,Bid,Ask\n1M,-,10,10\n"
	st, err := Load(strings.NewReader(report), TenorAnchored{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"USDCNY"}, st.Pairs())
	s, ok := st.Series("USDCNY")
	require.True(t, ok)
	require.Len(t, s.Points, 1)
	assert.True(t, d("10").Equal(s.Points[0].Mid))
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	st, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"), TenorAnchored{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, "tenor", st.Strategy().Name())
}

func TestPairHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"EURUSD", "EURUSD", true},
		{"EUR/USD", "EUR/USD", true},
		{" USDCNY ", "USDCNY", true},
		{"USDCNY forward points", "", false},
		{"Forward points as of 2026-01-05", "", false},
		{"EUR", "", false},
		{"12345", "", false},
		{"USD1M", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := pairHeader(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrategyByName(t *testing.T) {
	t.Parallel()

	s, err := StrategyByName("tenor")
	require.NoError(t, err)
	assert.Equal(t, "tenor", s.Name())

	s, err = StrategyByName("")
	require.NoError(t, err)
	assert.Equal(t, "date", s.Name())

	_, err = StrategyByName("spline")
	assert.Error(t, err)
}
