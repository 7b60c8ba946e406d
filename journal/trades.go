package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rustyeddy/fxflow/cashflow"
	"github.com/rustyeddy/fxflow/market"
)

// Trade file column names.
const (
	ColDealID    = "Deal Id"
	ColDealType  = "Type of Deal"
	ColSecurity  = "Security"
	ColAmount1   = "Amount1"
	ColAmount2   = "Amount2"
	ColValueDate = "Value Date"
	ColMatDate   = "Mat. Date"
	ColRatePrice = "Rate/Price"
	ColFolder    = "Folder"
)

const bom = "\ufeff"

// LoadTrades reads the trade CSV at path, dropping rows booked in one of the
// ignored folders.
func LoadTrades(path string, ignoreFolders []string) ([]cashflow.Trade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trades: %w", err)
	}
	defer f.Close()

	trades, err := ReadTrades(f, ignoreFolders)
	if err != nil {
		return nil, fmt.Errorf("read trades %s: %w", path, err)
	}
	return trades, nil
}

// ReadTrades parses a trade CSV with a named header row. Numbers that do not
// parse become zero and dates that do not parse are left unset; only a
// broken CSV stream is an error.
func ReadTrades(r io.Reader, ignoreFolders []string) ([]cashflow.Trade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		cols[strings.TrimSpace(h)] = i
	}

	ignored := make(map[string]bool, len(ignoreFolders))
	for _, f := range ignoreFolders {
		if f = strings.TrimSpace(f); f != "" {
			ignored[f] = true
		}
	}

	var trades []cashflow.Trade
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		folder := get(ColFolder)
		if ignored[folder] {
			continue
		}
		t := cashflow.Trade{
			DealID:    get(ColDealID),
			DealType:  cashflow.ParseDealType(get(ColDealType)),
			Pair:      get(ColSecurity),
			Amount1:   market.ParseAmount(get(ColAmount1)),
			Amount2:   market.ParseAmount(get(ColAmount2)),
			RatePrice: market.ParseAmount(get(ColRatePrice)),
			Folder:    folder,
		}
		t.ValueDate, _ = market.ParseTradeDate(get(ColValueDate))
		t.MaturityDate, _ = market.ParseTradeDate(get(ColMatDate))
		trades = append(trades, t)
	}
	return trades, nil
}
