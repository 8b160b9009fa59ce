package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Normalizer turns raw feed rows into canonical transactions.
//
// DayFirst selects the day-before-month timestamp convention of the
// source feed. It is deliberately explicit rather than an implicit
// default: a wrong setting silently corrupts txn_date without any
// parse error to catch it.
type Normalizer struct {
	DayFirst bool
}

// requiredColumns must all be present in the feed schema. The customer
// column is satisfied by either of its recognized spellings.
var requiredColumns = []string{colInvoice, colQuantity, colInvoiceDate, colPrice, colCustomerID}

// Normalize converts every raw row into a Transaction, preserving input
// order. Rows are never discarded: cell-level coercion failures become
// nil fields and flow into the data-quality statistics. A schema
// missing a required column entirely is a hard error.
func (n *Normalizer) Normalize(in *RawInput) ([]*Transaction, error) {
	canon := make(map[string]string, len(in.Columns))
	for _, c := range in.Columns {
		canon[canonicalColumn(c)] = c
	}
	if err := checkRequiredColumns(canon); err != nil {
		return nil, err
	}

	txns := make([]*Transaction, 0, len(in.Rows))
	for i, row := range in.Rows {
		cell := func(col string) string {
			raw, ok := canon[col]
			if !ok {
				return ""
			}
			return strings.TrimSpace(row[raw])
		}
		customerCell := cell(colCustomerID)
		if _, ok := canon[colCustomerID]; !ok {
			customerCell = cell(colCustomerIDAlt)
		}

		invoice := cell(colInvoice)
		quantity := coerceFloat(cell(colQuantity))
		price := coerceFloat(cell(colPrice))
		var amount *float64
		if quantity != nil && price != nil {
			a := *quantity * *price
			amount = &a
		}

		txns = append(txns, &Transaction{
			TxnID:       invoice + "-" + strconv.Itoa(i),
			CustomerID:  normalizeCustomerID(customerCell),
			Amount:      amount,
			TxnDate:     n.parseDate(cell(colInvoiceDate)),
			Invoice:     invoice,
			StockCode:   cell(colStockCode),
			Description: cell(colDescription),
			Country:     cell(colCountry),
		})
	}
	return txns, nil
}

func canonicalColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func checkRequiredColumns(canon map[string]string) error {
	var missing []string
	for _, col := range requiredColumns {
		if col == colCustomerID {
			if _, ok := canon[colCustomerID]; ok {
				continue
			}
			if _, ok := canon[colCustomerIDAlt]; ok {
				continue
			}
			missing = append(missing, col)
			continue
		}
		if _, ok := canon[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("normalize: raw feed is missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// coerceFloat parses a numeric cell. Anything unparsable is a missing
// value, not an error.
func coerceFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &f
}

// normalizeCustomerID reduces a raw customer identifier to the string
// form of its integer value ("17850.0" becomes "17850"). Identifiers
// that carry no integer value are treated as missing, so the row stays
// in the run and surfaces through the null counts instead of crashing it.
func normalizeCustomerID(raw string) *string {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	s := strconv.FormatInt(int64(f), 10)
	return &s
}

var dayFirstFormats = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var monthFirstFormats = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (n *Normalizer) parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	formats := monthFirstFormats
	if n.DayFirst {
		formats = dayFirstFormats
	}
	for _, f := range formats {
		if t, err := time.Parse(f, raw); err == nil {
			return &t
		}
	}
	return nil
}
