package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/dvloznov/retail-recon/internal/engine"
)

// WriteSummary renders the run totals as a console table.
func WriteSummary(w io.Writer, result *engine.Result) {
	s := result.Summary()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Total Transactions", strconv.Itoa(s.Total)})
	table.Append([]string{"Matched", strconv.Itoa(s.Matched)})
	table.Append([]string{"Unmatched", strconv.Itoa(s.Unmatched)})
	table.Append([]string{"Total Exceptions", strconv.Itoa(s.Exceptions)})
	table.Render()
}

// WriteSamples renders the first few reconciled rows and exceptions so
// a run can be eyeballed without opening the output files.
func WriteSamples(w io.Writer, result *engine.Result, n int) {
	recon := tablewriter.NewWriter(w)
	recon.SetHeader([]string{"txn_id", "customer_id", "amount", "match_status"})
	for i, row := range result.Reconciled {
		if i >= n {
			break
		}
		recon.Append([]string{
			row.TxnID,
			deref(row.CustomerID),
			formatAmount(row.Amount),
			string(row.MatchStatus),
		})
	}
	recon.Render()

	excs := tablewriter.NewWriter(w)
	excs.SetHeader([]string{"rule_id", "txn_id", "customer_id", "severity"})
	for i, e := range result.Exceptions {
		if i >= n {
			break
		}
		excs.Append([]string{e.RuleID, e.TxnID, deref(e.CustomerID), string(e.Severity)})
	}
	excs.Render()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatAmount(a *float64) string {
	if a == nil {
		return ""
	}
	return strconv.FormatFloat(*a, 'f', 2, 64)
}
