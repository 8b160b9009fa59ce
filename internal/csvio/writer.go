package csvio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/dvloznov/retail-recon/internal/engine"
)

// Output file names consumed by the reporting collaborators.
const (
	TransactionsFile   = "transactions.csv"
	MasterRecordsFile  = "master_records.csv"
	RulesFile          = "reconciliation_rules.csv"
	QualityFile        = "data_quality_report.csv"
	ReconciliationFile = "reconciliation_results.csv"
	ExceptionsFile     = "exceptions_report.csv"
)

// WriteResult writes all six output tables of a run into dir, creating
// it if needed, and returns the written paths in a fixed order.
func WriteResult(dir string, result *engine.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	tables := []struct {
		name string
		rows interface{}
	}{
		{TransactionsFile, TransactionRecords(result.Transactions)},
		{MasterRecordsFile, CustomerRecords(result.Master)},
		{RulesFile, RuleRecords(result.Rules)},
		{QualityFile, QualityRecords(result.Quality)},
		{ReconciliationFile, ReconciliationRecords(result.Reconciled)},
		{ExceptionsFile, ExceptionRecords(result.Exceptions)},
	}

	written := make([]string, 0, len(tables))
	for _, tbl := range tables {
		path := filepath.Join(dir, tbl.name)
		if err := writeCSV(path, tbl.rows); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeCSV(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := gocsv.Marshal(rows, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
