package engine

import (
	"time"
)

// MatchStatus is the outcome of joining a transaction against the
// master set.
type MatchStatus string

const (
	MatchStatusMatched   MatchStatus = "MATCHED"
	MatchStatusUnmatched MatchStatus = "UNMATCHED"
)

// Severity is the triage priority of a rule violation. It never alters
// evaluation; downstream consumers decide what to do with it.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityHigh     Severity = "high"
)

// AccountStatusActive is the status assigned to every derived master record.
const AccountStatusActive = "ACTIVE"

// Row is one raw feed row: raw column name to raw cell value. Empty
// cells are nulls.
type Row map[string]string

// RawInput is a fully materialized raw feed. Columns carries the header
// in source order so the normalizer can detect structurally missing
// columns even when the feed has zero rows.
type RawInput struct {
	Columns []string
	Rows    []Row
}

// Transaction is one canonical line item of a sale or return. The
// normalizer creates it from exactly one raw row; it is immutable
// afterwards. Pointer fields are nil when the source value was absent
// or failed coercion.
type Transaction struct {
	TxnID       string
	CustomerID  *string
	Amount      *float64
	TxnDate     *time.Time
	Invoice     string
	StockCode   string
	Description string
	Country     string
}

// MasterRecord is a known customer account. CustomerID is unique within
// a master set by construction; a duplicate is a data-quality defect.
type MasterRecord struct {
	CustomerID    string
	CustomerName  string
	AccountStatus string
}

// Rule is a static reconciliation rule definition. The rule set is
// fixed at package init and never derived from data.
type Rule struct {
	RuleID      string
	Description string
	Severity    Severity
}

// Exception is one rule violation instance. Only the rule evaluator
// creates these; a single transaction may carry several.
type Exception struct {
	RuleID      string
	Description string
	TxnID       string
	CustomerID  *string
	Severity    Severity
}

// ReconciledTransaction is a transaction annotated with its match
// outcome and, when matched, the joined master fields.
type ReconciledTransaction struct {
	Transaction
	CustomerName  *string
	AccountStatus *string
	MatchStatus   MatchStatus
}

// Finding is one (table, column) null-count observation.
type Finding struct {
	Column    string
	NullCount int
	Table     string
	Timestamp time.Time
}

// QualityReport carries the per-column null counts plus the duplicate
// key diagnostics over both entity sets.
type QualityReport struct {
	Findings []Finding

	// Keys appearing on more than one record. Both lists are expected
	// to stay empty by construction; anything here is an upstream
	// defect to surface, not to repair.
	DuplicateMasterIDs []string
	DuplicateTxnIDs    []string
}
