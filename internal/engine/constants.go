package engine

// Rule identifiers of the fixed reconciliation rule set.
const (
	RuleUnknownCustomer = "R003"
	RuleNegativeAmount  = "R004"
	RuleUnmatchedRecord = "R005"
)

// Rule descriptions. The exception report uses the longer R004 wording;
// the static rule table keeps the short one.
const (
	descUnknownCustomer         = "Customer not found in master"
	descNegativeAmount          = "Negative transaction amount"
	descNegativeAmountException = "Negative transaction amount (return or cancellation)"
	descUnmatchedRecord         = "Unmatched transaction record"
)

// Canonical (trimmed, lowercased) column names recognized in the raw feed.
const (
	colInvoice       = "invoice"
	colStockCode     = "stockcode"
	colDescription   = "description"
	colQuantity      = "quantity"
	colInvoiceDate   = "invoicedate"
	colPrice         = "price"
	colCustomerID    = "customer id"
	colCustomerIDAlt = "customer_id"
	colCountry       = "country"
)

// Output table names used by the data-quality report.
const (
	TableTransactions  = "transactions"
	TableMasterRecords = "master_records"
)
