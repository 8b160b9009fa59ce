package engine

// RuleInput is everything a rule may inspect. Rules are pure functions
// over it; the evaluator owns ordering and concatenation, so no shared
// accumulator exists.
type RuleInput struct {
	Transactions []*Transaction
	Master       []*MasterRecord
	Reconciled   []*ReconciledTransaction
}

type ruleFunc func(in RuleInput) []*Exception

// ruleSet is the fixed rule table in evaluation order. Order matters
// only for grouping the exception report; each rule evaluates its own
// predicate independently and no exception suppresses another.
var ruleSet = []struct {
	def  Rule
	eval ruleFunc
}{
	{Rule{RuleID: RuleUnknownCustomer, Description: descUnknownCustomer, Severity: SeverityBlocking}, evalUnknownCustomer},
	{Rule{RuleID: RuleNegativeAmount, Description: descNegativeAmount, Severity: SeverityHigh}, evalNegativeAmount},
	{Rule{RuleID: RuleUnmatchedRecord, Description: descUnmatchedRecord, Severity: SeverityHigh}, evalUnmatchedRecord},
}

// Rules returns the static rule definition table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(ruleSet))
	for i, r := range ruleSet {
		out[i] = r.def
	}
	return out
}

// EvaluateRules applies the fixed rule set exhaustively and
// concatenates the per-rule exception lists in rule order. Within one
// rule, exceptions follow input transaction order, so identical input
// always yields an identical report.
func EvaluateRules(in RuleInput) []*Exception {
	var out []*Exception
	for _, r := range ruleSet {
		out = append(out, r.eval(in)...)
	}
	return out
}

// evalUnknownCustomer flags transactions whose populated customer id is
// absent from the master set. With the derived master this can never
// fire; it exists for independently sourced master sets.
func evalUnknownCustomer(in RuleInput) []*Exception {
	known := make(map[string]bool, len(in.Master))
	for _, m := range in.Master {
		known[m.CustomerID] = true
	}
	var out []*Exception
	for _, t := range in.Transactions {
		if t.CustomerID == nil || known[*t.CustomerID] {
			continue
		}
		out = append(out, &Exception{
			RuleID:      RuleUnknownCustomer,
			Description: descUnknownCustomer,
			TxnID:       t.TxnID,
			CustomerID:  t.CustomerID,
			Severity:    SeverityBlocking,
		})
	}
	return out
}

// evalNegativeAmount flags negative amounts regardless of match status.
// A missing amount is not negative.
func evalNegativeAmount(in RuleInput) []*Exception {
	var out []*Exception
	for _, t := range in.Transactions {
		if t.Amount == nil || *t.Amount >= 0 {
			continue
		}
		out = append(out, &Exception{
			RuleID:      RuleNegativeAmount,
			Description: descNegativeAmountException,
			TxnID:       t.TxnID,
			CustomerID:  t.CustomerID,
			Severity:    SeverityHigh,
		})
	}
	return out
}

// evalUnmatchedRecord flags every unmatched reconciled row, including
// those with a null customer id, which can never match.
func evalUnmatchedRecord(in RuleInput) []*Exception {
	var out []*Exception
	for _, r := range in.Reconciled {
		if r.MatchStatus != MatchStatusUnmatched {
			continue
		}
		out = append(out, &Exception{
			RuleID:      RuleUnmatchedRecord,
			Description: descUnmatchedRecord,
			TxnID:       r.TxnID,
			CustomerID:  r.CustomerID,
			Severity:    SeverityHigh,
		})
	}
	return out
}
