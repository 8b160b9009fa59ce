package engine

import (
	"context"
	"fmt"
	"time"
)

// RunState holds the shared state threaded through the pipeline steps.
type RunState struct {
	Input        *RawInput
	Transactions []*Transaction
	Master       []*MasterRecord
	Quality      *QualityReport
	Reconciled   []*ReconciledTransaction
	Exceptions   []*Exception
}

// Step is a single stage of the reconciliation pipeline.
type Step interface {
	Execute(ctx context.Context, state *RunState) error
}

// NormalizeStep derives canonical transactions from the raw feed.
type NormalizeStep struct {
	Normalizer *Normalizer
}

func (s *NormalizeStep) Execute(_ context.Context, state *RunState) error {
	txns, err := s.Normalizer.Normalize(state.Input)
	if err != nil {
		return err
	}
	state.Transactions = txns
	return nil
}

// DeriveMasterStep obtains the master set from the configured provider.
type DeriveMasterStep struct {
	Provider MasterProvider
}

func (s *DeriveMasterStep) Execute(ctx context.Context, state *RunState) error {
	master, err := s.Provider.Master(ctx, state.Transactions)
	if err != nil {
		return fmt.Errorf("derive master: %w", err)
	}
	state.Master = master
	return nil
}

// AuditStep computes the data-quality report over both entity sets.
type AuditStep struct {
	Now func() time.Time
}

func (s *AuditStep) Execute(_ context.Context, state *RunState) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	state.Quality = Audit(state.Transactions, state.Master, now())
	return nil
}

// ReconcileStep left-joins transactions against the master set.
type ReconcileStep struct{}

func (s *ReconcileStep) Execute(_ context.Context, state *RunState) error {
	reconciled, err := Reconcile(state.Transactions, state.Master)
	if err != nil {
		return err
	}
	state.Reconciled = reconciled
	return nil
}

// EvaluateRulesStep produces the exception report.
type EvaluateRulesStep struct{}

func (s *EvaluateRulesStep) Execute(_ context.Context, state *RunState) error {
	state.Exceptions = EvaluateRules(RuleInput{
		Transactions: state.Transactions,
		Master:       state.Master,
		Reconciled:   state.Reconciled,
	})
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially, stopping at the first failure.
func (p *Pipeline) Execute(ctx context.Context, state *RunState) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("reconciliation step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// Options configure a reconciliation run.
type Options struct {
	// DayFirst selects the day-before-month timestamp convention.
	DayFirst bool

	// Master overrides the master-record source. Nil derives the set
	// from the normalized feed itself.
	Master MasterProvider

	// Now overrides the data-quality report timestamp, mainly for tests.
	Now func() time.Time
}

// NewReconciliationPipeline assembles the standard five-step pipeline:
// normalize, derive master, audit, reconcile, evaluate rules.
func NewReconciliationPipeline(opts Options) *Pipeline {
	provider := opts.Master
	if provider == nil {
		provider = DerivedMaster{}
	}
	return NewPipeline(
		&NormalizeStep{Normalizer: &Normalizer{DayFirst: opts.DayFirst}},
		&DeriveMasterStep{Provider: provider},
		&AuditStep{Now: opts.Now},
		&ReconcileStep{},
		&EvaluateRulesStep{},
	)
}

// Result is everything a reconciliation run produces, in the shape the
// reporting collaborators consume.
type Result struct {
	Transactions []*Transaction
	Master       []*MasterRecord
	Rules        []Rule
	Quality      *QualityReport
	Reconciled   []*ReconciledTransaction
	Exceptions   []*Exception
}

// Summary condenses a run for display and logging.
type Summary struct {
	Total      int
	Matched    int
	Unmatched  int
	Exceptions int
}

func (r *Result) Summary() Summary {
	s := Summary{Total: len(r.Transactions), Exceptions: len(r.Exceptions)}
	for _, row := range r.Reconciled {
		if row.MatchStatus == MatchStatusMatched {
			s.Matched++
		} else {
			s.Unmatched++
		}
	}
	return s
}

// Run executes the full reconciliation over a raw feed.
func Run(ctx context.Context, in *RawInput, opts Options) (*Result, error) {
	state := &RunState{Input: in}
	if err := NewReconciliationPipeline(opts).Execute(ctx, state); err != nil {
		return nil, err
	}
	return &Result{
		Transactions: state.Transactions,
		Master:       state.Master,
		Rules:        Rules(),
		Quality:      state.Quality,
		Reconciled:   state.Reconciled,
		Exceptions:   state.Exceptions,
	}, nil
}
