package scenario

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gravitas-games/stockpile/pkg/inventory"
	"github.com/gravitas-games/stockpile/pkg/transaction"
)

// Result records the outcome of one step.
type Result struct {
	Index  int
	Step   Step
	Err    error
	Failed bool // the outcome did not match Step.Expect
}

// Outcome is "ok" or the failure kind of r.Err.
func (r Result) Outcome() string {
	if r.Err == nil {
		return "ok"
	}
	if kind := inventory.Kind(r.Err); kind != "" {
		return kind
	}
	return "error"
}

// Report is the outcome of a whole scenario.
type Report struct {
	Results    []Result
	Containers *transaction.Provider
}

// Failures counts steps whose outcome did not match their expectation.
func (r *Report) Failures() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed {
			n++
		}
	}
	return n
}

// Runner executes scenario documents through a transaction manager.
type Runner struct {
	manager *transaction.Manager
	log     logrus.FieldLogger
}

// NewRunner creates a runner. A nil logger is replaced by the standard one.
func NewRunner(m *transaction.Manager, l logrus.FieldLogger) *Runner {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Runner{manager: m, log: l}
}

// Run builds the containers of doc and executes its steps in order. Step
// failures are recorded in the report; an error is returned only when the
// document itself is unusable.
func (r *Runner) Run(doc *Document) (*Report, error) {
	provider := transaction.NewProvider()
	for _, cs := range doc.Containers {
		if cs.ID == "" {
			return nil, fmt.Errorf("scenario: container without id")
		}
		if _, err := provider.Container(cs.ID); err == nil {
			return nil, fmt.Errorf("scenario: duplicate container %q", cs.ID)
		}
		if len(cs.Slots) > cs.Capacity {
			return nil, fmt.Errorf("scenario: container %q lists %d slots for capacity %d", cs.ID, len(cs.Slots), cs.Capacity)
		}
		c := inventory.New(cs.Capacity,
			inventory.WithID(cs.ID),
			inventory.WithOwner(cs.Owner),
			inventory.WithContents(stacks(cs.Slots)...),
		)
		if err := provider.AddContainer(c); err != nil {
			return nil, err
		}
	}

	report := &Report{Containers: provider}
	for i, step := range doc.Steps {
		err := r.apply(provider, step)
		if err != nil && !isEngineFailure(err) {
			return nil, fmt.Errorf("scenario: step %d: %w", i+1, err)
		}
		res := Result{Index: i + 1, Step: step, Err: err}
		res.Failed = step.Expect != "" && step.Expect != res.Outcome()

		l := r.log.WithFields(logrus.Fields{"step": res.Index, "op": step.Op, "outcome": res.Outcome()})
		if res.Failed {
			l.WithField("expect", step.Expect).Warn("step did not match expectation")
		} else {
			l.Debug("step finished")
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func (r *Runner) apply(p *transaction.Provider, step Step) error {
	c, err := p.Container(step.Container)
	if err != nil {
		return err
	}
	switch transaction.Op(step.Op) {
	case transaction.OpAdd:
		return forEach(step.Items, func(sp StackSpec) error { return r.manager.AddOne(c, sp.Stack) })
	case transaction.OpRemove:
		return forEach(step.Items, func(sp StackSpec) error { return r.manager.RemoveOne(c, sp.Stack) })
	case transaction.OpSwap:
		other, err := p.Container(step.With)
		if err != nil {
			return err
		}
		return r.manager.Swap(c, other)
	case transaction.OpExchange:
		other, err := p.Container(step.With)
		if err != nil {
			return err
		}
		return r.manager.Exchange(c, stacks(step.Items), other, stacks(step.WithItems))
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// forEach applies fn to every spec and stops at the first error. Each call
// is its own transaction. A step without items still makes one call with an
// absent stack so the manager reports the invalid item.
func forEach(specs []StackSpec, fn func(StackSpec) error) error {
	if len(specs) == 0 {
		return fn(StackSpec{})
	}
	for _, sp := range specs {
		if err := fn(sp); err != nil {
			return err
		}
	}
	return nil
}

func isEngineFailure(err error) bool {
	return inventory.Kind(err) != ""
}
