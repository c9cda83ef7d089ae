package engine

import (
	"github.com/csg33k/f1040-filler/internal/domain"
	"github.com/csg33k/f1040-filler/internal/errors"
	"github.com/csg33k/f1040-filler/internal/formcfg"
	"github.com/csg33k/f1040-filler/internal/logging"
	"github.com/csg33k/f1040-filler/internal/ports"
)

// Processor executes the ordered field walk over a configuration tree.
// It is stateless across runs; all per-run accounting lives in the run's
// accumulator, so one Processor may serve concurrent requests.
type Processor struct {
	fallback TagLookup
}

// New returns a Processor that resolves missing inline tags through
// fallback. A nil fallback disables dictionary lookups.
func New(fallback TagLookup) *Processor {
	return &Processor{fallback: fallback}
}

// Result summarizes a completed walk.
type Result struct {
	FieldsWritten int
	UniqueErrors  int
	TotalErrors   int
}

// Run processes the form tree against the wage statement totals, writing
// resolved values into sink. The tree is mutated in place: directive keys
// and aggregate markers are overwritten with their computed amounts.
//
// Field-level failures are recorded and the walk continues, so one broken
// line never blocks the rest of the form; the single aggregate error comes
// back after the walk when anything was recorded. Only a structurally
// broken tree (no configuration section) aborts immediately.
func (p *Processor) Run(tree *formcfg.Object, totals domain.Totals, sink ports.FieldSink) (*Result, error) {
	if tree == nil {
		return nil, errors.Wrap(errors.ErrMalformedConfig, "no form tree")
	}
	if tree.Object("configuration") == nil {
		return nil, errors.Wrap(errors.ErrMalformedConfig, "configuration section missing or not an object")
	}

	acc := newAccumulator()
	ops := compile(tree, p.fallback)
	written := 0

	// W-2 aggregates resolve before the ordered walk so that sums and
	// subtractions anywhere in the document see their amounts instead of
	// marker strings.
	for i := range ops {
		if ops[i].kind != opAggregate {
			continue
		}
		if err := p.applyAggregate(&ops[i], totals, sink, &written); err != nil {
			p.record(acc, &ops[i], err)
		}
	}

	for i := range ops {
		o := &ops[i]
		if o.err != nil {
			p.record(acc, o, o.err)
			continue
		}
		var err error
		switch o.kind {
		case opLiteral:
			err = p.writeField(sink, o.tag, o.value, &written)
		case opSum:
			err = p.applySum(tree, o, sink, &written)
		case opSubtract:
			err = p.applySubtract(tree, o, sink, &written)
		case opAggregate:
			// Resolved in the pre-pass.
		}
		if err != nil {
			p.record(acc, o, err)
		}
	}

	res := &Result{FieldsWritten: written, UniqueErrors: acc.unique, TotalErrors: acc.total}
	return res, acc.Err()
}

func (p *Processor) applyAggregate(o *op, totals domain.Totals, sink ports.FieldSink, written *int) error {
	if totals == nil {
		return &errors.AggregateUnavailableError{Section: o.section, Key: o.key, Box: o.box}
	}
	amount, ok := totals[o.box]
	if !ok {
		return &errors.AggregateUnavailableError{Section: o.section, Key: o.key, Box: o.box}
	}
	o.target.Value = amount
	return p.writeField(sink, o.tag, amount, written)
}

// applySum folds the referenced values left to right. Absent references,
// explicit nulls and present-but-non-numeric values are excluded from the
// fold; only a list whose every reference is absent is an error.
func (p *Processor) applySum(tree *formcfg.Object, o *op, sink ports.FieldSink, written *int) error {
	total := 0.0
	found := false
	for _, ref := range o.refs {
		v, ok := Find(tree, ref)
		if !ok || v == nil {
			continue
		}
		found = true
		if n, numeric := Numeric(v); numeric {
			total += n
		}
	}
	if !found {
		return &errors.MissingReferenceError{Section: o.section, Key: o.key, Refs: o.refs}
	}
	o.target.Value = total
	return p.writeField(sink, o.tag, total, written)
}

// applySubtract takes the first reference as the mandatory minuend and
// subtracts the rest. Subtrahends are tolerant like sum operands; the
// minuend is not: absent is a missing reference and a present non-numeric
// value is a type failure. Negative results floor to zero in the model
// and show the form's "-0-" marker on paper.
func (p *Processor) applySubtract(tree *formcfg.Object, o *op, sink ports.FieldSink, written *int) error {
	minuend, ok := Find(tree, o.refs[0])
	if !ok {
		return &errors.MissingReferenceError{Section: o.section, Key: o.key, Refs: o.refs[:1]}
	}
	result, numeric := Numeric(minuend)
	if !numeric {
		return &errors.NonNumericValueError{Section: o.section, Key: o.key, Ref: o.refs[0], Value: minuend}
	}
	for _, ref := range o.refs[1:] {
		v, ok := Find(tree, ref)
		if !ok || v == nil {
			continue
		}
		if n, num := Numeric(v); num {
			result -= n
		}
	}
	if result < 0 {
		o.target.Value = 0.0
		return p.writeField(sink, o.tag, NegativeMarker, written)
	}
	o.target.Value = result
	return p.writeField(sink, o.tag, result, written)
}

func (p *Processor) writeField(sink ports.FieldSink, tag string, value any, written *int) error {
	if tag == "" {
		return nil
	}
	if err := sink.Write(tag, value); err != nil {
		return err
	}
	*written++
	return nil
}

func (p *Processor) record(acc *accumulator, o *op, err error) {
	class := errors.ClassificationOf(err)
	if acc.Record(class, errors.DedupKeyOf(err)) {
		logging.Errorw("field processing failed",
			"section", o.section,
			"key", o.key,
			"class", string(class),
			"error", err.Error(),
		)
	}
}
