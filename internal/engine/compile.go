package engine

import (
	"strings"

	"github.com/csg33k/f1040-filler/internal/domain"
	"github.com/csg33k/f1040-filler/internal/errors"
	"github.com/csg33k/f1040-filler/internal/formcfg"
	"github.com/csg33k/f1040-filler/internal/logging"
)

// TagLookup resolves a PDF field id for a section/key pair when the
// document carries no inline _tag sibling. The static form dictionaries
// in the tags package provide the usual implementation.
type TagLookup func(section, key string) (string, bool)

// Deferred W-2 aggregate markers recognized in literal string position.
const (
	MarkerBox1Sum = "get_W2_box_1_sum()"
	MarkerBox2Sum = "get_W2_box_2_sum()"
)

type opKind int

const (
	opLiteral opKind = iota
	opSum
	opSubtract
	opAggregate
)

func (k opKind) String() string {
	switch k {
	case opSum:
		return "sum"
	case opSubtract:
		return "subtract"
	case opAggregate:
		return "aggregate"
	default:
		return "literal"
	}
}

// op is one compiled field operation. Members are classified structurally,
// once, before the walk: a member is a directive only when its key names
// the operation AND its value is a list, so a literal that merely has
// "sum" in its name stays a literal, and a directive key that was already
// overwritten with its result would not be re-dispatched.
type op struct {
	kind    opKind
	section string
	key     string
	tag     string   // empty: no PDF output for this member
	refs    []string // sum/subtract operands in declared order
	box     string   // totals key backing an aggregate marker
	value   any      // literal payload
	target  *formcfg.Member
	err     error // malformed directive, recorded when the walk reaches it
}

// compile flattens the tree's sections into the ordered operation list the
// walk executes. The configuration section and _comment / _tag members
// carry no operations. Directives without any PDF tag are dropped whole,
// with a warning naming the section and key.
func compile(root *formcfg.Object, fallback TagLookup) []op {
	var ops []op
	for si := range root.Members {
		section := root.Members[si].Key
		if section == "configuration" {
			continue
		}
		sec, ok := root.Members[si].Value.(*formcfg.Object)
		if !ok {
			// Top-level scalars are data other fields may reference,
			// not sections to walk.
			continue
		}
		for mi := range sec.Members {
			m := &sec.Members[mi]
			if m.Key == "_comment" || strings.HasSuffix(m.Key, "_tag") {
				continue
			}
			o := classify(m, section, resolveTag(sec, section, m.Key, fallback))
			if o.kind == opSum || o.kind == opSubtract {
				if o.tag == "" {
					logging.Warnf("%s.%s: %s directive has no _tag sibling and no dictionary entry, skipping",
						section, m.Key, o.kind)
					continue
				}
			} else if o.kind == opLiteral && o.tag == "" {
				// Untagged literals are plain data; nothing to execute.
				continue
			}
			ops = append(ops, o)
		}
	}
	return ops
}

func classify(m *formcfg.Member, section, tag string) op {
	o := op{kind: opLiteral, section: section, key: m.Key, tag: tag, target: m, value: m.Value}
	switch v := m.Value.(type) {
	case string:
		switch v {
		case MarkerBox1Sum:
			o.kind = opAggregate
			o.box = domain.TotalBox1
		case MarkerBox2Sum:
			o.kind = opAggregate
			o.box = domain.TotalBox2
		}
	case []any:
		switch {
		case strings.Contains(m.Key, "sum"):
			o.kind = opSum
			o.refs, o.err = refNames(section, m.Key, v)
		case strings.Contains(m.Key, "subtract"):
			o.kind = opSubtract
			o.refs, o.err = refNames(section, m.Key, v)
			if o.err == nil && len(o.refs) < 2 {
				o.err = &errors.MalformedDirectiveError{
					Section: section,
					Key:     m.Key,
					Reason:  "subtract needs a minuend and at least one subtrahend",
				}
			}
		}
	}
	return o
}

func refNames(section, key string, list []any) ([]string, error) {
	if len(list) == 0 {
		return nil, &errors.MalformedDirectiveError{
			Section: section,
			Key:     key,
			Reason:  "empty reference list",
		}
	}
	refs := make([]string, 0, len(list))
	for _, el := range list {
		s, ok := el.(string)
		if !ok {
			return nil, &errors.MalformedDirectiveError{
				Section: section,
				Key:     key,
				Reason:  "reference list must hold key names only",
			}
		}
		refs = append(refs, s)
	}
	return refs, nil
}

// resolveTag prefers the inline _tag sibling and falls back to the static
// form dictionary, supporting both authoring styles.
func resolveTag(sec *formcfg.Object, section, key string, fallback TagLookup) string {
	if v, ok := sec.Get(key + "_tag"); ok {
		s, _ := v.(string)
		return s
	}
	if fallback != nil {
		if t, ok := fallback(section, key); ok {
			return t
		}
	}
	return ""
}
