package engine_test

import (
	"encoding/json"
	"testing"

	"github.com/csg33k/f1040-filler/internal/engine"
)

func TestFindDirectMember(t *testing.T) {
	tree := parse(t, `{"L9": 5000}`)

	v, ok := engine.Find(tree, "L9")
	if !ok {
		t.Fatal("L9: want found")
	}
	if n := v.(json.Number); n.String() != "5000" {
		t.Errorf("L9: want 5000, got %v", v)
	}
}

func TestFindDescendsInDeclaredOrder(t *testing.T) {
	// Both branches define target; the first declared branch wins.
	tree := parse(t, `{
		"first": {"target": 1},
		"second": {"target": 2}
	}`)

	v, ok := engine.Find(tree, "target")
	if !ok {
		t.Fatal("target: want found")
	}
	if n, _ := engine.Numeric(v); n != 1 {
		t.Errorf("target: want value from first branch, got %v", v)
	}
}

func TestFindShallowShadowsDeep(t *testing.T) {
	tree := parse(t, `{
		"outer": {
			"nested": {"amount": 99},
			"amount": 10
		}
	}`)

	v, ok := engine.Find(tree.Object("outer"), "amount")
	if !ok {
		t.Fatal("amount: want found")
	}
	// The direct member wins even though the nested occurrence is
	// declared first.
	if n, _ := engine.Numeric(v); n != 10 {
		t.Errorf("amount: want shallow 10, got %v", v)
	}
}

func TestFindSearchesInsideArrays(t *testing.T) {
	tree := parse(t, `{
		"entries": [
			{"box_1": 100},
			{"box_9": 7}
		]
	}`)

	v, ok := engine.Find(tree, "box_9")
	if !ok {
		t.Fatal("box_9: want found inside array element")
	}
	if n, _ := engine.Numeric(v); n != 7 {
		t.Errorf("box_9: want 7, got %v", v)
	}
}

func TestFindNullVersusAbsent(t *testing.T) {
	tree := parse(t, `{"section": {"empty": null}}`)

	v, ok := engine.Find(tree, "empty")
	if !ok {
		t.Error("empty: explicit null must report found")
	}
	if v != nil {
		t.Errorf("empty: want nil value, got %v", v)
	}

	if _, ok := engine.Find(tree, "ghost"); ok {
		t.Error("ghost: want not found")
	}
}

func TestFindNilTree(t *testing.T) {
	if _, ok := engine.Find(nil, "anything"); ok {
		t.Error("nil tree: want not found")
	}
}
