package engine

import "github.com/csg33k/f1040-filler/internal/formcfg"

// Find searches the tree for key, depth first in declared order. A direct
// member of the current node wins over any occurrence deeper in its
// subtree, so shallow keys shadow same-named keys in nested sections.
//
// The boolean reports membership: a found JSON null comes back as
// (nil, true) so callers can tell an explicit null from a missing key.
func Find(root *formcfg.Object, key string) (any, bool) {
	if root == nil {
		return nil, false
	}
	if v, ok := root.Get(key); ok {
		return v, true
	}
	for i := range root.Members {
		if v, ok := findIn(root.Members[i].Value, key); ok {
			return v, true
		}
	}
	return nil, false
}

func findIn(v any, key string) (any, bool) {
	switch t := v.(type) {
	case *formcfg.Object:
		return Find(t, key)
	case []any:
		for _, el := range t {
			if found, ok := findIn(el, key); ok {
				return found, true
			}
		}
	}
	return nil, false
}
