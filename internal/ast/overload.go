package ast

import (
	"fmt"
	"strings"
)

// ResolveOverload implements §4.3: pick the FuncList entry args should
// dispatch to, or report why none/more-than-one qualifies.
func ResolveOverload(set *Node, args []*Node, opts MatchOptions) (*Node, error) {
	if set.Kind != FuncList {
		return nil, fmt.Errorf("not an overload set: %s", set.Kind)
	}

	var potentials []*Node
	for idx, f := range set.Elements {
		if len(args) > len(f.Params) {
			continue
		}
		holes := unfilledHoles(f)
		if len(args) > len(holes) {
			continue
		}
		isLast := idx == len(set.Elements)-1

		matched := true
		hasAny := false
		for i, av := range args {
			pType := effectiveParamType(f.Params[holes[i]])
			if av.Kind == Any {
				hasAny = true
			}
			if ok, _ := Match(pType, av, opts); !ok {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if hasAny && !isLast {
			// Reserve Any arguments for the widest/last overload so
			// dispatch stays deterministic on unknowns (§4.3 tie-break).
			continue
		}
		if len(args) == len(holes) {
			return bindHoles(f, holes, args), nil
		}
		potentials = append(potentials, f)
	}

	switch len(potentials) {
	case 0:
		return nil, fmt.Errorf("no matching definition for (%s); candidates:\n%s", describeArgs(args), signatures(set.Elements))
	case 1:
		f := potentials[0]
		return bindHoles(f, unfilledHoles(f), args), nil
	default:
		return nil, fmt.Errorf("ambiguous call for (%s); candidates:\n%s", describeArgs(args), signatures(potentials))
	}
}

// unfilledHoles returns, in order, the indices of f.Args not yet bound
// (nil marks a hole). A Function whose Args slice hasn't been
// allocated yet behaves as if every parameter were an open hole.
func unfilledHoles(f *Node) []int {
	if f.Args == nil {
		idxs := make([]int, len(f.Params))
		for i := range idxs {
			idxs[i] = i
		}
		return idxs
	}
	var idxs []int
	for i, a := range f.Args {
		if a == nil {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// bindHoles clones f (so the shared overload-set entry is untouched)
// and fills args into the given hole indices in order.
func bindHoles(f *Node, holes []int, args []*Node) *Node {
	cp := Clone(f)
	if cp.Args == nil {
		cp.Args = make([]*Node, len(cp.Params))
	}
	for i, idx := range holes[:len(args)] {
		cp.Args[idx] = args[i]
	}
	return cp
}

func describeArgs(args []*Node) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = TypeRepr(a)
	}
	return strings.Join(parts, ", ")
}

func signatures(fns []*Node) string {
	var sb strings.Builder
	for _, f := range fns {
		sb.WriteString("  ")
		sb.WriteString(Repr(f))
		sb.WriteString("\n")
	}
	return sb.String()
}
