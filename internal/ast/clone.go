package ast

// Clone deep-copies n, recursing into lists/objects/functions so the
// copy shares no mutable state with the original, except that a
// function's Closure map is new but its values are shared by
// reference. Used by the `#x`
// copy operator (§4.4), the evaluator's write-on-mutate contract for
// arithmetic/list/string results (§3 Lifecycle), and the type
// checker's per-call-site function specialization (§4.8) so an
// overload set's entries are never mutated across call sites.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	cp := *n

	cp.Left = Clone(n.Left)
	cp.Right = Clone(n.Right)
	cp.Body = Clone(n.Body)
	cp.ReturnType = Clone(n.ReturnType)
	cp.AllowedType = Clone(n.AllowedType)

	if n.Elements != nil {
		cp.Elements = make([]*Node, len(n.Elements))
		for i, e := range n.Elements {
			cp.Elements[i] = Clone(e)
		}
	}
	if n.Props != nil {
		cp.Props = make(map[string]*Node, len(n.Props))
		for k, v := range n.Props {
			cp.Props[k] = Clone(v)
		}
		cp.PropOrder = append([]string(nil), n.PropOrder...)
	}
	if n.OptionalOf != nil {
		cp.OptionalOf = make(map[string]bool, len(n.OptionalOf))
		for k, v := range n.OptionalOf {
			cp.OptionalOf[k] = v
		}
	}
	if n.Params != nil {
		cp.Params = make([]*Param, len(n.Params))
		for i, p := range n.Params {
			np := *p
			np.Type = Clone(p.Type)
			np.Default = Clone(p.Default)
			cp.Params[i] = &np
		}
	}
	if n.Args != nil {
		cp.Args = make([]*Node, len(n.Args))
		for i, a := range n.Args {
			cp.Args[i] = Clone(a)
		}
	}
	if n.Closure != nil {
		cp.Closure = make(map[string]*Node, len(n.Closure))
		for k, v := range n.Closure {
			cp.Closure[k] = v // closures snapshot by reference, never deep-copied
		}
	}
	if n.Cases != nil {
		cp.Cases = make([]*Case, len(n.Cases))
		for i, c := range n.Cases {
			cp.Cases[i] = &Case{Cond: Clone(c.Cond), Body: Clone(c.Body)}
		}
	}
	if n.LoopVars != nil {
		cp.LoopVars = append([]string(nil), n.LoopVars...)
	}
	if n.Errors != nil {
		cp.Errors = append([]string(nil), n.Errors...)
	}
	return &cp
}

// CloneFunctionForSite clones a candidate overload before the type
// checker specializes its parameter types at a particular call site
// (§4.8 Overload specialization), so refinements narrowed for one call
// site don't leak into sibling call sites sharing the same FuncList
// entry.
func CloneFunctionForSite(fn *Node) *Node {
	return Clone(fn)
}

// kindOrdinal gives PipeList canonicalization (§3, §4.2 rule 5) a
// stable sort key independent of declaration order.
func kindOrdinal(n *Node) int {
	return int(n.Kind)
}
