package ast

// RefinementInvoker calls a refinement function (a unary, is_type
// Function Node) on a concrete value and reports whether it returned
// true, plus an optional failure message extracted from a string
// literal block at the top of the refinement's body. It is supplied by
// the evaluator so the structural matcher (a pure ast-level algorithm)
// never needs to import the evaluator package.
type RefinementInvoker interface {
	CallRefinement(fn *Node, arg *Node) (ok bool, message string, err error)
}

// MatchOptions configures one Match call.
type MatchOptions struct {
	// MatchNames requires two named object types to share a name
	// (§4.2 rule 2). Used when matching nominal object *types*;
	// structural matches of instances against unnamed shapes leave
	// this false.
	MatchNames bool
	// Invoker, when non-nil, lets refinement matches actually call the
	// predicate on a concrete runtime value (§4.2 rule 4, "only at run
	// time"). When nil, matching stops after the shape check — this is
	// the type-checker's abstract-interpretation mode.
	Invoker RefinementInvoker
}

// Match decides whether value/type b satisfies type a, per §4.2's
// ordered rule list (first match wins). It returns the result and a
// short diagnostic fragment usable in a larger error message.
func Match(a, b *Node, opts MatchOptions) (bool, string) {
	if a == nil {
		a = &Node{Kind: Any}
	}
	if b == nil {
		b = &Node{Kind: Any}
	}

	// 1. Any / Type
	if a.Kind == Any || b.Kind == Any || a.Kind == Type {
		return true, ""
	}

	// 2. Named object discipline
	if opts.MatchNames && a.Kind == Object && b.Kind == Object {
		if a.TypeName != "" && b.TypeName != "" && a.TypeName != b.TypeName {
			return false, "object types " + a.TypeName + " and " + b.TypeName + " do not share a name"
		}
	}

	// 3. Overload unwrap
	if a.Kind == FuncList {
		chosen, err := ResolveOverload(a, []*Node{b}, opts)
		if err != nil {
			return false, err.Error()
		}
		return Match(chosen, b, opts)
	}

	// 4. Refinement
	if a.Kind == Function && a.IsType {
		ok, msg := matchRefinement(a, b, opts)
		return ok, msg
	}

	// 5. Union (PipeList)
	if a.Kind == PipeList {
		if b.Kind == PipeList {
			for _, rhs := range b.Elements {
				found := false
				for _, lhs := range a.Elements {
					if ok, _ := Match(lhs, rhs, opts); ok {
						found = true
						break
					}
				}
				if !found {
					return false, "no alternative of " + TypeRepr(a) + " matches " + TypeRepr(rhs)
				}
			}
			return true, ""
		}
		for _, lhs := range a.Elements {
			if ok, _ := Match(lhs, b, opts); ok {
				return true, ""
			}
		}
		return false, "no alternative of " + TypeRepr(a) + " matches " + TypeRepr(b)
	}

	// 6. Literal equality
	if a.IsLiteral && a.Kind != List && a.Kind != Object && a.Kind != Function && a.Kind != PartialOp {
		if !literalEqual(a, b) {
			return false, Repr(a) + " != " + Repr(b)
		}
		return true, ""
	}

	switch a.Kind {
	case Int, Float, Bool, String, Empty:
		if a.Kind != b.Kind {
			return false, "expected " + a.Kind.String() + ", got " + b.Kind.String()
		}
		return true, ""
	case List:
		if b.Kind != List {
			return false, "expected list, got " + b.Kind.String()
		}
		return matchList(a, b, opts)
	case Object:
		if b.Kind != Object {
			return false, "expected object, got " + b.Kind.String()
		}
		return matchObject(a, b, opts)
	case Function:
		if b.Kind != Function {
			return false, "expected function, got " + b.Kind.String()
		}
		return matchFunctionShape(a, b, opts)
	}

	return false, "incompatible types " + TypeRepr(a) + " and " + TypeRepr(b)
}

func literalEqual(a, b *Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Int:
		return a.IntVal == b.IntVal
	case Float:
		return a.FloatVal == b.FloatVal
	case Bool:
		return a.BoolVal == b.BoolVal
	case String:
		return a.StrVal == b.StrVal
	case Empty:
		return true
	}
	return false
}

// matchList implements §4.2 rule 7: A.element must subsume every
// element of B; an empty A.element slot means Any.
func matchList(a, b *Node, opts MatchOptions) (bool, string) {
	elemType := listElementType(a)
	if elemType == nil {
		return true, ""
	}
	source := b.Elements
	if !b.IsLiteral && b.AllowedType != nil {
		source = b.AllowedType.Elements
	}
	for _, elem := range source {
		if ok, msg := Match(elemType, elem, opts); !ok {
			return false, "list element mismatch: " + msg
		}
	}
	return true, ""
}

func listElementType(listType *Node) *Node {
	src := listType
	if !listType.IsLiteral && listType.AllowedType != nil {
		src = listType.AllowedType
	}
	if len(src.Elements) == 0 {
		return nil
	}
	return src.Elements[0]
}

// matchObject implements §4.2 rule 8.
func matchObject(a, b *Node, opts MatchOptions) (bool, string) {
	for _, key := range a.PropOrder {
		propType := a.Props[key]
		val, present := b.Props[key]
		if !present {
			if a.OptionalOf[key] {
				continue
			}
			return false, "missing required property " + key
		}
		if ok, msg := Match(propType, val, opts); !ok {
			return false, "property " + key + ": " + msg
		}
	}
	return true, ""
}

// matchFunctionShape implements §4.2 rule 9: same parameter count,
// invariant parameter types, matching return types.
func matchFunctionShape(a, b *Node, opts MatchOptions) (bool, string) {
	if len(a.Params) != len(b.Params) {
		return false, "parameter count mismatch"
	}
	for i := range a.Params {
		at, bt := effectiveParamType(a.Params[i]), effectiveParamType(b.Params[i])
		if ok, msg := Match(at, bt, opts); !ok {
			return false, msg
		}
		if ok, msg := Match(bt, at, opts); !ok {
			return false, msg
		}
	}
	aRet, bRet := effectiveType(a.ReturnType), effectiveType(b.ReturnType)
	if ok, msg := Match(aRet, bRet, opts); !ok {
		return false, "return type: " + msg
	}
	return true, ""
}

func effectiveParamType(p *Param) *Node {
	if p.Type == nil {
		return &Node{Kind: Any}
	}
	return p.Type
}

// effectiveType treats a nil annotation as Any.
func effectiveType(t *Node) *Node {
	if t == nil {
		return &Node{Kind: Any}
	}
	return t
}

// matchRefinement implements §4.2 rule 4.
func matchRefinement(refinement, b *Node, opts MatchOptions) (bool, string) {
	if len(refinement.Params) != 1 {
		return false, "refinement " + refinement.FuncName + " must take exactly one parameter"
	}
	shapeType := effectiveParamType(refinement.Params[0])
	if ok, msg := Match(shapeType, b, opts); !ok {
		return false, msg
	}
	if opts.Invoker == nil || !b.IsLiteral {
		// Type-check-time: shape check only (§4.2 rule 4, last sentence).
		return true, ""
	}
	ok, msg, err := opts.Invoker.CallRefinement(refinement, b)
	if err != nil {
		return false, err.Error()
	}
	if !ok {
		if msg == "" {
			msg = Repr(b) + " does not satisfy " + refinementName(refinement)
		}
		return false, msg
	}
	return true, ""
}

func refinementName(fn *Node) string {
	if fn.FuncName != "" && fn.FuncName != "lambda" {
		return fn.FuncName
	}
	return "refinement"
}

// RefinementMessage extracts the optional failure-message string block
// from the top of a refinement function's body (§4.2 rule 4).
func RefinementMessage(fn *Node) (string, bool) {
	if fn.Body == nil || len(fn.Body.Elements) == 0 {
		return "", false
	}
	first := fn.Body.Elements[0]
	if first.Kind == String && first.IsLiteral {
		return first.StrVal, true
	}
	return "", false
}
