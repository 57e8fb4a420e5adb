package ast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Repr renders n as source-like text: literal values print their
// concrete form; non-literal (type-view) nodes print their kind name,
// except named objects (TypeName) and named refinements (FuncName),
// which print by that name.
func Repr(n *Node) string {
	if n == nil {
		return "null"
	}
	switch n.Kind {
	case Id:
		return n.Name
	case Type:
		return n.TypeName
	case Bool:
		if !n.IsLiteral {
			return "bool"
		}
		return strconv.FormatBool(n.BoolVal)
	case Int:
		if !n.IsLiteral {
			return "int"
		}
		return strconv.FormatInt(n.IntVal, 10)
	case Float:
		if !n.IsLiteral {
			return "float"
		}
		return strconv.FormatFloat(n.FloatVal, 'f', -1, 64)
	case String:
		if !n.IsLiteral {
			return "string"
		}
		return n.StrVal
	case Op:
		return n.OpSymbol
	case PartialOp:
		return "..." + n.OpSymbol
	case Empty:
		return "null"
	case Any:
		return "any"
	case List:
		if !n.IsLiteral {
			return "list"
		}
		var sb strings.Builder
		sb.WriteString("[ ")
		for _, elem := range n.Elements {
			if elem.Kind == String && elem.IsLiteral {
				sb.WriteString(fmt.Sprintf("%q", elem.StrVal))
			} else {
				sb.WriteString(Repr(elem))
			}
			sb.WriteString(" ")
		}
		sb.WriteString("]")
		return sb.String()
	case CommaList:
		var sb strings.Builder
		sb.WriteString("( ")
		for _, elem := range n.Elements {
			sb.WriteString(Repr(elem))
			sb.WriteString(" ")
		}
		sb.WriteString(")")
		return sb.String()
	case PipeList:
		parts := make([]string, len(n.Elements))
		for i, elem := range n.Elements {
			if elem.Kind == String && elem.IsLiteral {
				parts[i] = fmt.Sprintf("%q", elem.StrVal)
			} else {
				parts[i] = Repr(elem)
			}
		}
		return strings.Join(parts, " | ")
	case Object:
		if n.TypeName != "" {
			return n.TypeName
		}
		if !n.IsLiteral {
			return "object"
		}
		var sb strings.Builder
		sb.WriteString("{\n")
		for _, k := range n.PropOrder {
			sb.WriteString("  " + k + ": " + Repr(n.Props[k]) + "\n")
		}
		sb.WriteString("}")
		return sb.String()
	case Function:
		if n.IsType && n.FuncName != "lambda" {
			return n.FuncName
		}
		if !n.IsLiteral {
			return "function"
		}
		var sb strings.Builder
		sb.WriteString("[ ")
		for _, p := range n.Params {
			sb.WriteString(reprParam(p) + " ")
		}
		ret := "any"
		if n.ReturnType != nil {
			ret = TypeRepr(n.ReturnType)
		}
		sb.WriteString("] => " + ret)
		return sb.String()
	case Range:
		return fmt.Sprintf("(%d, %d)", n.RangeStart, n.RangeEnd)
	case Block:
		return "{ block }"
	default:
		return "<no repr>"
	}
}

func reprParam(p *Param) string {
	typeName := "any"
	if p.Type != nil {
		typeName = Repr(p.Type)
	}
	name := p.Name
	if p.Variadic {
		name = "..." + name
	}
	return name + "::" + typeName
}

// TypeRepr renders n as a type expression: literal payloads collapse
// to their kind, unions render `a | b | ...`, objects render their
// structural shape, and functions render `[ p::T ... ] => R`.
func TypeRepr(n *Node) string {
	if n == nil {
		return "null"
	}
	switch n.Kind {
	case Id:
		return n.Name
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Op:
		return n.OpSymbol
	case PartialOp:
		return "_" + n.OpSymbol + "_"
	case Empty:
		return "null"
	case Any:
		return "any"
	case List:
		seen := map[string]bool{}
		var types []string
		elemSource := n.Elements
		if n.AllowedType != nil {
			elemSource = n.AllowedType.Elements
		}
		for _, elem := range elemSource {
			s := TypeRepr(elem)
			if !seen[s] {
				seen[s] = true
				types = append(types, s)
			}
		}
		sort.Strings(types)
		return "[ " + strings.Join(types, " | ") + " ]"
	case CommaList:
		return "comma_list"
	case PipeList:
		parts := make([]string, len(n.Elements))
		for i, elem := range n.Elements {
			parts[i] = Repr(elem)
		}
		return strings.Join(parts, " | ")
	case Object:
		if n.TypeName != "" {
			return n.TypeName
		}
		var sb strings.Builder
		sb.WriteString("{\n")
		for _, k := range n.PropOrder {
			sb.WriteString("  " + k + ": " + Repr(n.Props[k]) + "\n")
		}
		sb.WriteString("}")
		return sb.String()
	case Function:
		if n.IsType && n.FuncName != "lambda" {
			return n.FuncName
		}
		var sb strings.Builder
		sb.WriteString("[ ")
		for _, p := range n.Params {
			sb.WriteString(reprParam(p) + " ")
		}
		ret := n.ReturnType
		if ret == nil {
			ret = &Node{Kind: Any}
		}
		sb.WriteString("] => " + Repr(withTypeView(ret)))
		return sb.String()
	case Range:
		return fmt.Sprintf("(%d, %d)", n.RangeStart, n.RangeEnd)
	case Block:
		return "{ block }"
	default:
		return "<no repr>"
	}
}

// withTypeView returns a shallow copy of n (and, for PipeList, its
// elements) with IsLiteral forced false, so a function's declared
// return type renders as a type-view even if it was built from a
// literal default.
func withTypeView(n *Node) *Node {
	cp := *n
	cp.IsLiteral = false
	if cp.Kind == PipeList {
		elems := make([]*Node, len(cp.Elements))
		for i, e := range cp.Elements {
			elems[i] = withTypeView(e)
		}
		cp.Elements = elems
	}
	return &cp
}
