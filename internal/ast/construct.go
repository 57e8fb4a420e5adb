package ast

// Pos is the (line, column) a constructor stamps onto the Node it
// builds, taken from the caller (typically the current evaluator or
// checker position, not the call site in Go).
type Pos struct {
	Line   int
	Column int
}

func (p Pos) at(n *Node) *Node {
	n.Line = p.Line
	n.Column = p.Column
	return n
}

// MakeInt builds an Int node. When literal is false the node is a
// type-view ("any int") rather than a concrete value.
func MakeInt(pos Pos, value int64, literal bool) *Node {
	return pos.at(&Node{Kind: Int, IntVal: value, IsLiteral: literal})
}

func MakeFloat(pos Pos, value float64, literal bool) *Node {
	return pos.at(&Node{Kind: Float, FloatVal: value, IsLiteral: literal})
}

func MakeBool(pos Pos, value bool, literal bool) *Node {
	return pos.at(&Node{Kind: Bool, BoolVal: value, IsLiteral: literal})
}

func MakeString(pos Pos, value string, literal bool) *Node {
	return pos.at(&Node{Kind: String, StrVal: value, IsLiteral: literal})
}

func MakeId(pos Pos, name string) *Node {
	return pos.at(&Node{Kind: Id, Name: name, IsLiteral: true})
}

func MakeEmpty(pos Pos) *Node {
	return pos.at(&Node{Kind: Empty, IsLiteral: true})
}

func MakeAny(pos Pos) *Node {
	return pos.at(&Node{Kind: Any, IsLiteral: false})
}

// MakeTypeRef builds a Type-kind node: a standalone marker whose mere
// presence as a type annotation always matches (§4.2 rule 1).
func MakeTypeRef(pos Pos) *Node {
	return pos.at(&Node{Kind: Type, IsLiteral: false, IsType: true})
}

func MakeList(pos Pos, elements []*Node, literal bool) *Node {
	return pos.at(&Node{Kind: List, Elements: elements, IsLiteral: literal})
}

// MakePipeList builds a union type. Canonicalize should be called on
// it once its elements are known (construction time for literal type
// annotations; dynamically during return-type inference).
func MakePipeList(pos Pos, elements []*Node) *Node {
	return pos.at(&Node{Kind: PipeList, Elements: elements, IsLiteral: false})
}

func MakeCommaList(pos Pos, elements []*Node) *Node {
	return pos.at(&Node{Kind: CommaList, Elements: elements, IsLiteral: true})
}

func MakeFuncList(pos Pos, elements []*Node) *Node {
	return pos.at(&Node{Kind: FuncList, Elements: elements, IsLiteral: true})
}

func MakeObject(pos Pos, literal bool) *Node {
	return pos.at(&Node{
		Kind: Object, IsLiteral: literal,
		Props: map[string]*Node{}, OptionalOf: map[string]bool{},
	})
}

func MakeFunction(pos Pos) *Node {
	return pos.at(&Node{
		Kind: Function, IsLiteral: true, FuncName: "lambda",
		Closure: map[string]*Node{},
	})
}

func MakeBlock(pos Pos, statements []*Node) *Node {
	return pos.at(&Node{Kind: Block, Elements: statements, IsLiteral: true})
}

func MakeOp(pos Pos, symbol string, left, right *Node, binary bool) *Node {
	return pos.at(&Node{Kind: Op, OpSymbol: symbol, Left: left, Right: right, IsBinary: binary, IsLiteral: true})
}

// MakePartialOp builds a binary operator with one side replaced by an
// Empty hole, awaiting injection via `>>` (§4.4 Pipe).
func MakePartialOp(pos Pos, symbol string, left, right *Node) *Node {
	return pos.at(&Node{Kind: PartialOp, OpSymbol: symbol, Left: left, Right: right, IsBinary: true, IsLiteral: true})
}

func MakeRange(pos Pos, start, end int64) *Node {
	return pos.at(&Node{Kind: Range, RangeStart: start, RangeEnd: end, IsLiteral: true})
}

func MakeError(pos Pos, messages ...string) *Node {
	return pos.at(&Node{Kind: Error, Errors: messages})
}

// AddProp records a property in declaration order, overwriting any
// prior value for the same key without disturbing its position.
func (n *Node) AddProp(key string, value *Node) {
	if n.Props == nil {
		n.Props = map[string]*Node{}
	}
	if _, exists := n.Props[key]; !exists {
		n.PropOrder = append(n.PropOrder, key)
	}
	n.Props[key] = value
}

// DeleteProp removes a property, preserving the relative order of the
// rest.
func (n *Node) DeleteProp(key string) {
	if _, ok := n.Props[key]; !ok {
		return
	}
	delete(n.Props, key)
	for i, k := range n.PropOrder {
		if k == key {
			n.PropOrder = append(n.PropOrder[:i], n.PropOrder[i+1:]...)
			break
		}
	}
}
