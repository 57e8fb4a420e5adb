// Package ast defines Glide's single heterogeneous Node: the same
// struct represents source syntax, runtime values, and types. A Node's
// Kind field selects which of its payload fields are meaningful; the
// rest sit at their zero value, unused. This mirrors the original
// Glide interpreter's Node (one struct, one field per NodeType's
// payload) rather than a tagged-union-of-structs or a Visitor-driven
// interface tree: values ARE ASTs, and types ARE values, so a single
// shape has to carry all three roles.
package ast

// Kind is the tag selecting a Node's payload and evaluation behavior.
type Kind int

const (
	Int Kind = iota
	Float
	Bool
	String
	Id
	Empty
	Any
	Type

	Op
	PartialOp
	Copy

	List
	Object
	Function
	CommaList
	PipeList
	FuncList
	Block

	FuncCall
	IfStatement
	IfBlock
	MatchBlock
	ForLoop
	WhileLoop
	Return
	Break
	Continue
	Range
	Keyword
	Error
)

var kindNames = [...]string{
	Int: "int", Float: "float", Bool: "bool", String: "string", Id: "id",
	Empty: "null", Any: "any", Type: "type",
	Op: "op", PartialOp: "partial_op", Copy: "copy",
	List: "list", Object: "object", Function: "function",
	CommaList: "comma_list", PipeList: "pipe_list", FuncList: "func_list",
	Block: "block", FuncCall: "func_call", IfStatement: "if_statement",
	IfBlock: "if_block", MatchBlock: "match_block", ForLoop: "for_loop",
	WhileLoop: "while_loop", Return: "return", Break: "break",
	Continue: "continue", Range: "range", Keyword: "keyword", Error: "error",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Param describes one function parameter slot: a name, an optional
// declared type, an optional default expression, and whether it's the
// variadic `...name` tail collector.
type Param struct {
	Name     string
	Type     *Node
	Default  *Node
	Variadic bool
}

// Case is one arm of an if-block or match-block: a guard/pattern
// (nil for the trailing `else`) and the body expression it selects.
type Case struct {
	Cond *Node
	Body *Node
}

// Node is the universal AST/value/type carrier. See the package doc
// for why every kind's payload lives on one struct.
type Node struct {
	Kind Kind

	Line   int
	Column int

	Left  *Node
	Right *Node

	// Int / Float / Bool / String literal payloads.
	IntVal   int64
	FloatVal float64
	BoolVal  bool
	StrVal   string

	// Id: variable/field name. Also reused as the bound name for
	// patterns.
	Name string

	// Op / PartialOp: operator symbol ("+", "==", ...) and whether the
	// operator is binary (vs. unary prefix).
	OpSymbol string
	IsBinary bool

	// Object: ordered property map. PropOrder preserves declaration
	// order since Go maps do not, and repr/type_repr output depends on
	// it.
	Props      map[string]*Node
	PropOrder  []string
	OptionalOf map[string]bool // keys declared optional on an Object *type*

	// Function: parameter list, bound/partial argument slots (nil =
	// unfilled hole), body block, declared return type, and closure
	// snapshot (captured scope at construction time).
	Params       []*Param
	Args         []*Node
	Body         *Node
	ReturnType   *Node
	Closure      map[string]*Node
	FuncName     string
	NativeName   string // set for host built-ins; evaluator dispatches by this name

	// List / CommaList / PipeList / FuncList / Block: ordered children.
	Elements []*Node

	// IfBlock / MatchBlock: ordered guard/pattern -> body cases.
	// MatchBlock's discriminant is Left.
	Cases []*Case

	// ForLoop: the `[iter]`, `[iter, i]`, or `[iter, i, x]` binding
	// names, and the iterable expression in Left. Body in .Body.
	LoopVars []string

	// Range: inclusive start, exclusive end (materialized eagerly into
	// Elements as a List at evaluation time by the evaluator's evalRange).
	RangeStart int64
	RangeEnd   int64

	// Error: accumulated diagnostic fragments (parser recovery, or a
	// type-checker error value threaded through in place of a type).
	Errors []string

	// Type metadata, present on every Node.
	IsLiteral   bool  // true: carries a concrete value. false: type-view.
	AllowedType *Node // declared/inferred type, when known.
	TypeName    string // nominal tag for named objects/refinements.
	IsType      bool   // true: this Node stands for a type, not a value.
}

// New allocates a bare Node of the given kind, stamped with pos.
func New(kind Kind, line, column int) *Node {
	return &Node{Kind: kind, Line: line, Column: column, IsLiteral: true}
}
