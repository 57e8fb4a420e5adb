// Package parser turns the lexer's atom stream into the ast.Node tree
// the core consumes. It is a boundary component (§1): the grammar
// below covers every construct spec.md names, but — unlike the Node
// model, checker, and evaluator — is not itself part of the hard
// engineering the core specification is testing.
package parser

import (
	"fmt"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/diagnostics"
	"github.com/dibsonthis/Glide/internal/lexer"
	"github.com/dibsonthis/Glide/internal/token"
)

// precedence levels, lowest to highest.
const (
	_ int = iota
	precLowest
	precPipe       // >>
	precOr         // ||
	precAnd        // &&
	precEquality   // == !=
	precRelational // < <= > >=
	precRange      // ..
	precAdditive   // + -
	precMultiplicative
	precUnary
	precPostfix
)

var precedences = map[token.Kind]int{
	token.PIPE_ARROW: precPipe,
	token.OR:         precOr,
	token.AND:        precAnd,
	token.EQ:         precEquality,
	token.NOT_EQ:     precEquality,
	token.LT:         precRelational,
	token.LT_EQ:      precRelational,
	token.GT:         precRelational,
	token.GT_EQ:      precRelational,
	token.DOUBLE_DOT: precRange,
	token.PLUS:       precAdditive,
	token.MINUS:      precAdditive,
	token.STAR:       precMultiplicative,
	token.SLASH:      precMultiplicative,
	token.PERCENT:    precMultiplicative,
	token.LPAREN:     precPostfix,
	token.LBRACKET:   precPostfix,
	token.DOT:        precPostfix,
}

// Parser is a single-file, precedence-climbing recursive-descent
// parser with one token of lookahead.
type Parser struct {
	file string
	toks []token.Token
	pos  int

	Errors []*diagnostics.Error
}

// New builds a Parser over an already-tokenized source file.
func New(file string, toks []token.Token) *Parser {
	return &Parser{file: file, toks: toks}
}

// Parse tokenizes src and parses it into a Block Node holding every
// top-level statement, Glide's equivalent of a Program root.
func Parse(file, src string) (*ast.Node, []*diagnostics.Error) {
	toks := lexer.Tokenize(src)
	p := New(file, toks)
	prog := p.ParseProgram()
	return prog, p.Errors
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}
func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.errorf("expected %s, got %s %q", k, p.cur().Kind, p.cur().Lexeme)
	return p.cur()
}

func (p *Parser) errorf(format string, args ...any) {
	t := p.cur()
	p.Errors = append(p.Errors, diagnostics.New(diagnostics.SyntaxError, p.file, nil, t.Line, t.Column, format, args...))
}

func (p *Parser) pos_() ast.Pos {
	t := p.cur()
	return ast.Pos{Line: t.Line, Column: t.Column}
}

// skipSeparators consumes statement separators (newline, `;`).
func (p *Parser) skipSeparators() {
	for p.at(token.NEWLINE) || p.at(token.SEMICOLON) {
		p.advance()
	}
}

// ParseProgram parses every top-level statement into a Block Node.
func (p *Parser) ParseProgram() *ast.Node {
	pos := p.pos_()
	var stmts []*ast.Node
	p.skipSeparators()
	for !p.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipSeparators()
	}
	return ast.MakeBlock(pos, stmts)
}

func (p *Parser) currentPrecedence() int {
	if pr, ok := precedences[p.cur().Kind]; ok {
		return pr
	}
	return precLowest
}

func (p *Parser) fail(format string, args ...any) *ast.Node {
	p.errorf(format, args...)
	return ast.MakeError(p.pos_(), fmt.Sprintf(format, args...))
}
