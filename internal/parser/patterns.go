package parser

import (
	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/token"
)

// parsePattern parses one match-block pattern (§4.7): a literal to
// compare by value, an identifier that binds the discriminant, `_`
// (parsed as Empty by parsePrimary) to match anything without
// binding, a range `lo..hi`, or a list/object structural pattern whose
// elements are themselves patterns. A `...rest` as a list pattern's
// final element splices the remaining tail into `rest`.
func (p *Parser) parsePattern() *ast.Node {
	switch p.cur().Kind {
	case token.LBRACKET:
		return p.parseListPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	default:
		base := p.parsePatternAtom()
		if p.at(token.DOUBLE_DOT) {
			pos := p.pos_()
			p.advance()
			hi := p.parsePatternAtom()
			return &ast.Node{Kind: ast.Op, OpSymbol: "..", IsBinary: true, Left: base, Right: hi, Line: pos.Line, Column: pos.Column}
		}
		return base
	}
}

func (p *Parser) parsePatternAtom() *ast.Node {
	pos := p.pos_()
	switch p.cur().Kind {
	case token.INT:
		return p.parseIntLiteral()
	case token.FLOAT:
		return p.parseFloatLiteral()
	case token.STRING:
		tok := p.advance()
		return ast.MakeString(pos, tok.Lexeme, true)
	case token.TRUE:
		p.advance()
		return ast.MakeBool(pos, true, true)
	case token.FALSE:
		p.advance()
		return ast.MakeBool(pos, false, true)
	case token.UNDERSCORE:
		p.advance()
		return ast.MakeEmpty(pos)
	case token.MINUS:
		p.advance()
		switch p.cur().Kind {
		case token.FLOAT:
			n := p.parseFloatLiteral()
			n.FloatVal = -n.FloatVal
			return n
		default:
			n := p.parseIntLiteral()
			n.IntVal = -n.IntVal
			return n
		}
	case token.IDENT:
		return p.parseIdentifier()
	default:
		tok := p.advance()
		return p.fail("unexpected token %s %q in pattern", tok.Kind, tok.Lexeme)
	}
}

// parseListPattern parses `[p1, p2, ...rest]`. A bare identifier
// element binds that element; `...name` (only legal as the final
// element) binds the remaining tail.
func (p *Parser) parseListPattern() *ast.Node {
	pos := p.pos_()
	p.expect(token.LBRACKET)
	var elems []*ast.Node
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		if p.at(token.TRIPLE_DOT) {
			p.advance()
			rest := p.parseIdentifier()
			elems = append(elems, &ast.Node{Kind: ast.Op, OpSymbol: "...", Right: rest, Line: rest.Line, Column: rest.Column})
		} else {
			elems = append(elems, p.parsePattern())
		}
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACKET)
	return ast.MakeList(pos, elems, true)
}

// parseObjectPattern parses `{key: pattern, ...}`: every named key
// must be present and match its sub-pattern (§4.7).
func (p *Parser) parseObjectPattern() *ast.Node {
	pos := p.pos_()
	p.expect(token.LBRACE)
	obj := ast.MakeObject(pos, true)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		name := p.expect(token.IDENT).Lexeme
		p.expect(token.COLON)
		val := p.parsePattern()
		obj.AddProp(name, val)
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return obj
}
