package parser

import (
	"strconv"

	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/token"
)

// parseExpression is the Pratt-style precedence-climbing entry point.
// Assignment (`=`) sits below every other operator and is handled
// explicitly here rather than in the precedence table, since its
// left-hand side can be an identifier (with optional `::Type`
// annotation), a member/index target, or a computed `[expr]` name
// (§4.5).
func (p *Parser) parseExpression(minPrec int) *ast.Node {
	left := p.parseBinary(precPipe)

	if p.at(token.ASSIGN) {
		pos := p.pos_()
		p.advance()
		right := p.parseExpression(precLowest)
		return ast.MakeOp(pos, "=", left, right, true)
	}
	return p.continueBinary(left, minPrec)
}

func (p *Parser) parseBinary(minPrec int) *ast.Node {
	left := p.parseUnary()
	return p.continueBinary(left, minPrec)
}

func (p *Parser) continueBinary(left *ast.Node, minPrec int) *ast.Node {
	for {
		prec, ok := precedences[p.cur().Kind]
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.advance()

		if opTok.Kind == token.DOT {
			left = p.parseMemberAfterDot(left, opTok)
			continue
		}
		if opTok.Kind == token.LBRACKET {
			left = p.parseIndexAfterBracket(left, opTok)
			continue
		}
		if opTok.Kind == token.LPAREN {
			left = p.parseCallAfterParen(left, opTok)
			continue
		}

		right := p.parseBinary(prec + 1)
		left = p.buildBinaryOrPartial(opTok, left, right)
	}
}

// buildBinaryOrPartial turns an Empty operand into a PartialOp (§4.1,
// §4.4's pipe-injection target), the uniform representation of both
// partial application holes and the `_` match wildcard.
func (p *Parser) buildBinaryOrPartial(opTok token.Token, left, right *ast.Node) *ast.Node {
	pos := ast.Pos{Line: opTok.Line, Column: opTok.Column}
	if left.Kind == ast.Empty || right.Kind == ast.Empty {
		return ast.MakePartialOp(pos, opTok.Lexeme, left, right)
	}
	return ast.MakeOp(pos, opTok.Lexeme, left, right, true)
}

func (p *Parser) parseUnary() *ast.Node {
	switch p.cur().Kind {
	case token.PLUS, token.MINUS, token.NOT:
		opTok := p.advance()
		operand := p.parseUnary()
		pos := ast.Pos{Line: opTok.Line, Column: opTok.Column}
		return ast.MakeOp(pos, opTok.Lexeme, nil, operand, false)
	case token.HASH:
		opTok := p.advance()
		operand := p.parseUnary()
		return &ast.Node{Kind: ast.Copy, Left: operand, Line: opTok.Line, Column: opTok.Column}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() *ast.Node {
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
	case token.ANY:
		p.advance()
		return ast.MakeAny(pos)
	case token.UNDERSCORE:
		p.advance()
		return ast.MakeEmpty(pos)
	case token.IDENT:
		return p.parseIdentifier()
	case token.TRIPLE_DOT:
		p.advance()
		inner := p.parseIdentifier()
		return &ast.Node{Kind: ast.Op, OpSymbol: "...", Right: inner, Line: pos.Line, Column: pos.Column}
	case token.LPAREN:
		return p.parseParenGroup()
	case token.LBRACKET:
		return p.parseBracketLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.IF:
		return p.parseIf()
	case token.MATCH:
		return p.parseMatch()
	default:
		tok := p.advance()
		return p.fail("unexpected token %s %q", tok.Kind, tok.Lexeme)
	}
}

func (p *Parser) parseIntLiteral() *ast.Node {
	pos := p.pos_()
	tok := p.advance()
	v, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
	return ast.MakeInt(pos, v, true)
}

func (p *Parser) parseFloatLiteral() *ast.Node {
	pos := p.pos_()
	tok := p.advance()
	v, _ := strconv.ParseFloat(tok.Lexeme, 64)
	return ast.MakeFloat(pos, v, true)
}

// parseIdentifier parses a bare identifier and, if followed by `::`,
// attaches its type annotation expression (§3: "name+optional-type-
// annotation for identifiers").
func (p *Parser) parseIdentifier() *ast.Node {
	pos := p.pos_()
	tok := p.advance()
	id := ast.MakeId(pos, tok.Lexeme)
	if p.at(token.DOUBLE_COLON) {
		p.advance()
		id.AllowedType = p.parseTypeTerm()
	}
	return id
}

// parseTypeTerm parses a type-position expression: an identifier
// (resolved against the environment at check/eval time — §4.8's
// "types ARE values"), a `(A | B | ...)` union, a `[T]` list type, or
// an inline `{k: T, ...}` object type.
func (p *Parser) parseTypeTerm() *ast.Node {
	pos := p.pos_()
	switch p.cur().Kind {
	case token.LBRACKET:
		p.advance()
		var elem *ast.Node
		if !p.at(token.RBRACKET) {
			elem = p.parseTypeTerm()
		}
		p.expect(token.RBRACKET)
		var elems []*ast.Node
		if elem != nil {
			elems = []*ast.Node{elem}
		}
		return ast.MakeList(pos, elems, false)
	case token.LBRACE:
		return p.parseObjectTypeLiteral()
	case token.LPAREN:
		p.advance()
		first := p.parseTypeTerm()
		elems := []*ast.Node{first}
		for p.at(token.PIPE) {
			p.advance()
			elems = append(elems, p.parseTypeTerm())
		}
		p.expect(token.RPAREN)
		if len(elems) == 1 {
			return elems[0]
		}
		return ast.Canonicalize(ast.MakePipeList(pos, elems))
	default:
		base := p.parseIdentifier()
		if !p.at(token.PIPE) {
			return base
		}
		elems := []*ast.Node{base}
		for p.at(token.PIPE) {
			p.advance()
			elems = append(elems, p.parseIdentifier())
		}
		return ast.Canonicalize(ast.MakePipeList(pos, elems))
	}
}

// parseObjectTypeLiteral parses an inline object-type annotation
// `{x: int, y?: string}`. A trailing `?` before the colon marks the
// key optional (§4.2 rule 8: extra keys are allowed only when marked
// optional on the matching side).
func (p *Parser) parseObjectTypeLiteral() *ast.Node {
	pos := p.pos_()
	obj := ast.MakeObject(pos, false)
	p.expect(token.LBRACE)
	p.skipSeparators()
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		name := p.expect(token.IDENT).Lexeme
		optional := false
		if p.at(token.QUESTION) {
			p.advance()
			optional = true
		}
		p.expect(token.COLON)
		val := p.parseTypeTerm()
		obj.AddProp(name, val)
		obj.OptionalOf[name] = optional
		if p.at(token.COMMA) {
			p.advance()
		}
		p.skipSeparators()
	}
	p.expect(token.RBRACE)
	return obj
}
