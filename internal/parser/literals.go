package parser

import (
	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/token"
)

// parseParenGroup parses `(expr)`, a comma-separated tuple `(a, b, ...)`,
// and the empty tuple `()`. Partial-application holes fall out of the
// ordinary binary grammar (an Empty operand turns an Op into a
// PartialOp — see buildBinaryOrPartial) rather than being special-cased
// here.
func (p *Parser) parseParenGroup() *ast.Node {
	pos := p.pos_()
	p.expect(token.LPAREN)
	if p.at(token.RPAREN) {
		p.advance()
		return ast.MakeCommaList(pos, nil)
	}
	first := p.parseExpression(precLowest)
	if !p.at(token.COMMA) {
		p.expect(token.RPAREN)
		return first
	}
	elems := []*ast.Node{first}
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.RPAREN) {
			break
		}
		elems = append(elems, p.parseExpression(precLowest))
	}
	p.expect(token.RPAREN)
	return ast.MakeCommaList(pos, elems)
}

// bracketFollowedByArrow looks ahead from the current `[` to its
// matching `]` and reports whether `=>` or a `::` return-type
// annotation immediately follows (modulo newlines), which is how a
// function literal's parameter list is told apart from a list literal
// (§4.1).
func (p *Parser) bracketFollowedByArrow() bool {
	depth := 0
	i := p.pos
	for i < len(p.toks) {
		switch p.toks[i].Kind {
		case token.LBRACKET, token.LPAREN, token.LBRACE:
			depth++
		case token.RBRACKET:
			depth--
			if depth == 0 {
				j := i + 1
				for j < len(p.toks) && p.toks[j].Kind == token.NEWLINE {
					j++
				}
				return j < len(p.toks) && (p.toks[j].Kind == token.ARROW || p.toks[j].Kind == token.DOUBLE_COLON)
			}
		case token.RPAREN, token.RBRACE:
			depth--
		case token.EOF:
			return false
		}
		i++
	}
	return false
}

func (p *Parser) parseBracketLiteral() *ast.Node {
	if p.bracketFollowedByArrow() {
		return p.parseFunctionLiteral()
	}
	return p.parseListLiteral()
}

func (p *Parser) parseListLiteral() *ast.Node {
	pos := p.pos_()
	p.expect(token.LBRACKET)
	p.skipSeparators()
	var elems []*ast.Node
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpression(precLowest))
		if p.at(token.COMMA) {
			p.advance()
		}
		p.skipSeparators()
	}
	p.expect(token.RBRACKET)
	return ast.MakeList(pos, elems, true)
}

// parseFunctionLiteral parses `[params] [::RetType] => body` (§4.1,
// §4.6). Parameters are whitespace-separated, not comma-separated.
func (p *Parser) parseFunctionLiteral() *ast.Node {
	pos := p.pos_()
	p.expect(token.LBRACKET)
	p.skipSeparators()
	var params []*ast.Param
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		params = append(params, p.parseParam())
		p.skipSeparators()
	}
	p.expect(token.RBRACKET)

	fn := ast.MakeFunction(pos)
	fn.Params = params
	if p.at(token.DOUBLE_COLON) {
		p.advance()
		fn.ReturnType = p.parseTypeTerm()
	}
	p.expect(token.ARROW)
	if p.at(token.LBRACE) {
		fn.Body = p.parseBlock()
	} else {
		expr := p.parseExpression(precLowest)
		fn.Body = ast.MakeBlock(pos, []*ast.Node{expr})
	}
	return fn
}

func (p *Parser) parseParam() *ast.Param {
	variadic := false
	if p.at(token.TRIPLE_DOT) {
		p.advance()
		variadic = true
	}
	name := p.expect(token.IDENT).Lexeme
	var typ *ast.Node
	if p.at(token.DOUBLE_COLON) {
		p.advance()
		typ = p.parseTypeTerm()
	}
	var def *ast.Node
	if p.at(token.ASSIGN) {
		p.advance()
		def = p.parseExpression(precLowest)
	}
	return &ast.Param{Name: name, Type: typ, Default: def, Variadic: variadic}
}

// parseObjectLiteral parses `{key: value, ...}`. Keys are bare
// identifiers or string literals; computed keys belong to the
// assignment grammar, not literal construction (§4.5).
func (p *Parser) parseObjectLiteral() *ast.Node {
	pos := p.pos_()
	p.expect(token.LBRACE)
	p.skipSeparators()
	obj := ast.MakeObject(pos, true)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		var name string
		if p.at(token.STRING) {
			name = p.advance().Lexeme
		} else {
			name = p.expect(token.IDENT).Lexeme
		}
		p.expect(token.COLON)
		val := p.parseExpression(precLowest)
		obj.AddProp(name, val)
		if p.at(token.COMMA) {
			p.advance()
		}
		p.skipSeparators()
	}
	p.expect(token.RBRACE)
	return obj
}

func (p *Parser) parseMemberAfterDot(left *ast.Node, dotTok token.Token) *ast.Node {
	pos := ast.Pos{Line: dotTok.Line, Column: dotTok.Column}
	name := p.expect(token.IDENT).Lexeme
	return &ast.Node{
		Kind: ast.Op, OpSymbol: ".", IsBinary: true,
		Left: left, Right: ast.MakeId(pos, name),
		Line: pos.Line, Column: pos.Column,
	}
}

func (p *Parser) parseIndexAfterBracket(left *ast.Node, brTok token.Token) *ast.Node {
	pos := ast.Pos{Line: brTok.Line, Column: brTok.Column}
	idx := p.parseExpression(precLowest)
	p.expect(token.RBRACKET)
	return &ast.Node{
		Kind: ast.Op, OpSymbol: "[]", IsBinary: true,
		Left: left, Right: idx,
		Line: pos.Line, Column: pos.Column,
	}
}

// parseCallAfterParen parses a call's argument list. A bare
// `name: expr` argument is a keyword binding, bound to the parameter of
// that name (§4.3's overload resolution sees only the positional
// arguments); everything else binds positionally, with `...` splicing
// a list into the remaining positions.
func (p *Parser) parseCallAfterParen(left *ast.Node, parenTok token.Token) *ast.Node {
	pos := ast.Pos{Line: parenTok.Line, Column: parenTok.Column}
	var args []*ast.Node
	if !p.at(token.RPAREN) {
		for {
			args = append(args, p.parseCallArg())
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.RPAREN)
	return &ast.Node{Kind: ast.FuncCall, Left: left, Args: args, Line: pos.Line, Column: pos.Column}
}

func (p *Parser) parseCallArg() *ast.Node {
	if p.cur().Kind == token.IDENT && p.peek().Kind == token.COLON {
		pos := p.pos_()
		name := p.advance().Lexeme
		p.advance() // ':'
		val := p.parseExpression(precLowest)
		return &ast.Node{Kind: ast.Op, OpSymbol: ":", IsBinary: true, Left: ast.MakeId(pos, name), Right: val, Line: pos.Line, Column: pos.Column}
	}
	if p.at(token.TRIPLE_DOT) {
		pos := p.pos_()
		p.advance()
		val := p.parseExpression(precLowest)
		return &ast.Node{Kind: ast.Op, OpSymbol: "...", Right: val, Line: pos.Line, Column: pos.Column}
	}
	return p.parseExpression(precLowest)
}
