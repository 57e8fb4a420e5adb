package parser

import (
	"github.com/dibsonthis/Glide/internal/ast"
	"github.com/dibsonthis/Glide/internal/token"
)

// parseStatement parses one top-level or block-level statement:
// control-flow forms, `import`, or a bare expression (which itself
// covers declarations/assignments, since `=` is parsed as a low-
// precedence binary operator over identifiers/member/index targets).
func (p *Parser) parseStatement() *ast.Node {
	switch p.cur().Kind {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.MATCH:
		return p.parseMatch()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		pos := p.pos_()
		p.advance()
		return &ast.Node{Kind: ast.Break, Line: pos.Line, Column: pos.Column}
	case token.CONTINUE:
		pos := p.pos_()
		p.advance()
		return &ast.Node{Kind: ast.Continue, Line: pos.Line, Column: pos.Column}
	case token.IMPORT:
		return p.parseImport()
	default:
		return p.parseExpression(precLowest)
	}
}

func (p *Parser) parseBlock() *ast.Node {
	pos := p.pos_()
	p.expect(token.LBRACE)
	p.skipSeparators()
	var stmts []*ast.Node
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipSeparators()
	}
	p.expect(token.RBRACE)
	return ast.MakeBlock(pos, stmts)
}

// parseIf handles both forms sharing the `if` keyword: the single
// conditional statement `if (c) {b}` and the sequential-guard block
// `if { c1: e1; c2: e2; else: e3 }` (§4.4).
func (p *Parser) parseIf() *ast.Node {
	pos := p.pos_()
	p.advance() // 'if'

	if p.at(token.LBRACE) {
		node := &ast.Node{Kind: ast.IfBlock, Line: pos.Line, Column: pos.Column}
		p.advance()
		p.skipSeparators()
		for !p.at(token.RBRACE) && !p.at(token.EOF) {
			var cond *ast.Node
			if p.at(token.ELSE) {
				p.advance()
			} else {
				cond = p.parseExpression(precLowest)
			}
			p.expect(token.COLON)
			body := p.parseExpression(precLowest)
			node.Cases = append(node.Cases, &ast.Case{Cond: cond, Body: body})
			p.skipSeparators()
		}
		p.expect(token.RBRACE)
		return node
	}

	p.expect(token.LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(token.RPAREN)
	body := p.parseBlock()
	node := &ast.Node{Kind: ast.IfStatement, Left: cond, Body: body, Line: pos.Line, Column: pos.Column}
	if p.at(token.ELSE) {
		p.advance()
		var elseBody *ast.Node
		if p.at(token.IF) {
			elseBody = p.parseIf()
		} else {
			elseBody = p.parseBlock()
		}
		node.Right = elseBody
	}
	return node
}

func (p *Parser) parseWhile() *ast.Node {
	pos := p.pos_()
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.Node{Kind: ast.WhileLoop, Left: cond, Body: body, Line: pos.Line, Column: pos.Column}
}

// parseFor handles `for [iter] {b}`, `for [iter, i] {b}`, and
// `for [iter, i, x] {b}` (§4.4).
func (p *Parser) parseFor() *ast.Node {
	pos := p.pos_()
	p.advance()
	p.expect(token.LBRACKET)
	iter := p.parseExpression(precLowest)
	var names []string
	for p.at(token.COMMA) {
		p.advance()
		names = append(names, p.expect(token.IDENT).Lexeme)
	}
	p.expect(token.RBRACKET)
	body := p.parseBlock()
	return &ast.Node{Kind: ast.ForLoop, Left: iter, LoopVars: names, Body: body, Line: pos.Line, Column: pos.Column}
}

func (p *Parser) parseMatch() *ast.Node {
	pos := p.pos_()
	p.advance()
	p.expect(token.LPAREN)
	value := p.parseExpression(precLowest)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	p.skipSeparators()
	node := &ast.Node{Kind: ast.MatchBlock, Left: value, Line: pos.Line, Column: pos.Column}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		var pattern *ast.Node
		if p.at(token.ELSE) {
			p.advance()
		} else {
			pattern = p.parsePattern()
		}
		p.expect(token.COLON)
		body := p.parseExpression(precLowest)
		node.Cases = append(node.Cases, &ast.Case{Cond: pattern, Body: body})
		p.skipSeparators()
	}
	p.expect(token.RBRACE)
	return node
}

func (p *Parser) parseReturn() *ast.Node {
	pos := p.pos_()
	p.advance()
	var val *ast.Node
	if !p.at(token.NEWLINE) && !p.at(token.SEMICOLON) && !p.at(token.RBRACE) && !p.at(token.EOF) {
		val = p.parseExpression(precLowest)
	}
	return &ast.Node{Kind: ast.Return, Left: val, Line: pos.Line, Column: pos.Column}
}

// parseImport models `import(path)` as an ordinary function call node;
// the evaluator's import built-in (§4.9) handles it at call time.
func (p *Parser) parseImport() *ast.Node {
	pos := p.pos_()
	p.advance()
	p.expect(token.LPAREN)
	pathExpr := p.parseExpression(precLowest)
	p.expect(token.RPAREN)
	call := &ast.Node{Kind: ast.FuncCall, Left: ast.MakeId(pos, "import"), Line: pos.Line, Column: pos.Column}
	call.Args = []*ast.Node{pathExpr}
	return call
}
