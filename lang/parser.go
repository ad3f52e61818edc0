// This file is part of corevm.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lang

import "fmt"

// parser is a hand-written recursive-descent substitute for the
// shift/reduce loop: each production below both shifts (advances the
// token stream) and reduces (builds the node) in the same call,
// honoring the same fixed precedence-and-right-context rule that a
// literal stack-based reducer would apply via its guard on the next
// token.
//
// It runs over a token slice produced by tokenize up front rather than
// pulling from the lexer one token at a time, so a lex error doesn't
// have to abort the whole pass: tokenize already collected every lex
// diagnostic it could find, and parsing proceeds over whatever tokens
// survived, accumulating any further parse diagnostics into the same
// capped errs list.
type parser struct {
	toks []token
	pos  int
	cur  token
	errs ErrSyntax
}

func newParserFrom(src string) *parser {
	toks, lexErrs := tokenize(src)
	p := &parser{toks: toks, errs: lexErrs}
	p.cur = p.toks[0]
	return p
}

func (p *parser) advance() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	p.cur = p.toks[p.pos]
}

// syntaxErrorf records a diagnostic at the current token's position
// (capped at maxErrors) and returns it as a sentinel error that tells
// the caller chain to unwind to the nearest statement boundary.
func (p *parser) syntaxErrorf(format string, args ...interface{}) error {
	e := &SyntaxError{p.cur.row, p.cur.col, fmt.Sprintf(format, args...)}
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, e)
	}
	return e
}

func (p *parser) skipEOLs() {
	for p.cur.kind == tokEOL {
		p.advance()
	}
}

// recover skips tokens until a statement boundary: an EOL (consumed,
// along with any further EOLs), EOF, or (if set) the enclosing block's
// closing keyword, left unconsumed for the caller to match. This lets
// one malformed statement get reported without stopping every later
// diagnostic from being collected too.
func (p *parser) recover(stopKeyword *string) {
	for {
		switch {
		case p.cur.kind == tokEOF:
			return
		case p.cur.kind == tokEOL:
			p.advance()
			p.skipEOLs()
			return
		case stopKeyword != nil && p.cur.kind == tokKeyword && p.cur.text == *stopKeyword:
			return
		}
		p.advance()
	}
}

// parseProgram parses the whole source into a top-level statement
// list: the source-level analogue of the grammar's "exactly one
// statement node must remain" rule, represented here as the ordered
// sequence statement-concatenation reduces to.
func parseProgram(src string) ([]node, error) {
	p := newParserFrom(src)
	if len(p.errs) >= maxErrors {
		return nil, p.errs
	}
	p.skipEOLs()
	stmts := p.parseStmtList(nil)
	if len(p.errs) == 0 && p.cur.kind != tokEOF {
		p.syntaxErrorf("unexpected trailing input")
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return stmts, nil
}

// parseStmtList parses statements separated by one or more EOLs until
// EOF or, if stopKeyword is set, a keyword token bearing that text
// (left unconsumed for the caller to match). A statement that fails to
// parse is recorded and skipped via recover so the rest of the source
// still gets a chance to report its own diagnostics.
func (p *parser) parseStmtList(stopKeyword *string) []node {
	var stmts []node
	for {
		if p.cur.kind == tokEOF {
			return stmts
		}
		if stopKeyword != nil && p.cur.kind == tokKeyword && p.cur.text == *stopKeyword {
			return stmts
		}
		if len(p.errs) >= maxErrors {
			return stmts
		}
		stmt, err := p.parseStmt()
		if err != nil {
			p.recover(stopKeyword)
			continue
		}
		stmts = append(stmts, stmt)
		p.skipEOLs()
	}
}

func (p *parser) parseStmt() (node, error) {
	switch {
	case p.cur.kind == tokKeyword && p.cur.text == "if":
		return p.parseIf()
	case p.cur.kind == tokKeyword && p.cur.text == "while":
		return p.parseWhile()
	case p.cur.kind == tokIdent:
		return p.parseAssign()
	default:
		return nil, p.syntaxErrorf("expected statement")
	}
}

func (p *parser) parseAssign() (node, error) {
	name := p.cur.text
	p.advance()
	if p.cur.kind != tokAssign {
		return nil, p.syntaxErrorf("expected '=' after %q", name)
	}
	p.advance()
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &assignNode{name: name, val: val}, nil
}

func (p *parser) parseIf() (node, error) {
	p.advance() // consume 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipEOLs()
	end := "end"
	body := p.parseStmtList(&end)
	if p.cur.kind != tokKeyword || p.cur.text != "end" {
		return nil, p.syntaxErrorf("expected 'end' to close 'if'")
	}
	p.advance()
	return &ifNode{cond: cond, body: body}, nil
}

func (p *parser) parseWhile() (node, error) {
	p.advance() // consume 'while'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipEOLs()
	end := "end"
	body := p.parseStmtList(&end)
	if p.cur.kind != tokKeyword || p.cur.text != "end" {
		return nil, p.syntaxErrorf("expected 'end' to close 'while'")
	}
	p.advance()
	return &whileNode{cond: cond, body: body}, nil
}

// parseExpr parses a binary expression via precedence climbing: an
// operator is only consumed (and its left-hand reduction fired) when
// its precedence meets the caller's floor, i.e. "don't reduce yet if
// the next token binds tighter."
func (p *parser) parseExpr() (node, error) {
	return p.parseBinary(0)
}

func (p *parser) parseBinary(minPrec int) (node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOp {
		prec, ok := opPrec[p.cur.text]
		if !ok || prec < minPrec {
			break
		}
		op := p.cur.text
		p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		p.advance()
		return &numberNode{val: v}, nil
	case tokIdent:
		name := p.cur.text
		p.advance()
		if p.cur.kind == tokLParen {
			return p.parseCall(name)
		}
		return &fieldNode{name: name}, nil
	case tokKeyword:
		// read is lexed as a keyword; it is the only keyword that can
		// start an expression.
		if p.cur.text != "read" {
			return nil, p.syntaxErrorf("expected expression")
		}
		p.advance()
		if p.cur.kind != tokLParen {
			return nil, p.syntaxErrorf("expected '(' after read")
		}
		return p.parseCall("read")
	case tokLParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, p.syntaxErrorf("expected ')'")
		}
		p.advance()
		return inner, nil
	default:
		return nil, p.syntaxErrorf("expected expression")
	}
}

// parseCall parses name(args); the only builtin call is read(port),
// whose sole argument must be an integer literal.
func (p *parser) parseCall(name string) (node, error) {
	if name != "read" {
		return nil, p.syntaxErrorf("unknown call %q", name)
	}
	p.advance() // consume '('
	if p.cur.kind != tokNumber {
		return nil, p.syntaxErrorf("read() argument must be an integer literal")
	}
	port := p.cur.num
	p.advance()
	if p.cur.kind != tokRParen {
		return nil, p.syntaxErrorf("expected ')'")
	}
	p.advance()
	return &readNode{port: port}, nil
}
