package parser

func (p *Parser) parseBlock() NodeIndex {
	start := p.startOffset()
	p.enterDepth()
	defer p.exitDepth()
	p.expectOrFail(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		p.parseBlockStatement()
		progress()
	}
	p.expectOrFail(TokenRBrace)
	return p.alloc(KindBlock, start)
}

// parseBlockStatement dispatches a statement that may begin a local
// class declaration, a local variable declaration (including the
// contextual "var" spelling), or an ordinary statement.
func (p *Parser) parseBlockStatement() NodeIndex {
	start := p.startOffset()

	if isLocalClassStart(p) {
		p.parseModifiers(Context{AtTypeDeclarationHead: true})
		switch {
		case p.check(TokenClass):
			decl := p.parseClassDecl(start)
			return p.alloc(KindLocalClassDecl, p.arena.Get(decl).Start)
		case p.check(TokenInterface):
			return p.parseInterfaceDecl(start)
		case p.check(TokenEnum):
			return p.parseEnumDecl(start)
		case p.peekContextual(KeywordRecord):
			return p.parseRecordDecl(start)
		}
	}

	if p.isLocalVarDeclStart() {
		return p.parseLocalVarDecl(start)
	}

	return p.parseStatement()
}

// isLocalClassStart looks past a run of modifier/annotation tokens
// (without consuming them) to see whether a class/interface/enum/record
// keyword follows, so a local declaration like "final int x" is never
// mistaken for "final class Foo {}".
func isLocalClassStart(p *Parser) bool {
	n := 0
	for {
		tok := p.peekN(n)
		switch tok.Kind {
		case TokenFinal, TokenAbstract, TokenStatic:
			n++
			continue
		case TokenAt:
			n += 2 // skip "@" and the annotation name; good enough for the common unparenthesized case
			continue
		case TokenClass, TokenInterface, TokenEnum:
			return true
		}
		if tok.Kind == TokenIdent && spellingOf(tok.Literal) == KeywordRecord && p.peekN(n+1).Kind == TokenIdent {
			return true
		}
		return false
	}
}

// isLocalVarDeclStart reports whether the tokens ahead look like
// "Type Ident" (or "var Ident") rather than an expression statement.
// Java's grammar makes this genuinely ambiguous in general (e.g. "a.b
// c;" is a local declaration, "a.b();" is not); this parser resolves it
// by speculatively parsing a type and checking that an identifier
// followed by '=', ';', ',', ':' or '[' comes next, then rewinding the
// token cursor and the arena watermark.
func (p *Parser) isLocalVarDeclStart() bool {
	if p.peekContextual(KeywordVar) && p.peekN(1).Kind == TokenIdent {
		return true
	}
	switch p.peek().Kind {
	case TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt, TokenLong, TokenFloat, TokenDouble, TokenFinal:
		return true
	}
	if !p.isIdentifierLike() && p.peek().Kind != TokenAt {
		return false
	}
	watermark := p.arena.Watermark()
	save := p.pos
	ok := p.trySpeculativeTypeThenIdent()
	p.pos = save
	p.arena.TruncateTo(watermark)
	return ok
}

func (p *Parser) trySpeculativeTypeThenIdent() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); isBail {
				ok = false
				p.failure = nil
				return
			}
			panic(r)
		}
	}()
	for p.check(TokenAt) {
		p.parseAnnotation()
	}
	p.parseType()
	if !p.isIdentifierLike() {
		return false
	}
	switch p.peekN(1).Kind {
	case TokenAssign, TokenSemicolon, TokenComma, TokenColon, TokenLBracket:
		return true
	}
	return false
}

func (p *Parser) parseLocalVarDecl(start uint32) NodeIndex {
	p.parseModifiers(Context{})
	savedFlag := p.ctx.AtLocalVarTypePosition
	p.ctx.AtLocalVarTypePosition = true
	p.parseType()
	p.ctx.AtLocalVarTypePosition = savedFlag

	name := p.expectIdentOrFail()
	p.parseVariableDeclaratorTail()
	for p.check(TokenComma) {
		p.advance()
		p.expectIdentOrFail()
		p.parseVariableDeclaratorTail()
	}
	p.expectOrFail(TokenSemicolon)
	return p.allocAttr(KindLocalVarDecl, start, NameAttribute{Name: name.Literal})
}

// parseStatement parses every non-declaration statement form.
func (p *Parser) parseStatement() NodeIndex {
	p.enterDepth()
	defer p.exitDepth()
	start := p.startOffset()

	switch p.peek().Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenSemicolon:
		p.advance()
		return p.alloc(KindEmptyStmt, start)
	case TokenIf:
		return p.parseIfStmt(start)
	case TokenFor:
		return p.parseForStmt(start)
	case TokenWhile:
		return p.parseWhileStmt(start)
	case TokenDo:
		return p.parseDoWhileStmt(start)
	case TokenSwitch:
		return p.parseSwitchStmtOrExpr(start, true)
	case TokenReturn:
		return p.parseReturnStmt(start)
	case TokenBreak:
		return p.parseBreakStmt(start)
	case TokenContinue:
		return p.parseContinueStmt(start)
	case TokenThrow:
		return p.parseThrowStmt(start)
	case TokenTry:
		return p.parseTryStmt(start)
	case TokenSynchronized:
		return p.parseSynchronizedStmt(start)
	case TokenAssert:
		return p.parseAssertStmt(start)
	}

	if p.peekContextual(KeywordYield) {
		savedFlag := p.ctx.AtSwitchExprStmtHead
		p.ctx.AtSwitchExprStmtHead = true
		isYield := p.peekContextual(KeywordYield) && p.peekN(1).Kind != TokenSemicolon && p.peekN(1).Kind != TokenAssign
		p.ctx.AtSwitchExprStmtHead = savedFlag
		if isYield {
			return p.parseYieldStmt(start)
		}
	}

	if p.isIdentifierLike() && p.peekN(1).Kind == TokenColon {
		label := p.advance()
		p.advance()
		p.parseStatement()
		return p.allocAttr(KindLabeledStmt, start, NameAttribute{Name: label.Literal})
	}

	p.parseExpression()
	p.expectOrFail(TokenSemicolon)
	return p.alloc(KindExprStmt, start)
}

func (p *Parser) parseIfStmt(start uint32) NodeIndex {
	p.advance()
	p.expectOrFail(TokenLParen)
	p.parseExpression()
	p.expectOrFail(TokenRParen)
	p.parseStatement()
	if p.check(TokenElse) {
		p.advance()
		p.parseStatement()
	}
	return p.alloc(KindIfStmt, start)
}

func (p *Parser) parseWhileStmt(start uint32) NodeIndex {
	p.advance()
	p.expectOrFail(TokenLParen)
	p.parseExpression()
	p.expectOrFail(TokenRParen)
	p.parseStatement()
	return p.alloc(KindWhileStmt, start)
}

func (p *Parser) parseDoWhileStmt(start uint32) NodeIndex {
	p.advance()
	p.parseStatement()
	p.expectOrFail(TokenWhile)
	p.expectOrFail(TokenLParen)
	p.parseExpression()
	p.expectOrFail(TokenRParen)
	p.expectOrFail(TokenSemicolon)
	return p.alloc(KindDoWhileStmt, start)
}

// parseForStmt disambiguates the basic and enhanced ("for each") forms
// with isEnhancedForHeader's speculative parse of the header's start.
func (p *Parser) parseForStmt(start uint32) NodeIndex {
	p.advance()
	p.expectOrFail(TokenLParen)

	if p.isEnhancedForHeader() {
		p.parseModifiers(Context{})
		savedFlag := p.ctx.AtLocalVarTypePosition
		p.ctx.AtLocalVarTypePosition = true
		p.parseType()
		p.ctx.AtLocalVarTypePosition = savedFlag
		p.expectIdentOrFail()
		p.expectOrFail(TokenColon)
		p.parseExpression()
		p.expectOrFail(TokenRParen)
		p.parseStatement()
		return p.alloc(KindEnhancedForStmt, start)
	}

	initStart := p.startOffset()
	if !p.check(TokenSemicolon) {
		if p.isLocalVarDeclStart() {
			p.parseModifiers(Context{})
			savedFlag := p.ctx.AtLocalVarTypePosition
			p.ctx.AtLocalVarTypePosition = true
			p.parseType()
			p.ctx.AtLocalVarTypePosition = savedFlag
			p.expectIdentOrFail()
			p.parseVariableDeclaratorTail()
			for p.check(TokenComma) {
				p.advance()
				p.expectIdentOrFail()
				p.parseVariableDeclaratorTail()
			}
		} else {
			p.parseExpression()
			for p.check(TokenComma) {
				p.advance()
				p.parseExpression()
			}
		}
	}
	p.alloc(KindForInit, initStart)
	p.expectOrFail(TokenSemicolon)

	if !p.check(TokenSemicolon) {
		p.parseExpression()
	}
	p.expectOrFail(TokenSemicolon)

	updateStart := p.startOffset()
	if !p.check(TokenRParen) {
		p.parseExpression()
		for p.check(TokenComma) {
			p.advance()
			p.parseExpression()
		}
	}
	p.alloc(KindForUpdate, updateStart)
	p.expectOrFail(TokenRParen)
	p.parseStatement()
	return p.alloc(KindForStmt, start)
}

// isEnhancedForHeader speculatively parses an optional "final"/annotation
// run and a type to see whether "Ident :" follows, then rewinds the token
// cursor and the arena watermark and clears any failure the attempt
// recorded, so no allocation or error is committed.
func (p *Parser) isEnhancedForHeader() bool {
	watermark := p.arena.Watermark()
	save := p.pos
	defer func() {
		p.pos = save
		p.arena.TruncateTo(watermark)
		if recover() != nil {
			p.failure = nil
		}
	}()
	for p.check(TokenFinal) || p.check(TokenAt) {
		if p.check(TokenAt) {
			p.parseAnnotation()
		} else {
			p.advance()
		}
	}
	p.parseType()
	if !p.isIdentifierLike() {
		return false
	}
	p.advance()
	return p.check(TokenColon)
}

func (p *Parser) parseReturnStmt(start uint32) NodeIndex {
	p.advance()
	if !p.check(TokenSemicolon) {
		p.parseExpression()
	}
	p.expectOrFail(TokenSemicolon)
	return p.alloc(KindReturnStmt, start)
}

func (p *Parser) parseBreakStmt(start uint32) NodeIndex {
	p.advance()
	if p.isIdentifierLike() {
		p.advance()
	}
	p.expectOrFail(TokenSemicolon)
	return p.alloc(KindBreakStmt, start)
}

func (p *Parser) parseContinueStmt(start uint32) NodeIndex {
	p.advance()
	if p.isIdentifierLike() {
		p.advance()
	}
	p.expectOrFail(TokenSemicolon)
	return p.alloc(KindContinueStmt, start)
}

func (p *Parser) parseYieldStmt(start uint32) NodeIndex {
	p.advance()
	p.parseExpression()
	p.expectOrFail(TokenSemicolon)
	return p.alloc(KindYieldStmt, start)
}

func (p *Parser) parseThrowStmt(start uint32) NodeIndex {
	p.advance()
	p.parseExpression()
	p.expectOrFail(TokenSemicolon)
	return p.alloc(KindThrowStmt, start)
}

func (p *Parser) parseAssertStmt(start uint32) NodeIndex {
	p.advance()
	p.parseExpression()
	if p.check(TokenColon) {
		p.advance()
		p.parseExpression()
	}
	p.expectOrFail(TokenSemicolon)
	return p.alloc(KindAssertStmt, start)
}

func (p *Parser) parseSynchronizedStmt(start uint32) NodeIndex {
	p.advance()
	p.expectOrFail(TokenLParen)
	p.parseExpression()
	p.expectOrFail(TokenRParen)
	p.parseBlock()
	return p.alloc(KindSynchronizedStmt, start)
}

func (p *Parser) parseTryStmt(start uint32) NodeIndex {
	p.advance()
	hasResources := false
	if p.check(TokenLParen) {
		hasResources = true
		p.parseResourceList()
	}
	p.parseBlock()
	sawCatchOrFinally := false
	for p.check(TokenCatch) {
		sawCatchOrFinally = true
		p.parseCatchClause()
	}
	if p.check(TokenFinally) {
		sawCatchOrFinally = true
		finallyStart := p.startOffset()
		p.advance()
		p.parseBlock()
		p.alloc(KindFinallyClause, finallyStart)
	}
	if !hasResources && !sawCatchOrFinally {
		p.bail("try statement requires a catch, finally, or resource list")
	}
	return p.alloc(KindTryStmt, start)
}

func (p *Parser) parseResourceList() {
	p.enterDepth()
	defer p.exitDepth()
	p.advance() // (
	for {
		p.parseResource()
		if p.check(TokenSemicolon) {
			p.advance()
			if p.check(TokenRParen) {
				break
			}
			continue
		}
		break
	}
	p.expectOrFail(TokenRParen)
}

// parseResource parses either a fresh resource declaration ("Type ident
// = expr") or a bare variable-access expression referring to an
// effectively-final local (the try-with-resources shorthand added in
// Java 9).
func (p *Parser) parseResource() NodeIndex {
	start := p.startOffset()
	if p.isLocalVarDeclStart() {
		p.parseModifiers(Context{})
		savedFlag := p.ctx.AtLocalVarTypePosition
		p.ctx.AtLocalVarTypePosition = true
		p.parseType()
		p.ctx.AtLocalVarTypePosition = savedFlag
		p.expectIdentOrFail()
		p.expectOrFail(TokenAssign)
		p.parseExpression()
		return p.alloc(KindResource, start)
	}
	p.parseExpression()
	return p.alloc(KindResource, start)
}

func (p *Parser) parseCatchClause() NodeIndex {
	start := p.startOffset()
	p.advance()
	p.expectOrFail(TokenLParen)
	p.parseModifiers(Context{})
	p.parseType()
	for p.check(TokenBitOr) {
		p.advance()
		p.parseType()
	}
	p.expectIdentOrFail()
	p.expectOrFail(TokenRParen)
	p.parseBlock()
	return p.alloc(KindCatchClause, start)
}

// parseSwitchStmtOrExpr parses a switch construct; asStatement controls
// only the resulting node kind, since statement and expression switches
// share an identical header-and-arms grammar and are told apart purely
// by the grammar position the caller already knows about.
func (p *Parser) parseSwitchStmtOrExpr(start uint32, asStatement bool) NodeIndex {
	p.advance()
	p.expectOrFail(TokenLParen)
	p.parseExpression()
	p.expectOrFail(TokenRParen)
	p.expectOrFail(TokenLBrace)

	isArrowForm := p.peek().Kind == TokenCase && p.looksLikeArrowCase() ||
		p.peek().Kind == TokenDefault && p.peekN(1).Kind == TokenArrow

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		if isArrowForm {
			p.parseSwitchArrowArm()
		} else {
			p.parseSwitchColonGroup()
		}
		progress()
	}
	p.expectOrFail(TokenRBrace)
	if asStatement {
		return p.alloc(KindSwitchStmt, start)
	}
	return p.alloc(KindSwitchExpr, start)
}

// looksLikeArrowCase scans ahead from "case" to the label's terminator
// without committing arena allocations, to tell "case X ->" from
// "case X :" before deciding which arm grammar to use for the whole
// switch block (Java forbids mixing the two within one switch).
func (p *Parser) looksLikeArrowCase() bool {
	watermark := p.arena.Watermark()
	save := p.pos
	defer func() {
		p.pos = save
		p.arena.TruncateTo(watermark)
		recover()
	}()
	p.advance() // case
	depth := 0
	for {
		switch p.peek().Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
			p.advance()
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth == 0 {
				return false
			}
			depth--
			p.advance()
		case TokenArrow:
			if depth == 0 {
				return true
			}
			p.advance()
		case TokenColon:
			if depth == 0 {
				return false
			}
			p.advance()
		case TokenEOF:
			return false
		default:
			p.advance()
		}
	}
}

func (p *Parser) parseSwitchArrowArm() NodeIndex {
	start := p.startOffset()
	p.parseSwitchLabel()
	// parseSwitchLabel has already consumed the label's terminator; an
	// arrow-form switch accepts only "->" there.
	if p.tokens[p.pos-1].Kind != TokenArrow {
		p.bail("expected '->'", TokenArrow)
	}
	switch {
	case p.check(TokenLBrace):
		p.parseBlock()
	case p.check(TokenThrow):
		p.parseThrowStmt(p.startOffset())
	default:
		p.parseExpression()
		p.expectOrFail(TokenSemicolon)
	}
	return p.alloc(KindSwitchExpressionArm, start)
}

func (p *Parser) parseSwitchColonGroup() NodeIndex {
	start := p.startOffset()
	p.parseSwitchLabel()
	for p.check(TokenCase) || p.check(TokenDefault) {
		p.parseSwitchLabel()
	}
	for !p.check(TokenCase) && !p.check(TokenDefault) && !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		p.parseBlockStatement()
		progress()
	}
	return p.alloc(KindSwitchExpressionArm, start)
}

func (p *Parser) parseSwitchLabel() NodeIndex {
	start := p.startOffset()
	if p.check(TokenDefault) {
		p.advance()
		p.expectSwitchLabelTerminator()
		return p.alloc(KindSwitchLabel, start)
	}
	p.expectOrFail(TokenCase)
	if p.check(TokenNull) {
		p.advance()
	} else if p.looksLikePatternLabel() {
		p.parsePattern()
	} else {
		p.parseTernaryExpr()
	}
	for p.check(TokenComma) {
		p.advance()
		if p.check(TokenNull) {
			p.advance()
		} else if p.check(TokenDefault) {
			p.advance()
		} else {
			p.parseTernaryExpr()
		}
	}
	if p.peekContextual(KeywordWhen) {
		guardStart := p.startOffset()
		p.advance()
		p.parseExpression()
		p.alloc(KindGuard, guardStart)
	}
	p.expectSwitchLabelTerminator()
	return p.alloc(KindSwitchLabel, start)
}

func (p *Parser) expectSwitchLabelTerminator() {
	if p.check(TokenArrow) || p.check(TokenColon) {
		p.advance()
		return
	}
	p.bail("expected ':' or '->'")
}

// looksLikePatternLabel distinguishes a type/record pattern case label
// ("case Foo f" / "case Point(int x, int y)") from a constant expression
// case label by checking whether a type reference is immediately
// followed by a binding identifier or a record-pattern "(".
func (p *Parser) looksLikePatternLabel() bool {
	if !p.isIdentifierLike() {
		return false
	}
	watermark := p.arena.Watermark()
	save := p.pos
	defer func() {
		p.pos = save
		p.arena.TruncateTo(watermark)
		recover()
	}()
	p.parseType()
	if p.check(TokenLParen) {
		return true
	}
	return p.isIdentifierLike()
}

// parsePattern parses a type pattern ("Type ident") or a record pattern
// ("Type (" pattern ("," pattern)* ")"), requiring the version gate for
// the record-pattern form.
func (p *Parser) parsePattern() NodeIndex {
	start := p.startOffset()
	p.requireVersion(FeaturePatternMatchingInstanceof, "pattern matching")
	p.parseType()
	if p.check(TokenLParen) {
		p.requireVersion(FeatureRecordPatterns, "record patterns")
		p.enterDepth()
		p.advance()
		if !p.check(TokenRParen) {
			for {
				p.parsePattern()
				if !p.check(TokenComma) {
					break
				}
				p.advance()
			}
		}
		p.expectOrFail(TokenRParen)
		p.exitDepth()
		var name string
		if p.isIdentifierLike() {
			name = p.advance().Literal
		}
		return p.allocAttr(KindRecordPattern, start, BindingAttribute{Name: name, IsUnnamed: name == ""})
	}
	name := p.expectIdentOrFail()
	isUnnamed := name.Literal == "_"
	if isUnnamed {
		p.requireVersion(FeatureUnnamedVariables, "unnamed pattern variables")
		return p.alloc(KindMatchAllPattern, start)
	}
	return p.allocAttr(KindTypePattern, start, BindingAttribute{Name: name.Literal, IsUnnamed: isUnnamed})
}
