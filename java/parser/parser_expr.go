package parser

// parseExpression parses a full expression, including assignment, which
// sits at the bottom of Java's precedence table.
func (p *Parser) parseExpression() NodeIndex {
	return p.parseAssignmentExpr()
}

var assignmentOps = map[TokenKind]bool{
	TokenAssign: true, TokenPlusAssign: true, TokenMinusAssign: true,
	TokenStarAssign: true, TokenSlashAssign: true, TokenPercentAssign: true,
	TokenAndAssign: true, TokenOrAssign: true, TokenXorAssign: true,
	TokenShlAssign: true, TokenShrAssign: true, TokenUShrAssign: true,
}

func (p *Parser) parseAssignmentExpr() NodeIndex {
	if isLambdaStart(p) {
		return p.parseLambdaExpr()
	}
	start := p.startOffset()
	left := p.parseTernaryExpr()
	if assignmentOps[p.peek().Kind] {
		p.advance()
		p.parseAssignmentExpr()
		return p.alloc(KindAssignmentExpr, start)
	}
	return left
}

// isLambdaStart recognizes the three lambda parameter shapes: a bare
// identifier, "()", or a parenthesized parameter list, each immediately
// followed by "->". It never backtracks through the arena because it
// never allocates: every check here is plain token lookahead.
func isLambdaStart(p *Parser) bool {
	if p.isIdentifierLike() && p.peekN(1).Kind == TokenArrow {
		return true
	}
	if p.check(TokenLParen) {
		return scansAsLambdaParams(p)
	}
	return false
}

// scansAsLambdaParams scans forward from "(" to its matching ")" using
// plain token depth counting (no arena allocation, so no watermark is
// needed) and reports whether "->" immediately follows.
func scansAsLambdaParams(p *Parser) bool {
	depth := 0
	i := 0
	for {
		tok := p.peekN(i)
		switch tok.Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				return p.peekN(i+1).Kind == TokenArrow
			}
		case TokenEOF:
			return false
		}
		i++
		if i > 4096 {
			return false
		}
	}
}

func (p *Parser) parseLambdaExpr() NodeIndex {
	start := p.startOffset()
	p.parseLambdaParameters()
	p.expectOrFail(TokenArrow)
	if p.check(TokenLBrace) {
		p.parseBlock()
	} else {
		p.parseExpression()
	}
	return p.alloc(KindLambdaExpr, start)
}

func (p *Parser) parseLambdaParameters() NodeIndex {
	start := p.startOffset()
	if !p.check(TokenLParen) {
		name := p.expectIdentOrFail()
		return p.allocAttr(KindParameters, start, ParameterAttribute{Name: name.Literal})
	}
	p.enterDepth()
	defer p.exitDepth()
	p.advance()
	if !p.check(TokenRParen) {
		for {
			p.parseLambdaParameter()
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	p.expectOrFail(TokenRParen)
	return p.alloc(KindParameters, start)
}

// parseLambdaParameter handles both the untyped shorthand ("x") and the
// fully typed form ("final Foo<Bar> x"), distinguished by whether
// anything besides a bare identifier (or "var") precedes the comma/paren.
func (p *Parser) parseLambdaParameter() NodeIndex {
	start := p.startOffset()
	if p.isIdentifierLike() && (p.peekN(1).Kind == TokenComma || p.peekN(1).Kind == TokenRParen) {
		name := p.advance()
		return p.allocAttr(KindParameterDecl, start, ParameterAttribute{Name: name.Literal, IsUnnamed: name.Literal == "_"})
	}
	mods := p.parseModifiers(Context{})
	modAttr, _ := p.arena.Attribute(mods)
	isFinal := modAttr.(ModifiersAttribute).Flags&ModFinal != 0
	savedFlag := p.ctx.AtLocalVarTypePosition
	p.ctx.AtLocalVarTypePosition = true
	p.parseType()
	p.ctx.AtLocalVarTypePosition = savedFlag
	name := p.expectIdentOrFail()
	return p.allocAttr(KindParameterDecl, start, ParameterAttribute{Name: name.Literal, IsFinal: isFinal, IsUnnamed: name.Literal == "_"})
}

func (p *Parser) parseTernaryExpr() NodeIndex {
	start := p.startOffset()
	cond := p.parseBinaryExpr(0)
	if p.check(TokenQuestion) {
		p.enterDepth()
		defer p.exitDepth()
		p.advance()
		p.parseExpression()
		p.expectOrFail(TokenColon)
		if isLambdaStart(p) {
			p.parseLambdaExpr()
		} else {
			p.parseTernaryExpr()
		}
		return p.alloc(KindConditionalExpr, start)
	}
	return cond
}

// binaryPrecedence maps each binary operator token to its precedence
// level; higher binds tighter. instanceof sits at the relational level.
var binaryPrecedence = map[TokenKind]int{
	TokenOr:      1,
	TokenAnd:     2,
	TokenBitOr:   3,
	TokenBitXor:  4,
	TokenBitAnd:  5,
	TokenEQ:      6,
	TokenNE:      6,
	TokenLT:      7,
	TokenLE:      7,
	TokenGT:      7,
	TokenGE:      7,
	TokenInstanceof: 7,
	TokenShl:     8,
	TokenShr:     8,
	TokenUShr:    8,
	TokenPlus:    9,
	TokenMinus:   9,
	TokenStar:    10,
	TokenSlash:   10,
	TokenPercent: 10,
}

// parseBinaryExpr implements precedence climbing over the shared binary
// operator table; instanceof is folded in at its relational precedence
// level since it has expression-like precedence but a type (or pattern)
// right-hand side instead of an expression.
func (p *Parser) parseBinaryExpr(minPrec int) NodeIndex {
	start := p.startOffset()
	left := p.parseUnaryExpr()

	for {
		tok := p.peek()
		prec, ok := binaryPrecedence[tok.Kind]
		if !ok || prec < minPrec {
			return left
		}

		if tok.Kind == TokenInstanceof {
			p.advance()
			if p.looksLikePatternLabel() {
				p.parsePattern()
			} else {
				p.parseType()
			}
			left = p.alloc(KindInstanceofExpr, start)
			continue
		}

		p.enterDepth()
		p.advance()
		p.parseBinaryExpr(prec + 1)
		p.exitDepth()
		left = p.alloc(KindBinaryExpr, start)
	}
}

func (p *Parser) parseUnaryExpr() NodeIndex {
	start := p.startOffset()
	switch p.peek().Kind {
	case TokenPlus, TokenMinus, TokenNot, TokenBitNot, TokenIncrement, TokenDecrement:
		p.enterDepth()
		defer p.exitDepth()
		p.advance()
		p.parseUnaryExpr()
		return p.alloc(KindUnaryExpr, start)
	case TokenLParen:
		if p.looksLikeCast() {
			return p.parseCastExpr(start)
		}
	}
	return p.parsePostfixExpr()
}

// looksLikeCast speculatively parses "(" Type ")" and reports whether
// what follows can begin a unary expression — the same ambiguity every
// C-family recursive-descent parser resolves by trial parse, here
// implemented via the arena watermark/token-position rewind pair rather
// than a second grammar.
func (p *Parser) looksLikeCast() bool {
	watermark := p.arena.Watermark()
	save := p.pos
	ok := func() (ok bool) {
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
		p.advance() // (
		switch p.peek().Kind {
		case TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt, TokenLong, TokenFloat, TokenDouble:
			p.parseType()
			if !p.check(TokenRParen) {
				return false
			}
			p.advance()
			return true
		}
		if !p.isIdentifierLike() {
			return false
		}
		p.parseType()
		for p.check(TokenBitAnd) {
			p.advance()
			p.parseType()
		}
		if !p.check(TokenRParen) {
			return false
		}
		p.advance()
		switch p.peek().Kind {
		case TokenIdent, TokenLParen, TokenThis, TokenSuper, TokenNew, TokenIntLiteral,
			TokenLongLiteral, TokenFloatLiteral, TokenDoubleLiteral, TokenCharLiteral,
			TokenStringLiteral, TokenTextBlock, TokenTrue, TokenFalse, TokenNull,
			TokenNot, TokenBitNot:
			return true
		}
		return false
	}()
	p.pos = save
	p.arena.TruncateTo(watermark)
	return ok
}

func (p *Parser) parseCastExpr(start uint32) NodeIndex {
	p.advance()
	p.parseType()
	for p.check(TokenBitAnd) {
		p.advance()
		p.parseType()
	}
	p.expectOrFail(TokenRParen)
	p.parseUnaryExpr()
	return p.alloc(KindCastExpr, start)
}

func (p *Parser) parsePostfixExpr() NodeIndex {
	start := p.startOffset()
	expr := p.parsePrimaryExpr(start)
	for {
		switch p.peek().Kind {
		case TokenDot:
			p.advance()
			switch {
			case p.check(TokenClass):
				p.advance()
				expr = p.alloc(KindClassLiteral, start)
			case p.check(TokenThis):
				p.advance()
				expr = p.alloc(KindThisExpr, start)
			case p.check(TokenNew):
				p.parseUnqualifiedNewAfterDot()
				expr = p.alloc(KindObjectCreation, start)
			case p.check(TokenLT):
				p.parseTypeArguments()
				name := p.expectIdentOrFail()
				if p.check(TokenLParen) {
					p.parseArgumentList()
					expr = p.allocAttr(KindMethodInvocation, start, NameAttribute{Name: name.Literal})
				} else {
					expr = p.allocAttr(KindFieldAccess, start, NameAttribute{Name: name.Literal})
				}
			default:
				name := p.expectIdentOrFail()
				if p.check(TokenLParen) {
					p.parseArgumentList()
					expr = p.allocAttr(KindMethodInvocation, start, NameAttribute{Name: name.Literal})
				} else {
					expr = p.allocAttr(KindFieldAccess, start, NameAttribute{Name: name.Literal})
				}
			}
		case TokenLBracket:
			if p.peekN(1).Kind == TokenRBracket {
				// Array access always has a non-empty index expression, so an
				// empty "[]" here can only be an array-type dimension leading
				// to a ".class" literal (e.g. "String[].class").
				for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
					p.advance()
					p.advance()
				}
				p.expectOrFail(TokenDot)
				p.expectOrFail(TokenClass)
				expr = p.alloc(KindClassLiteral, start)
			} else {
				p.advance()
				p.parseExpression()
				p.expectOrFail(TokenRBracket)
				expr = p.alloc(KindArrayAccess, start)
			}
		case TokenColonColon:
			p.advance()
			if p.check(TokenLT) {
				p.parseTypeArguments()
			}
			if p.check(TokenNew) {
				p.advance()
			} else {
				p.expectIdentOrFail()
			}
			expr = p.alloc(KindMethodReference, start)
		case TokenIncrement, TokenDecrement:
			p.advance()
			expr = p.alloc(KindPostfixExpr, start)
		default:
			return expr
		}
	}
}

func (p *Parser) parseUnqualifiedNewAfterDot() {
	if p.check(TokenLT) {
		p.parseTypeArguments()
	}
	p.expectIdentOrFail()
	if p.check(TokenLParen) {
		p.parseArgumentList()
	}
	if p.check(TokenLBrace) {
		p.parseClassBody()
	}
}

func (p *Parser) parsePrimaryExpr(start uint32) NodeIndex {
	tok := p.peek()
	switch tok.Kind {
	case TokenIntLiteral:
		p.advance()
		return p.alloc(KindIntLiteral, start)
	case TokenLongLiteral:
		p.advance()
		return p.alloc(KindLongLiteral, start)
	case TokenFloatLiteral:
		p.advance()
		return p.alloc(KindFloatLiteral, start)
	case TokenDoubleLiteral:
		p.advance()
		return p.alloc(KindDoubleLiteral, start)
	case TokenCharLiteral:
		p.advance()
		return p.alloc(KindCharLiteral, start)
	case TokenStringLiteral:
		p.advance()
		return p.alloc(KindStringLiteral, start)
	case TokenTextBlock:
		p.requireVersion(FeatureTextBlocks, "text blocks")
		p.advance()
		return p.alloc(KindTextBlockLiteral, start)
	case TokenTrue, TokenFalse:
		p.advance()
		return p.alloc(KindBooleanLiteral, start)
	case TokenNull:
		p.advance()
		return p.alloc(KindNullLiteral, start)
	case TokenThis:
		p.advance()
		if p.check(TokenLParen) {
			p.parseArgumentList()
			return p.alloc(KindExplicitConstructorInvocation, start)
		}
		return p.alloc(KindThisExpr, start)
	case TokenSuper:
		p.advance()
		if p.check(TokenLParen) {
			p.parseArgumentList()
			return p.alloc(KindExplicitConstructorInvocation, start)
		}
		if p.check(TokenColonColon) {
			p.advance()
			p.expectIdentOrFail()
			return p.alloc(KindMethodReference, start)
		}
		p.expectOrFail(TokenDot)
		name := p.expectIdentOrFail()
		if p.check(TokenLParen) {
			p.parseArgumentList()
			return p.allocAttr(KindMethodInvocation, start, NameAttribute{Name: name.Literal})
		}
		return p.allocAttr(KindFieldAccess, start, NameAttribute{Name: name.Literal})
	case TokenNew:
		return p.parseNewExpr(start)
	case TokenLParen:
		return p.parseParenExpr(start)
	case TokenSwitch:
		p.requireVersion(FeatureSwitchExpressions, "switch expressions")
		return p.parseSwitchStmtOrExpr(start, false)
	case TokenVoid, TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt, TokenLong, TokenFloat, TokenDouble:
		p.parseType()
		p.expectOrFail(TokenDot)
		p.expectOrFail(TokenClass)
		return p.alloc(KindClassLiteral, start)
	}

	if p.isIdentifierLike() {
		return p.parseNameOrInvocation(start)
	}

	return p.bail("expected an expression")
}

// parseNameOrInvocation parses a simple name, or a method invocation when
// the name is followed by an argument list. Dotted continuations and
// explicit type arguments are handled by parsePostfixExpr.
func (p *Parser) parseNameOrInvocation(start uint32) NodeIndex {
	name := p.advance()
	if p.check(TokenLParen) {
		p.parseArgumentList()
		return p.allocAttr(KindMethodInvocation, start, NameAttribute{Name: name.Literal})
	}
	return p.allocAttr(KindIdentifier, start, NameAttribute{Name: name.Literal})
}

func (p *Parser) parseParenExpr(start uint32) NodeIndex {
	p.enterDepth()
	defer p.exitDepth()
	p.advance()
	p.parseExpression()
	p.expectOrFail(TokenRParen)
	return p.alloc(KindParenExpr, start)
}

// parseNewExpr parses class instance creation and array creation, both
// beginning with "new". Array creation is told apart by a "[" or
// primitive/array-dimension shape following the type name; anonymous
// class bodies and array initializers are handled inline.
func (p *Parser) parseNewExpr(start uint32) NodeIndex {
	p.advance()
	if p.check(TokenLT) {
		p.parseTypeArguments()
	}

	typeStart := p.startOffset()
	for p.check(TokenAt) {
		p.parseAnnotation()
	}
	switch p.peek().Kind {
	case TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt, TokenLong, TokenFloat, TokenDouble:
		p.advance()
	default:
		p.parseTypeName()
	}
	p.alloc(KindType, typeStart)

	if p.check(TokenLBracket) {
		return p.parseArrayCreationTail(start)
	}

	if p.check(TokenLT) {
		p.parseTypeArguments()
	}
	p.parseArgumentList()
	if p.check(TokenLBrace) {
		p.parseClassBody()
	}
	return p.alloc(KindObjectCreation, start)
}

func (p *Parser) parseArrayCreationTail(start uint32) NodeIndex {
	sawExprDim := false
	for p.check(TokenLBracket) {
		p.advance()
		if !p.check(TokenRBracket) {
			p.parseExpression()
			sawExprDim = true
		}
		p.expectOrFail(TokenRBracket)
	}
	if p.check(TokenLBrace) {
		p.parseArrayInitializerLike(func() { p.parseVariableInitializer() })
	} else if !sawExprDim {
		p.bail("array creation requires either a dimension expression or an initializer")
	}
	return p.alloc(KindArrayCreation, start)
}
