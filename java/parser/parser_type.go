package parser

// parseModifiers consumes a run of annotations and modifier keywords
// (including the contextual "sealed"/"non-sealed" spellings when ctx
// says a type declaration head is expected) and allocates a single
// KindModifiers node covering the whole run, even when the run is
// empty — callers always get a node to attach as a child.
func (p *Parser) parseModifiers(ctx Context) NodeIndex {
	start := p.startOffset()
	var flags ModifierFlags
	for {
		if p.check(TokenAt) && p.peekN(1).Kind != TokenInterface {
			p.parseAnnotation()
			continue
		}
		switch p.peek().Kind {
		case TokenPublic:
			p.advance()
			flags |= ModPublic
			continue
		case TokenPrivate:
			p.advance()
			flags |= ModPrivate
			continue
		case TokenProtected:
			p.advance()
			flags |= ModProtected
			continue
		case TokenStatic:
			p.advance()
			flags |= ModStatic
			continue
		case TokenFinal:
			p.advance()
			flags |= ModFinal
			continue
		case TokenAbstract:
			p.advance()
			flags |= ModAbstract
			continue
		case TokenSynchronized:
			p.advance()
			flags |= ModSynchronized
			continue
		case TokenNative:
			p.advance()
			flags |= ModNative
			continue
		case TokenTransient:
			p.advance()
			flags |= ModTransient
			continue
		case TokenVolatile:
			p.advance()
			flags |= ModVolatile
			continue
		case TokenStrictfp:
			p.advance()
			flags |= ModStrictfp
			continue
		case TokenDefault:
			p.advance()
			flags |= ModDefault
			continue
		}
		if p.peekContextual(KeywordSealed) && ctx.AtTypeDeclarationHead {
			p.requireVersion(FeatureSealedTypes, "sealed classes")
			p.advance()
			flags |= ModSealed
			continue
		}
		if p.peekContextual(KeywordNonSealed) && ctx.AtTypeDeclarationHead {
			p.requireVersion(FeatureSealedTypes, "non-sealed classes")
			p.advance()
			flags |= ModNonSealed
			continue
		}
		break
	}
	return p.allocAttr(KindModifiers, start, ModifiersAttribute{Flags: flags})
}

// parseAnnotation parses "@" qualified-name, followed by an optional
// parenthesized element list (single value, or name=value pairs).
func (p *Parser) parseAnnotation() NodeIndex {
	start := p.startOffset()
	p.expectOrFail(TokenAt)
	p.parseQualifiedName()
	if p.check(TokenLParen) {
		p.enterDepth()
		p.advance()
		if !p.check(TokenRParen) {
			for {
				p.parseAnnotationElement()
				if !p.check(TokenComma) {
					break
				}
				p.advance()
			}
		}
		p.expectOrFail(TokenRParen)
		p.exitDepth()
	}
	return p.alloc(KindAnnotation, start)
}

// parseAnnotationElement parses either "name = value" or a bare value
// expression (the single-element shorthand), where value is itself an
// expression, an annotation, or an array initializer-shaped element list.
func (p *Parser) parseAnnotationElement() NodeIndex {
	start := p.startOffset()
	if p.isIdentifierLike() && p.peekN(1).Kind == TokenAssign {
		p.advance()
		p.advance()
	}
	p.parseAnnotationValue()
	return p.alloc(KindAnnotationElement, start)
}

func (p *Parser) parseAnnotationValue() {
	switch {
	case p.check(TokenAt):
		p.parseAnnotation()
	case p.check(TokenLBrace):
		p.parseArrayInitializerLike(p.parseAnnotationValue)
	default:
		p.parseTernaryExpr()
	}
}

// parseArrayInitializerLike parses "{" elem ("," elem)* ","? "}" where
// each element is produced by elem, tolerating a trailing comma as Java
// allows in both array initializers and annotation element arrays.
func (p *Parser) parseArrayInitializerLike(elem func()) NodeIndex {
	start := p.startOffset()
	p.enterDepth()
	defer p.exitDepth()
	p.expectOrFail(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		elem()
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	p.expectOrFail(TokenRBrace)
	return p.alloc(KindArrayInit, start)
}

// parseQualifiedName parses Ident ("." Ident)* as a single flattened
// node, returning the full dotted text via NameAttribute.
func (p *Parser) parseQualifiedName() NodeIndex {
	start := p.startOffset()
	p.expectIdentOrFail()
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		p.advance()
	}
	text := string(p.source[start:p.endOffsetAt(p.pos)])
	return p.allocAttr(KindQualifiedName, start, NameAttribute{Name: text})
}

func (p *Parser) expectIdentOrFail() Token {
	if !p.isIdentifierLike() {
		p.bail("expected identifier", TokenIdent)
	}
	return p.advance()
}

// parseTypeParameters parses "<" TypeParam ("," TypeParam)* ">" when
// present, returning (0, false) when there is no "<" to begin with.
func (p *Parser) parseTypeParameters() (NodeIndex, bool) {
	if !p.check(TokenLT) {
		return 0, false
	}
	start := p.startOffset()
	p.enterDepth()
	defer p.exitDepth()
	p.advance()
	for {
		p.parseTypeParameter()
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	p.expectGT()
	return p.alloc(KindTypeParameters, start), true
}

func (p *Parser) parseTypeParameter() NodeIndex {
	start := p.startOffset()
	for p.check(TokenAt) {
		p.parseAnnotation()
	}
	name := p.expectIdentOrFail()
	if p.check(TokenExtends) {
		p.advance()
		p.parseType()
		for p.check(TokenBitAnd) {
			p.advance()
			p.parseType()
		}
	}
	return p.allocAttr(KindTypeParameter, start, NameAttribute{Name: name.Literal})
}

// expectGT consumes a closing '>' for a generic argument/parameter list,
// re-splitting a >>,>>>,>=,>>=,>>>= token when the parser is nested
// inside enclosing angle brackets and the lexer over-munched.
func (p *Parser) expectGT() {
	if p.check(TokenGT) {
		p.advance()
		return
	}
	if p.splitGT() {
		return
	}
	p.bail("expected '>'", TokenGT)
}

// parseTypeArguments parses "<" (TypeArg ("," TypeArg)*)? ">", including
// the diamond form "<>" used by inference-driven object creation.
func (p *Parser) parseTypeArguments() NodeIndex {
	start := p.startOffset()
	p.enterDepth()
	defer p.exitDepth()
	p.expectOrFail(TokenLT)
	if p.check(TokenGT) || (p.peek().Kind == TokenShr) {
		p.expectGT()
		return p.alloc(KindTypeArguments, start)
	}
	for {
		p.parseTypeArgument()
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	p.expectGT()
	return p.alloc(KindTypeArguments, start)
}

func (p *Parser) parseTypeArgument() NodeIndex {
	start := p.startOffset()
	if p.check(TokenQuestion) {
		p.advance()
		if p.check(TokenExtends) || p.check(TokenSuper) {
			p.advance()
			p.parseType()
		}
		return p.alloc(KindWildcardType, start)
	}
	p.parseType()
	return p.alloc(KindTypeArgument, start)
}

// parseType parses a (possibly array, possibly parameterized, possibly
// annotated) type reference, including the contextual "var" spelling at
// local-variable type positions, which callers signal via ctx before
// calling in — parseType itself only consults AtLocalVarTypePosition to
// decide whether a bare "var" counts as a type use rather than a class
// name.
func (p *Parser) parseType() NodeIndex {
	start := p.startOffset()
	for p.check(TokenAt) {
		p.parseAnnotation()
	}

	switch p.peek().Kind {
	case TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt, TokenLong, TokenFloat, TokenDouble, TokenVoid:
		p.advance()
	default:
		if p.peekContextual(KeywordVar) && p.ctx.AtLocalVarTypePosition {
			p.advance()
			return p.finishType(start)
		}
		p.parseTypeName()
	}
	return p.finishType(start)
}

// parseTypeName parses a (possibly qualified, possibly generic at each
// segment) class-or-interface type name: Ident (TypeArguments)? ("."
// Ident (TypeArguments)?)*
func (p *Parser) parseTypeName() {
	p.expectIdentOrFail()
	if p.check(TokenLT) {
		p.parseTypeArguments()
	}
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		p.expectIdentOrFail()
		if p.check(TokenLT) {
			p.parseTypeArguments()
		}
	}
}

// finishType wraps any trailing "[]" array dimensions (each possibly
// annotated) around the base type just scanned.
func (p *Parser) finishType(start uint32) NodeIndex {
	base := p.alloc(KindType, start)
	for {
		save := p.pos
		var dimAnnotated bool
		for p.check(TokenAt) {
			p.parseAnnotation()
			dimAnnotated = true
		}
		if !p.check(TokenLBracket) {
			if dimAnnotated {
				p.pos = save
			}
			break
		}
		p.advance()
		p.expectOrFail(TokenRBracket)
		base = p.alloc(KindArrayType, start)
	}
	return base
}
