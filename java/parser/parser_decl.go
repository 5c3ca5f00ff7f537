package parser

// parseCompilationUnit is the grammar's top-level production: an
// optional package declaration, a run of imports, and either a module
// declaration (when the parser was constructed with module-info context)
// or a run of top-level type declarations. The compilation unit node
// spans the whole source, [0, len(source)).
func (p *Parser) parseCompilationUnit() NodeIndex {
	end := uint32(len(p.source))

	if p.check(TokenAt) && p.peekN(1).Kind == TokenInterface {
		// "@interface" at file scope with no preceding "package" is still
		// just an annotation-type declaration; fall through to the normal
		// member loop below rather than mis-detecting package syntax.
	}

	if p.check(TokenPackage) {
		p.parsePackageDecl()
	}

	for p.check(TokenImport) {
		p.parseImportDecl()
	}

	if p.ctx.InModuleInfo {
		p.parseModuleDecl()
		return p.arena.Allocate(KindCompilationUnit, 0, end)
	}

	for !p.check(TokenEOF) {
		progress := p.mustProgress()
		if p.check(TokenSemicolon) {
			p.advance()
			progress()
			continue
		}
		p.parseTypeDeclaration()
		progress()
	}

	return p.arena.Allocate(KindCompilationUnit, 0, end)
}

func (p *Parser) parsePackageDecl() NodeIndex {
	start := p.startOffset()
	for p.check(TokenAt) {
		p.parseAnnotation()
	}
	p.expectOrFail(TokenPackage)
	p.parseQualifiedName()
	p.expectOrFail(TokenSemicolon)
	return p.alloc(KindPackageDecl, start)
}

func (p *Parser) parseImportDecl() NodeIndex {
	start := p.startOffset()
	p.expectOrFail(TokenImport)
	isStatic := false
	if p.check(TokenStatic) {
		p.advance()
		isStatic = true
	}
	nameStart := p.startOffset()
	p.expectIdentOrFail()
	onDemand := false
	for p.check(TokenDot) {
		if p.peekN(1).Kind == TokenStar {
			p.advance()
			p.advance()
			onDemand = true
			break
		}
		p.advance()
		p.expectIdentOrFail()
	}
	qualified := string(p.source[nameStart:p.endOffsetAt(p.pos)])
	p.expectOrFail(TokenSemicolon)
	return p.allocAttr(KindImportDecl, start, ImportDeclarationAttribute{
		QualifiedName: qualified,
		IsStatic:      isStatic,
		IsOnDemand:    onDemand,
	})
}

// parseModuleDecl parses "open"? "module" QualifiedName "{" directive* "}".
func (p *Parser) parseModuleDecl() NodeIndex {
	start := p.startOffset()
	isOpen := false
	if p.peekContextual(KeywordOpen) {
		p.advance()
		isOpen = true
	}
	if !p.peekContextual(KeywordModule) {
		p.bail("expected 'module'")
	}
	p.advance()
	nameStart := p.startOffset()
	p.parseModuleName()
	name := string(p.source[nameStart:p.endOffsetAt(p.pos)])
	p.expectOrFail(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		p.parseModuleDirective()
		progress()
	}
	p.expectOrFail(TokenRBrace)
	return p.allocAttr(KindModuleDecl, start, ModuleDeclarationAttribute{Name: name, IsOpen: isOpen})
}

func (p *Parser) parseModuleName() {
	p.expectIdentOrFail()
	for p.check(TokenDot) {
		p.advance()
		p.expectIdentOrFail()
	}
}

func (p *Parser) parseModuleDirective() NodeIndex {
	start := p.startOffset()
	switch {
	case p.peekContextual(KeywordRequires):
		p.advance()
		isTransitive, isStatic := false, false
		for {
			if p.peekContextual(KeywordTransitive) {
				p.advance()
				isTransitive = true
				continue
			}
			if p.check(TokenStatic) {
				p.advance()
				isStatic = true
				continue
			}
			break
		}
		nameStart := p.startOffset()
		p.parseModuleName()
		name := string(p.source[nameStart:p.endOffsetAt(p.pos)])
		p.expectOrFail(TokenSemicolon)
		return p.allocAttr(KindRequiresDirective, start, RequiresDirectiveAttribute{
			ModuleName: name, IsTransitive: isTransitive, IsStatic: isStatic,
		})

	case p.peekContextual(KeywordExports):
		p.advance()
		pkgStart := p.startOffset()
		p.parseModuleName()
		pkg := string(p.source[pkgStart:p.endOffsetAt(p.pos)])
		var to []string
		if p.peekContextual(KeywordTo) {
			p.advance()
			to = p.parseModuleNameList()
		}
		p.expectOrFail(TokenSemicolon)
		return p.allocAttr(KindExportsDirective, start, ExportsDirectiveAttribute{Package: pkg, To: to})

	case p.peekContextual(KeywordOpens):
		p.advance()
		pkgStart := p.startOffset()
		p.parseModuleName()
		pkg := string(p.source[pkgStart:p.endOffsetAt(p.pos)])
		var to []string
		if p.peekContextual(KeywordTo) {
			p.advance()
			to = p.parseModuleNameList()
		}
		p.expectOrFail(TokenSemicolon)
		return p.allocAttr(KindOpensDirective, start, OpensDirectiveAttribute{Package: pkg, To: to})

	case p.peekContextual(KeywordUses):
		p.advance()
		svcStart := p.startOffset()
		p.parseTypeName()
		svc := string(p.source[svcStart:p.endOffsetAt(p.pos)])
		p.expectOrFail(TokenSemicolon)
		return p.allocAttr(KindUsesDirective, start, UsesDirectiveAttribute{Service: svc})

	case p.peekContextual(KeywordProvides):
		p.advance()
		svcStart := p.startOffset()
		p.parseTypeName()
		svc := string(p.source[svcStart:p.endOffsetAt(p.pos)])
		var with []string
		if p.peekContextual(KeywordWith) {
			p.advance()
			with = p.parseModuleNameList()
		}
		p.expectOrFail(TokenSemicolon)
		return p.allocAttr(KindProvidesDirective, start, ProvidesDirectiveAttribute{Service: svc, With: with})
	}
	return p.bail("expected module directive")
}

func (p *Parser) parseModuleNameList() []string {
	var names []string
	nameStart := p.startOffset()
	p.parseModuleName()
	names = append(names, string(p.source[nameStart:p.endOffsetAt(p.pos)]))
	for p.check(TokenComma) {
		p.advance()
		nameStart = p.startOffset()
		p.parseModuleName()
		names = append(names, string(p.source[nameStart:p.endOffsetAt(p.pos)]))
	}
	return names
}

// parseTypeDeclaration dispatches on the modifiers-then-keyword shape
// shared by class, interface, enum, record, and annotation-type
// declarations.
func (p *Parser) parseTypeDeclaration() NodeIndex {
	start := p.startOffset()
	p.parseModifiers(Context{AtTypeDeclarationHead: true})

	switch {
	case p.check(TokenClass):
		return p.parseClassDecl(start)
	case p.check(TokenInterface):
		return p.parseInterfaceDecl(start)
	case p.check(TokenEnum):
		return p.parseEnumDecl(start)
	case p.check(TokenAt) && p.peekN(1).Kind == TokenInterface:
		return p.parseAnnotationTypeDecl(start)
	case p.peekContextual(KeywordRecord) && p.peekN(1).Kind == TokenIdent:
		return p.parseRecordDecl(start)
	}
	return p.bail("expected a type declaration")
}

func (p *Parser) parseClassDecl(start uint32) NodeIndex {
	p.advance() // class
	name := p.expectIdentOrFail()
	p.parseTypeParameters()
	if p.check(TokenExtends) {
		p.advance()
		p.parseType()
	}
	if p.check(TokenImplements) {
		p.advance()
		p.parseTypeList(KindImplementsClause)
	}
	if p.peekContextual(KeywordPermits) {
		p.advance()
		p.parseTypeList(KindPermitsClause)
	}
	p.parseClassBody()
	return p.allocAttr(KindClassDecl, start, TypeDeclarationAttribute{Name: name.Literal})
}

func (p *Parser) parseInterfaceDecl(start uint32) NodeIndex {
	p.advance() // interface
	name := p.expectIdentOrFail()
	p.parseTypeParameters()
	if p.check(TokenExtends) {
		p.advance()
		p.parseTypeList(KindExtendsClause)
	}
	if p.peekContextual(KeywordPermits) {
		p.advance()
		p.parseTypeList(KindPermitsClause)
	}
	p.parseClassBody()
	return p.allocAttr(KindInterfaceDecl, start, TypeDeclarationAttribute{Name: name.Literal})
}

func (p *Parser) parseEnumDecl(start uint32) NodeIndex {
	p.advance() // enum
	name := p.expectIdentOrFail()
	if p.check(TokenImplements) {
		p.advance()
		p.parseTypeList(KindImplementsClause)
	}
	p.expectOrFail(TokenLBrace)
	for p.isIdentifierLike() || p.check(TokenAt) {
		p.parseEnumConstant()
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	if p.check(TokenSemicolon) {
		p.advance()
		for !p.check(TokenRBrace) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			p.parseClassMember()
			progress()
		}
	}
	p.expectOrFail(TokenRBrace)
	return p.allocAttr(KindEnumDecl, start, TypeDeclarationAttribute{Name: name.Literal})
}

func (p *Parser) parseEnumConstant() NodeIndex {
	start := p.startOffset()
	for p.check(TokenAt) {
		p.parseAnnotation()
	}
	name := p.expectIdentOrFail()
	if p.check(TokenLParen) {
		p.parseArgumentList()
	}
	if p.check(TokenLBrace) {
		p.parseClassBody()
	}
	return p.allocAttr(KindEnumConstant, start, NameAttribute{Name: name.Literal})
}

func (p *Parser) parseRecordDecl(start uint32) NodeIndex {
	p.requireVersion(FeatureRecords, "record declarations")
	p.advance() // record
	name := p.expectIdentOrFail()
	p.parseTypeParameters()
	p.parseRecordComponents()
	if p.check(TokenImplements) {
		p.advance()
		p.parseTypeList(KindImplementsClause)
	}
	p.parseClassBody()
	return p.allocAttr(KindRecordDecl, start, TypeDeclarationAttribute{Name: name.Literal})
}

func (p *Parser) parseRecordComponents() NodeIndex {
	start := p.startOffset()
	p.expectOrFail(TokenLParen)
	if !p.check(TokenRParen) {
		for {
			p.parseRecordComponent()
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	p.expectOrFail(TokenRParen)
	return p.alloc(KindParameters, start)
}

func (p *Parser) parseRecordComponent() NodeIndex {
	start := p.startOffset()
	for p.check(TokenAt) {
		p.parseAnnotation()
	}
	p.parseType()
	isVarargs := false
	if p.check(TokenEllipsis) {
		p.advance()
		isVarargs = true
	}
	name := p.expectIdentOrFail()
	return p.allocAttr(KindParameterDecl, start, ParameterAttribute{Name: name.Literal, IsVarargs: isVarargs})
}

func (p *Parser) parseAnnotationTypeDecl(start uint32) NodeIndex {
	p.advance() // @
	p.advance() // interface
	name := p.expectIdentOrFail()
	p.expectOrFail(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		p.parseAnnotationTypeMember()
		progress()
	}
	p.expectOrFail(TokenRBrace)
	return p.allocAttr(KindAnnotationTypeDecl, start, TypeDeclarationAttribute{Name: name.Literal})
}

func (p *Parser) parseAnnotationTypeMember() NodeIndex {
	start := p.startOffset()
	if p.check(TokenSemicolon) {
		p.advance()
		return p.alloc(KindEmptyStmt, start)
	}
	p.parseModifiers(Context{AtTypeDeclarationHead: true})
	switch {
	case p.check(TokenClass):
		return p.parseClassDecl(start)
	case p.check(TokenInterface):
		return p.parseInterfaceDecl(start)
	case p.check(TokenEnum):
		return p.parseEnumDecl(start)
	case p.check(TokenAt) && p.peekN(1).Kind == TokenInterface:
		return p.parseAnnotationTypeDecl(start)
	case p.peekContextual(KeywordRecord) && p.peekN(1).Kind == TokenIdent:
		return p.parseRecordDecl(start)
	}
	p.parseType()
	name := p.expectIdentOrFail()
	if p.check(TokenLParen) {
		p.advance()
		p.expectOrFail(TokenRParen)
		if p.check(TokenDefault) {
			p.advance()
			p.parseAnnotationValue()
		}
		p.expectOrFail(TokenSemicolon)
		return p.allocAttr(KindMethodDecl, start, NameAttribute{Name: name.Literal})
	}
	for p.check(TokenComma) {
		p.advance()
		p.expectIdentOrFail()
	}
	p.expectOrFail(TokenSemicolon)
	return p.allocAttr(KindFieldDecl, start, NameAttribute{Name: name.Literal})
}

func (p *Parser) parseTypeList(kind NodeKind) NodeIndex {
	start := p.startOffset()
	p.parseType()
	for p.check(TokenComma) {
		p.advance()
		p.parseType()
	}
	return p.alloc(kind, start)
}

func (p *Parser) parseClassBody() NodeIndex {
	start := p.startOffset()
	p.enterDepth()
	defer p.exitDepth()
	p.expectOrFail(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		p.parseClassMember()
		progress()
	}
	p.expectOrFail(TokenRBrace)
	return p.alloc(KindBlock, start)
}

// parseClassMember dispatches a single class-body member: an empty
// declaration, a static or instance initializer block, a nested type
// declaration, a constructor, a compact constructor (record bodies
// only), or a field/method declaration distinguished by lookahead past
// the shared modifiers-type-name prefix.
func (p *Parser) parseClassMember() NodeIndex {
	start := p.startOffset()
	if p.check(TokenSemicolon) {
		p.advance()
		return p.alloc(KindEmptyStmt, start)
	}

	p.parseModifiers(Context{AtTypeDeclarationHead: true})

	if p.check(TokenLBrace) {
		return p.parseBlock()
	}

	switch {
	case p.check(TokenClass):
		return p.parseClassDecl(start)
	case p.check(TokenInterface):
		return p.parseInterfaceDecl(start)
	case p.check(TokenEnum):
		return p.parseEnumDecl(start)
	case p.check(TokenAt) && p.peekN(1).Kind == TokenInterface:
		return p.parseAnnotationTypeDecl(start)
	case p.peekContextual(KeywordRecord) && p.peekN(1).Kind == TokenIdent:
		return p.parseRecordDecl(start)
	}

	p.parseTypeParameters()

	// A compact constructor reads as "Ident {" with no parameter list at
	// all: the one shape that distinguishes it from everything else.
	if p.isIdentifierLike() && p.peekN(1).Kind == TokenLBrace {
		name := p.advance()
		p.parseBlock()
		return p.allocAttr(KindCompactConstructorDecl, start, NameAttribute{Name: name.Literal})
	}

	// Constructor: "Ident (" with no return type in between.
	if p.isIdentifierLike() && p.peekN(1).Kind == TokenLParen {
		name := p.advance()
		p.parseFormalParameters()
		if p.check(TokenThrows) {
			p.advance()
			p.parseTypeList(KindThrowsList)
		}
		p.parseConstructorBody()
		return p.allocAttr(KindConstructorDecl, start, NameAttribute{Name: name.Literal})
	}

	p.parseType()
	name := p.expectIdentOrFail()

	if p.check(TokenLParen) {
		p.parseFormalParameters()
		for p.check(TokenLBracket) {
			p.advance()
			p.expectOrFail(TokenRBracket)
		}
		if p.check(TokenThrows) {
			p.advance()
			p.parseTypeList(KindThrowsList)
		}
		if p.check(TokenLBrace) {
			p.parseBlock()
		} else {
			p.expectOrFail(TokenSemicolon)
		}
		return p.allocAttr(KindMethodDecl, start, NameAttribute{Name: name.Literal})
	}

	// Field declaration, possibly multiple declarators.
	p.parseVariableDeclaratorTail()
	for p.check(TokenComma) {
		p.advance()
		p.expectIdentOrFail()
		p.parseVariableDeclaratorTail()
	}
	p.expectOrFail(TokenSemicolon)
	return p.allocAttr(KindFieldDecl, start, NameAttribute{Name: name.Literal})
}

// parseVariableDeclaratorTail parses the optional trailing "[]"
// dimensions and "= initializer" shared by field and local declarators.
func (p *Parser) parseVariableDeclaratorTail() {
	for p.check(TokenLBracket) {
		p.advance()
		p.expectOrFail(TokenRBracket)
	}
	if p.check(TokenAssign) {
		p.advance()
		p.parseVariableInitializer()
	}
}

func (p *Parser) parseVariableInitializer() {
	if p.check(TokenLBrace) {
		p.parseArrayInitializerLike(func() { p.parseVariableInitializer() })
		return
	}
	p.parseExpression()
}

// parseConstructorBody is a normal block except that JEP 513 flexible
// constructor bodies allow arbitrary statements before the explicit
// constructor invocation (historically, "super(...)"/"this(...)" had to
// be the first statement). A statement beginning with "this(" or
// "super(" anywhere after the first statement requires Java22Version.
// Whether the invocation appears at most once is not checked here; that
// is left to a later analysis stage.
func (p *Parser) parseConstructorBody() NodeIndex {
	start := p.startOffset()
	p.enterDepth()
	defer p.exitDepth()
	p.expectOrFail(TokenLBrace)
	for first := true; !p.check(TokenRBrace) && !p.check(TokenEOF); first = false {
		if !first && (p.check(TokenThis) || p.check(TokenSuper)) && p.peekN(1).Kind == TokenLParen {
			p.requireVersion(FeatureFlexibleConstructorBodies, "statements before an explicit constructor invocation")
		}
		progress := p.mustProgress()
		p.parseBlockStatement()
		progress()
	}
	p.expectOrFail(TokenRBrace)
	return p.alloc(KindBlock, start)
}

func (p *Parser) parseFormalParameters() NodeIndex {
	start := p.startOffset()
	p.enterDepth()
	defer p.exitDepth()
	p.expectOrFail(TokenLParen)
	if !p.check(TokenRParen) {
		for {
			p.parseFormalParameter()
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	p.expectOrFail(TokenRParen)
	return p.alloc(KindParameters, start)
}

func (p *Parser) parseFormalParameter() NodeIndex {
	start := p.startOffset()
	mods := p.parseModifiers(Context{})
	modAttr, _ := p.arena.Attribute(mods)
	isFinal := modAttr.(ModifiersAttribute).Flags&ModFinal != 0
	p.parseType()

	// Receiver parameter: Type ("Ident" ".")? "this".
	if p.check(TokenThis) {
		p.advance()
		return p.allocAttr(KindReceiverParameterDecl, start, ParameterAttribute{IsReceiver: true})
	}
	if p.isIdentifierLike() && p.peekN(1).Kind == TokenDot && p.peekN(2).Kind == TokenThis {
		p.advance()
		p.advance()
		p.advance()
		return p.allocAttr(KindReceiverParameterDecl, start, ParameterAttribute{IsReceiver: true})
	}

	isVarargs := false
	if p.check(TokenEllipsis) {
		p.advance()
		isVarargs = true
	}
	name := p.expectIdentOrFail()
	isUnnamed := name.Literal == "_"
	for p.check(TokenLBracket) {
		p.advance()
		p.expectOrFail(TokenRBracket)
	}
	return p.allocAttr(KindParameterDecl, start, ParameterAttribute{
		Name: name.Literal, IsVarargs: isVarargs, IsFinal: isFinal, IsUnnamed: isUnnamed,
	})
}

func (p *Parser) parseArgumentList() NodeIndex {
	start := p.startOffset()
	p.enterDepth()
	defer p.exitDepth()
	p.expectOrFail(TokenLParen)
	if !p.check(TokenRParen) {
		for {
			p.parseExpression()
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	p.expectOrFail(TokenRParen)
	return p.alloc(KindParameters, start)
}
