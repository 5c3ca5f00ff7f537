package parser

// Classification is the result of classifying an identifier spelling at
// a specific grammar position.
type Classification int

const (
	PlainIdentifier Classification = iota
	ContextualKeyword
)

// ContextualKind names one of Java's context-sensitive keywords. The
// lexer never produces these as dedicated token kinds; they always lex
// as TokenIdent. The parser recognizes them by spelling (peekContextual)
// at the grammar positions where one of these spellings could legally
// start a contextual construct; Classify applies the same position rules
// as a standalone function and is not called by the parser.
type ContextualKind int

const (
	KeywordNone ContextualKind = iota
	KeywordVar
	KeywordYield
	KeywordRecord
	KeywordSealed
	KeywordNonSealed
	KeywordPermits
	KeywordWhen
	KeywordModule
	KeywordOpen
	KeywordRequires
	KeywordExports
	KeywordOpens
	KeywordUses
	KeywordProvides
	KeywordTo
	KeywordWith
	KeywordTransitive
)

var contextualSpellings = map[string]ContextualKind{
	"var":         KeywordVar,
	"yield":       KeywordYield,
	"record":      KeywordRecord,
	"sealed":      KeywordSealed,
	"non-sealed":  KeywordNonSealed,
	"permits":     KeywordPermits,
	"when":        KeywordWhen,
	"module":      KeywordModule,
	"open":        KeywordOpen,
	"requires":    KeywordRequires,
	"exports":     KeywordExports,
	"opens":       KeywordOpens,
	"uses":        KeywordUses,
	"provides":    KeywordProvides,
	"to":          KeywordTo,
	"with":        KeywordWith,
	"transitive":  KeywordTransitive,
}

// spellingOf returns the contextual keyword a spelling could become,
// independent of position. It never consults parser state; position
// sensitivity is layered on top by the Parser.at* predicates below.
func spellingOf(text string) ContextualKind {
	if k, ok := contextualSpellings[text]; ok {
		return k
	}
	return KeywordNone
}

// Context carries the grammar-position flags the classifier needs.
// Exactly one of these is typically set when a classification question
// is asked; the zero value means "ordinary expression position", under
// which every contextual spelling classifies as a plain identifier.
type Context struct {
	InModuleInfo           bool
	AtTypeDeclarationHead  bool
	AtLocalVarTypePosition bool
	AtSwitchCaseGuard      bool
	AtSwitchExprStmtHead   bool
	AtModuleDirectiveHead  bool
}

// Classify is the pure function described by the specification: given an
// identifier's spelling and the parser's current context flags, it
// decides whether the spelling acts as a contextual keyword here or is
// just another identifier. Reserved words never reach this function —
// they are classified unconditionally, at lex time.
func Classify(text string, ctx Context) (Classification, ContextualKind) {
	kind := spellingOf(text)
	if kind == KeywordNone {
		return PlainIdentifier, KeywordNone
	}

	switch kind {
	case KeywordVar:
		if ctx.AtLocalVarTypePosition {
			return ContextualKeyword, kind
		}
	case KeywordYield:
		if ctx.AtSwitchExprStmtHead {
			return ContextualKeyword, kind
		}
	case KeywordRecord, KeywordSealed, KeywordNonSealed, KeywordPermits:
		if ctx.AtTypeDeclarationHead {
			return ContextualKeyword, kind
		}
	case KeywordWhen:
		if ctx.AtSwitchCaseGuard {
			return ContextualKeyword, kind
		}
	case KeywordModule, KeywordOpen, KeywordRequires, KeywordExports,
		KeywordOpens, KeywordUses, KeywordProvides, KeywordTo, KeywordWith,
		KeywordTransitive:
		if ctx.InModuleInfo && ctx.AtModuleDirectiveHead {
			return ContextualKeyword, kind
		}
	}
	return PlainIdentifier, KeywordNone
}

// isIdentifierLike reports whether the current token can begin a simple
// name: either a real TokenIdent, or (by construction) nothing else,
// since every contextual keyword spelling already lexes as TokenIdent.
// The predicate exists so call sites read the same way the grammar does.
func (p *Parser) isIdentifierLike() bool {
	return p.check(TokenIdent)
}

// peekContextual reports whether the current token is an identifier
// spelled like the given contextual keyword, without regard to
// position. Callers combine this with their own position knowledge
// (e.g. "only inside a record header") before committing to a
// contextual-keyword production, so a later plain use of the same
// spelling is never misparsed.
func (p *Parser) peekContextual(kind ContextualKind) bool {
	return p.check(TokenIdent) && spellingOf(p.peek().Literal) == kind
}

func (p *Parser) peekContextualAt(n int, kind ContextualKind) bool {
	tok := p.peekN(n)
	return tok.Kind == TokenIdent && spellingOf(tok.Literal) == kind
}
