package parser

// NodeKind is the closed set of AST node tags the parser can allocate.
// Values are stable for the lifetime of a parse; they are not a stable
// wire format across versions of this package.
type NodeKind uint8

const (
	KindError NodeKind = iota

	KindCompilationUnit
	KindPackageDecl
	KindImportDecl
	KindModuleDecl
	KindRequiresDirective
	KindExportsDirective
	KindOpensDirective
	KindUsesDirective
	KindProvidesDirective

	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindAnnotationTypeDecl

	KindFieldDecl
	KindMethodDecl
	KindConstructorDecl
	KindCompactConstructorDecl
	KindParameterDecl
	KindReceiverParameterDecl
	KindEnumConstant
	KindExplicitConstructorInvocation

	KindModifiers
	KindAnnotation
	KindAnnotationElement
	KindTypeParameters
	KindTypeParameter
	KindTypeArguments
	KindTypeArgument
	KindExtendsClause
	KindImplementsClause
	KindPermitsClause
	KindThrowsList
	KindParameters

	KindType
	KindParameterizedType
	KindArrayType
	KindWildcardType
	KindAnnotatedType

	KindBlock
	KindEmptyStmt
	KindExprStmt
	KindIfStmt
	KindForStmt
	KindForInit
	KindForUpdate
	KindEnhancedForStmt
	KindWhileStmt
	KindDoWhileStmt
	KindSwitchStmt
	KindSwitchExpr
	KindSwitchExpressionArm
	KindSwitchLabel
	KindTypePattern
	KindRecordPattern
	KindMatchAllPattern
	KindGuard
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindThrowStmt
	KindTryStmt
	KindResource
	KindCatchClause
	KindFinallyClause
	KindSynchronizedStmt
	KindAssertStmt
	KindLabeledStmt
	KindLocalVarDecl
	KindLocalClassDecl
	KindYieldStmt

	KindAssignmentExpr
	KindConditionalExpr
	KindBinaryExpr
	KindUnaryExpr
	KindPostfixExpr
	KindCastExpr
	KindInstanceofExpr
	KindMethodInvocation
	KindMethodReference
	KindFieldAccess
	KindArrayAccess
	KindObjectCreation
	KindArrayCreation
	KindArrayInit
	KindLambdaExpr
	KindParenExpr
	KindClassLiteral
	KindThisExpr
	KindSuperExpr

	KindIdentifier
	KindQualifiedName

	KindIntLiteral
	KindLongLiteral
	KindFloatLiteral
	KindDoubleLiteral
	KindStringLiteral
	KindCharLiteral
	KindTextBlockLiteral
	KindBooleanLiteral
	KindNullLiteral

	KindLineComment
	KindBlockComment

	numNodeKinds
)

var nodeKindNames = [numNodeKinds]string{
	KindError:                          "Error",
	KindCompilationUnit:                "CompilationUnit",
	KindPackageDecl:                    "PackageDecl",
	KindImportDecl:                     "ImportDecl",
	KindModuleDecl:                     "ModuleDecl",
	KindRequiresDirective:              "RequiresDirective",
	KindExportsDirective:               "ExportsDirective",
	KindOpensDirective:                 "OpensDirective",
	KindUsesDirective:                  "UsesDirective",
	KindProvidesDirective:              "ProvidesDirective",
	KindClassDecl:                      "ClassDecl",
	KindInterfaceDecl:                  "InterfaceDecl",
	KindEnumDecl:                       "EnumDecl",
	KindRecordDecl:                     "RecordDecl",
	KindAnnotationTypeDecl:             "AnnotationTypeDecl",
	KindFieldDecl:                      "FieldDecl",
	KindMethodDecl:                     "MethodDecl",
	KindConstructorDecl:                "ConstructorDecl",
	KindCompactConstructorDecl:         "CompactConstructorDecl",
	KindParameterDecl:                  "ParameterDecl",
	KindReceiverParameterDecl:          "ReceiverParameterDecl",
	KindEnumConstant:                   "EnumConstant",
	KindExplicitConstructorInvocation:  "ExplicitConstructorInvocation",
	KindModifiers:                      "Modifiers",
	KindAnnotation:                     "Annotation",
	KindAnnotationElement:              "AnnotationElement",
	KindTypeParameters:                 "TypeParameters",
	KindTypeParameter:                  "TypeParameter",
	KindTypeArguments:                  "TypeArguments",
	KindTypeArgument:                   "TypeArgument",
	KindExtendsClause:                  "ExtendsClause",
	KindImplementsClause:               "ImplementsClause",
	KindPermitsClause:                  "PermitsClause",
	KindThrowsList:                     "ThrowsList",
	KindParameters:                     "Parameters",
	KindType:                           "Type",
	KindParameterizedType:              "ParameterizedType",
	KindArrayType:                      "ArrayType",
	KindWildcardType:                   "WildcardType",
	KindAnnotatedType:                  "AnnotatedType",
	KindBlock:                          "Block",
	KindEmptyStmt:                      "EmptyStmt",
	KindExprStmt:                       "ExprStmt",
	KindIfStmt:                         "IfStmt",
	KindForStmt:                        "ForStmt",
	KindForInit:                        "ForInit",
	KindForUpdate:                      "ForUpdate",
	KindEnhancedForStmt:                "EnhancedForStmt",
	KindWhileStmt:                      "WhileStmt",
	KindDoWhileStmt:                    "DoWhileStmt",
	KindSwitchStmt:                     "SwitchStmt",
	KindSwitchExpr:                     "SwitchExpr",
	KindSwitchExpressionArm:            "SwitchExpressionArm",
	KindSwitchLabel:                    "SwitchLabel",
	KindTypePattern:                    "TypePattern",
	KindRecordPattern:                  "RecordPattern",
	KindMatchAllPattern:                "MatchAllPattern",
	KindGuard:                          "Guard",
	KindReturnStmt:                     "ReturnStmt",
	KindBreakStmt:                      "BreakStmt",
	KindContinueStmt:                   "ContinueStmt",
	KindThrowStmt:                      "ThrowStmt",
	KindTryStmt:                        "TryStmt",
	KindResource:                       "Resource",
	KindCatchClause:                    "CatchClause",
	KindFinallyClause:                  "FinallyClause",
	KindSynchronizedStmt:               "SynchronizedStmt",
	KindAssertStmt:                     "AssertStmt",
	KindLabeledStmt:                    "LabeledStmt",
	KindLocalVarDecl:                   "LocalVarDecl",
	KindLocalClassDecl:                 "LocalClassDecl",
	KindYieldStmt:                      "YieldStmt",
	KindAssignmentExpr:                 "AssignmentExpr",
	KindConditionalExpr:                "ConditionalExpr",
	KindBinaryExpr:                     "BinaryExpr",
	KindUnaryExpr:                      "UnaryExpr",
	KindPostfixExpr:                    "PostfixExpr",
	KindCastExpr:                       "CastExpr",
	KindInstanceofExpr:                 "InstanceofExpr",
	KindMethodInvocation:               "MethodInvocation",
	KindMethodReference:                "MethodReference",
	KindFieldAccess:                    "FieldAccess",
	KindArrayAccess:                    "ArrayAccess",
	KindObjectCreation:                 "ObjectCreation",
	KindArrayCreation:                  "ArrayCreation",
	KindArrayInit:                      "ArrayInit",
	KindLambdaExpr:                     "LambdaExpr",
	KindParenExpr:                      "ParenExpr",
	KindClassLiteral:                   "ClassLiteral",
	KindThisExpr:                       "This",
	KindSuperExpr:                      "Super",
	KindIdentifier:                     "Identifier",
	KindQualifiedName:                  "QualifiedName",
	KindIntLiteral:                     "IntLiteral",
	KindLongLiteral:                    "LongLiteral",
	KindFloatLiteral:                   "FloatLiteral",
	KindDoubleLiteral:                  "DoubleLiteral",
	KindStringLiteral:                  "StringLiteral",
	KindCharLiteral:                    "CharLiteral",
	KindTextBlockLiteral:               "TextBlockLiteral",
	KindBooleanLiteral:                 "BooleanLiteral",
	KindNullLiteral:                    "NullLiteral",
	KindLineComment:                    "LineComment",
	KindBlockComment:                   "BlockComment",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Attribute is the common interface implemented by every side-table
// payload flavor. attributeEqual compares two attributes by value; it is the
// building block for Arena.Equal.
type Attribute interface {
	attributeEqual(other Attribute) bool
}

// TypeDeclarationAttribute carries the simple name of a class, interface,
// enum, record, or annotation-type declaration.
type TypeDeclarationAttribute struct {
	Name string
}

func (a TypeDeclarationAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(TypeDeclarationAttribute)
	return ok && a.Name == o.Name
}

// ImportDeclarationAttribute carries an import's fully qualified name and
// whether it is a static import.
type ImportDeclarationAttribute struct {
	QualifiedName string
	IsStatic      bool
	IsOnDemand    bool
	IsModule      bool
}

func (a ImportDeclarationAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(ImportDeclarationAttribute)
	return ok && a == o
}

// ModuleDeclarationAttribute carries a module-info declaration's name and
// open flag.
type ModuleDeclarationAttribute struct {
	Name   string
	IsOpen bool
}

func (a ModuleDeclarationAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(ModuleDeclarationAttribute)
	return ok && a == o
}

// RequiresDirectiveAttribute carries a module-info "requires" directive's
// module name and modifier flags.
type RequiresDirectiveAttribute struct {
	ModuleName   string
	IsTransitive bool
	IsStatic     bool
}

func (a RequiresDirectiveAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(RequiresDirectiveAttribute)
	return ok && a == o
}

// ExportsDirectiveAttribute carries a module-info "exports" directive's
// package name and the optional "to" module list.
type ExportsDirectiveAttribute struct {
	Package string
	To      []string
}

func (a ExportsDirectiveAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(ExportsDirectiveAttribute)
	return ok && a.Package == o.Package && stringSliceEqual(a.To, o.To)
}

// OpensDirectiveAttribute carries a module-info "opens" directive's
// package name and the optional "to" module list.
type OpensDirectiveAttribute struct {
	Package string
	To      []string
}

func (a OpensDirectiveAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(OpensDirectiveAttribute)
	return ok && a.Package == o.Package && stringSliceEqual(a.To, o.To)
}

// UsesDirectiveAttribute carries a module-info "uses" directive's service
// type name.
type UsesDirectiveAttribute struct {
	Service string
}

func (a UsesDirectiveAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(UsesDirectiveAttribute)
	return ok && a == o
}

// ProvidesDirectiveAttribute carries a module-info "provides" directive's
// service type and implementation list.
type ProvidesDirectiveAttribute struct {
	Service string
	With    []string
}

func (a ProvidesDirectiveAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(ProvidesDirectiveAttribute)
	return ok && a.Service == o.Service && stringSliceEqual(a.With, o.With)
}

// NameAttribute carries a declared name for nodes whose span covers more
// than just the name token: method, constructor, and field declarations,
// enum constants, type parameters, and labels.
type NameAttribute struct {
	Name string
}

func (a NameAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(NameAttribute)
	return ok && a == o
}

// ParameterAttribute carries a formal parameter's name and modifier flags.
type ParameterAttribute struct {
	Name        string
	IsVarargs   bool
	IsFinal     bool
	IsReceiver  bool
	IsUnnamed   bool
}

func (a ParameterAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(ParameterAttribute)
	return ok && a == o
}

// ModifiersAttribute carries the bitmask of modifier keywords attached to
// a declaration.
type ModifiersAttribute struct {
	Flags ModifierFlags
}

func (a ModifiersAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(ModifiersAttribute)
	return ok && a == o
}

// ModifierFlags is a bitmask over Java's declaration modifiers, including
// the contextual ones (sealed, non-sealed, default).
type ModifierFlags uint32

const (
	ModPublic ModifierFlags = 1 << iota
	ModPrivate
	ModProtected
	ModStatic
	ModFinal
	ModAbstract
	ModSynchronized
	ModNative
	ModTransient
	ModVolatile
	ModStrictfp
	ModDefault
	ModSealed
	ModNonSealed
)

// LiteralAttribute carries a parsed numeric or textual literal's source
// spelling verbatim, for payloads whose node span does not equal the
// literal's own token span (rare, kept for symmetry with other flavors).
type LiteralAttribute struct {
	Text string
}

func (a LiteralAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(LiteralAttribute)
	return ok && a == o
}

// BindingAttribute carries the binding name introduced by a type pattern
// or a record pattern; a record pattern without a binding name has an
// empty Name and IsUnnamed set. An unnamed pattern variable ("_") is a
// KindMatchAllPattern node with no attribute.
type BindingAttribute struct {
	Name      string
	IsUnnamed bool
}

func (a BindingAttribute) attributeEqual(other Attribute) bool {
	o, ok := other.(BindingAttribute)
	return ok && a == o
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
