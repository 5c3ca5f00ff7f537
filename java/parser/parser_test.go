package parser

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string, version JavaVersion, opts ...Option) *Arena {
	t.Helper()
	result, err := Parse([]byte(src), version, opts...)
	if err != nil {
		t.Fatalf("Parse returned precondition error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("Parse failed: %v", result.Failure)
	}
	return result.Arena
}

func TestParseEmptySource(t *testing.T) {
	arena := mustParse(t, "", JavaLatest)
	if arena.Len() != 1 {
		t.Fatalf("got %d nodes, want 1", arena.Len())
	}
	root := arena.Get(arena.Root())
	if root.Kind != KindCompilationUnit || root.Start != 0 || root.End != 0 {
		t.Errorf("got %+v, want CompilationUnit@[0,0)", root)
	}
}

func TestParseMinimalClass(t *testing.T) {
	arena := mustParse(t, "class Foo {}", JavaLatest)
	root := arena.Get(arena.Root())
	if root.Kind != KindCompilationUnit {
		t.Fatalf("root kind = %v, want CompilationUnit", root.Kind)
	}
	children := arena.Children(arena.Root())
	found := false
	for _, c := range children {
		if arena.Get(c).Kind == KindClassDecl {
			found = true
			attr, ok := arena.Attribute(c)
			if !ok {
				t.Fatal("ClassDecl has no attribute")
			}
			if attr.(TypeDeclarationAttribute).Name != "Foo" {
				t.Errorf("class name = %q, want Foo", attr.(TypeDeclarationAttribute).Name)
			}
		}
	}
	if !found {
		t.Error("expected a ClassDecl child under the compilation unit")
	}
}

func TestParseIntegerLiteralInMethodBody(t *testing.T) {
	arena := mustParse(t, "class Foo { void m() { 42; } }", JavaLatest)
	var sawIntLiteral bool
	for i := 0; i < arena.Len(); i++ {
		if arena.Get(NodeIndex(i)).Kind == KindIntLiteral {
			sawIntLiteral = true
		}
	}
	if !sawIntLiteral {
		t.Error("expected an IntLiteral node somewhere in the arena")
	}
}

func TestParseOperatorPrecedenceShape(t *testing.T) {
	// "a + b * c" must bind as a + (b * c): the outer node's last-allocated
	// immediate child (the right operand) should itself be a BinaryExpr
	// whose span covers only "b * c".
	arena := mustParse(t, "class F { void m() { x = a + b * c; } }", JavaLatest)
	var mulNode, addNode NodeRecord
	for i := 0; i < arena.Len(); i++ {
		n := arena.Get(NodeIndex(i))
		if n.Kind == KindBinaryExpr {
			text := string(arena.Source()[n.Start:n.End])
			if strings.Contains(text, "*") && !strings.Contains(text, "+") {
				mulNode = n
			}
			if strings.Contains(text, "+") {
				addNode = n
			}
		}
	}
	if mulNode.Kind != KindBinaryExpr {
		t.Fatal("did not find the multiplication subexpression")
	}
	if addNode.Start > mulNode.Start || addNode.End < mulNode.End {
		t.Errorf("multiplication span [%d,%d) is not nested inside addition span [%d,%d)", mulNode.Start, mulNode.End, addNode.Start, addNode.End)
	}
}

func TestParseContextualKeywordAsMethodName(t *testing.T) {
	arena := mustParse(t, "class Foo { void with() {} }", JavaLatest)
	var sawMethod bool
	for i := 0; i < arena.Len(); i++ {
		n := arena.Get(NodeIndex(i))
		if n.Kind == KindMethodDecl {
			attr, _ := arena.Attribute(NodeIndex(i))
			if attr.(NameAttribute).Name == "with" {
				sawMethod = true
			}
		}
	}
	if !sawMethod {
		t.Error("expected a method named \"with\"")
	}
}

func TestParseFlexibleConstructorBodyOrdering(t *testing.T) {
	src := `class Foo extends Bar {
		Foo(int x) {
			if (x < 0) throw new IllegalArgumentException();
			super(x);
		}
	}`
	arena := mustParse(t, src, Java22Version)
	var sawCtor bool
	for i := 0; i < arena.Len(); i++ {
		if arena.Get(NodeIndex(i)).Kind == KindConstructorDecl {
			sawCtor = true
		}
	}
	if !sawCtor {
		t.Error("expected a ConstructorDecl")
	}
}

func TestParseModuleDeclarationWithRequiresTransitive(t *testing.T) {
	src := `module com.example.app {
		requires transitive com.example.api;
		exports com.example.app.impl to com.example.client;
	}`
	arena := mustParse(t, src, JavaLatest, WithModuleInfo(true))
	var sawRequires bool
	for i := 0; i < arena.Len(); i++ {
		n := arena.Get(NodeIndex(i))
		if n.Kind == KindRequiresDirective {
			attr, _ := arena.Attribute(NodeIndex(i))
			r := attr.(RequiresDirectiveAttribute)
			if r.ModuleName == "com.example.api" && r.IsTransitive {
				sawRequires = true
			}
		}
	}
	if !sawRequires {
		t.Error("expected a transitive requires directive for com.example.api")
	}
}

func TestParseDepthLimitBoundary(t *testing.T) {
	nest := 10
	expr := strings.Repeat("(", nest) + "1" + strings.Repeat(")", nest)
	src := "class F { void m() { x = " + expr + "; } }"

	if _, ok := mustNotFail(t, src, nest+20); !ok {
		t.Error("expected success comfortably above the nesting depth")
	}

	result, err := Parse([]byte(src), JavaLatest, WithMaxParseDepth(nest-1))
	if err != nil {
		t.Fatalf("unexpected precondition error: %v", err)
	}
	if result.OK() {
		t.Fatal("expected DepthExceeded failure when the ceiling is below the nesting depth")
	}
	if result.Failure.Kind != DepthExceeded {
		t.Errorf("got failure kind %v, want DepthExceeded", result.Failure.Kind)
	}
}

func mustNotFail(t *testing.T, src string, maxDepth int) (*Arena, bool) {
	t.Helper()
	result, err := Parse([]byte(src), JavaLatest, WithMaxParseDepth(maxDepth))
	if err != nil {
		t.Fatalf("unexpected precondition error: %v", err)
	}
	return result.Arena, result.OK()
}

func TestParsePatternMatchingInstanceof(t *testing.T) {
	arena := mustParse(t, "class F { void m() { if (obj instanceof String s) { } } }", JavaLatest)
	var sawPattern bool
	for i := 0; i < arena.Len(); i++ {
		if arena.Get(NodeIndex(i)).Kind == KindInstanceofExpr {
			children := arena.Children(NodeIndex(i))
			for _, c := range children {
				if arena.Get(c).Kind == KindTypePattern {
					sawPattern = true
				}
			}
		}
	}
	if !sawPattern {
		t.Error("expected a TypePattern child of the instanceof expression")
	}
}

func TestParsePatternMatchingInstanceofRejectedBelowVersion(t *testing.T) {
	result, err := Parse([]byte("class F { void m() { if (obj instanceof String s) {} } }"), Java8Version)
	if err != nil {
		t.Fatalf("unexpected precondition error: %v", err)
	}
	if result.OK() {
		t.Fatal("expected a VersionError for pattern matching under Java 8")
	}
	if result.Failure.Kind != VersionError {
		t.Errorf("got failure kind %v, want VersionError", result.Failure.Kind)
	}
}

func TestParseSwitchCaseNullDefault(t *testing.T) {
	src := `class F {
		String m(String s) {
			return switch (s) {
				case null, default -> "none";
			};
		}
	}`
	arena := mustParse(t, src, JavaLatest)
	var sawLabel bool
	for i := 0; i < arena.Len(); i++ {
		if arena.Get(NodeIndex(i)).Kind == KindSwitchLabel {
			sawLabel = true
		}
	}
	if !sawLabel {
		t.Error("expected a SwitchLabel for \"case null, default ->\"")
	}
}

func TestParseReferenceArrayClassLiteral(t *testing.T) {
	for _, src := range []string{
		"class F { void m() { x = String[].class; } }",
		"class F { void m() { x = String[][].class; } }",
	} {
		arena := mustParse(t, src, JavaLatest)
		var sawClassLiteral bool
		for i := 0; i < arena.Len(); i++ {
			if arena.Get(NodeIndex(i)).Kind == KindClassLiteral {
				sawClassLiteral = true
			}
		}
		if !sawClassLiteral {
			t.Errorf("%q: expected a ClassLiteral node", src)
		}
	}
}

func TestParseExpressionFragment(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"42", KindIntLiteral},
		{"x", KindIdentifier},
		{"x + y", KindBinaryExpr},
		{"-x", KindUnaryExpr},
		{"!x", KindUnaryExpr},
		{"x++", KindPostfixExpr},
		{"a ? b : c", KindConditionalExpr},
		{"x = 5", KindAssignmentExpr},
		{"(x)", KindParenExpr},
		{"obj.field", KindFieldAccess},
		{"obj.method()", KindMethodInvocation},
		{"new Foo()", KindObjectCreation},
		{"(x) -> x + 1", KindLambdaExpr},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseExpression([]byte(tt.input), JavaLatest)
			if err != nil {
				t.Fatalf("unexpected precondition error: %v", err)
			}
			if !result.OK() {
				t.Fatalf("Parse failed: %v", result.Failure)
			}
			root := result.Arena.Get(result.Arena.Root())
			if root.Kind != tt.kind {
				t.Errorf("got %v, want %v", root.Kind, tt.kind)
			}
		})
	}
}

func TestParseNilSourceIsPrecondition(t *testing.T) {
	if _, err := Parse(nil, JavaLatest); err != ErrNilSource {
		t.Errorf("got %v, want ErrNilSource", err)
	}
}

func TestArenaRootIsAlwaysLastAllocated(t *testing.T) {
	arena := mustParse(t, "class Foo { int x; void m() { x = 1 + 2; } }", JavaLatest)
	if int(arena.Root()) != arena.Len()-1 {
		t.Error("Root() must equal the last-allocated node index")
	}
}

func TestParseIsDeterministic(t *testing.T) {
	src := "class Foo { int bar(int x) { return x * 2; } }"
	a := mustParse(t, src, JavaLatest)
	b := mustParse(t, src, JavaLatest)
	if !a.Equal(b) {
		t.Error("parsing the same source twice produced different arenas")
	}
}
