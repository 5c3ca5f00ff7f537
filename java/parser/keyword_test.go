package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		ctx  Context
		want Classification
		kind ContextualKind
	}{
		{"var outside local decl", "var", Context{}, PlainIdentifier, KeywordNone},
		{"var at local decl position", "var", Context{AtLocalVarTypePosition: true}, ContextualKeyword, KeywordVar},
		{"record as plain identifier", "record", Context{}, PlainIdentifier, KeywordNone},
		{"record at type decl head", "record", Context{AtTypeDeclarationHead: true}, ContextualKeyword, KeywordRecord},
		{"yield outside switch head", "yield", Context{}, PlainIdentifier, KeywordNone},
		{"yield at switch stmt head", "yield", Context{AtSwitchExprStmtHead: true}, ContextualKeyword, KeywordYield},
		{"when outside guard", "when", Context{}, PlainIdentifier, KeywordNone},
		{"when at switch guard", "when", Context{AtSwitchCaseGuard: true}, ContextualKeyword, KeywordWhen},
		{"requires outside module-info", "requires", Context{AtModuleDirectiveHead: true}, PlainIdentifier, KeywordNone},
		{"requires inside module-info", "requires", Context{InModuleInfo: true, AtModuleDirectiveHead: true}, ContextualKeyword, KeywordRequires},
		{"ordinary identifier", "foobar", Context{AtLocalVarTypePosition: true, AtTypeDeclarationHead: true}, PlainIdentifier, KeywordNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClass, gotKind := Classify(tt.text, tt.ctx)
			require.Equal(t, tt.want, gotClass, "classification for %q in %+v", tt.text, tt.ctx)
			require.Equal(t, tt.kind, gotKind, "contextual kind for %q in %+v", tt.text, tt.ctx)
		})
	}
}

func TestSpellingOfIsPositionless(t *testing.T) {
	for spelling, kind := range contextualSpellings {
		require.Equal(t, kind, spellingOf(spelling), "spellingOf(%q)", spelling)
	}
	require.Equal(t, KeywordNone, spellingOf("notAKeyword"))
}
