package parser

import "testing"

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"class", []TokenKind{TokenClass, TokenEOF}},
		{"public class Main {}", []TokenKind{TokenPublic, TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}},
		{"123", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"123L", []TokenKind{TokenLongLiteral, TokenEOF}},
		{"3.14", []TokenKind{TokenDoubleLiteral, TokenEOF}},
		{"3.14f", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"0x1F", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"0b101", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"1_000_000", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"\"hello\"", []TokenKind{TokenStringLiteral, TokenEOF}},
		{"'a'", []TokenKind{TokenCharLiteral, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenLineComment, TokenClass, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenBlockComment, TokenClass, TokenEOF}},
		{"+ - * / %", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent, TokenEOF}},
		{"== != < <= > >=", []TokenKind{TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE, TokenEOF}},
		{"&& || !", []TokenKind{TokenAnd, TokenOr, TokenNot, TokenEOF}},
		{"<< >> >>>", []TokenKind{TokenShl, TokenShr, TokenUShr, TokenEOF}},
		{"++ --", []TokenKind{TokenIncrement, TokenDecrement, TokenEOF}},
		{"->", []TokenKind{TokenArrow, TokenEOF}},
		{"::", []TokenKind{TokenColonColon, TokenEOF}},
		{"...", []TokenKind{TokenEllipsis, TokenEOF}},
		{"@", []TokenKind{TokenAt, TokenEOF}},
		{`"""
hi
"""`, []TokenKind{TokenTextBlock, TokenEOF}},
		// Contextual keywords always lex as plain identifiers.
		{"var x", []TokenKind{TokenIdent, TokenIdent, TokenEOF}},
		{"record", []TokenKind{TokenIdent, TokenEOF}},
		{"yield", []TokenKind{TokenIdent, TokenEOF}},
		{"non-sealed", []TokenKind{TokenIdent, TokenEOF}},
		{"module", []TokenKind{TokenIdent, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "Test.java")
			var got []TokenKind
			for {
				tok := lexer.NextToken()
				got = append(got, tok.Kind)
				if tok.Kind == TokenEOF {
					break
				}
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.expected), tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerUnicodeEscapeFolding(t *testing.T) {
	src := "\\u0063lass" // "class" spelled with a folded c ('c')
	lexer := NewLexer([]byte(src), "Test.java")
	tok := lexer.NextToken()
	if tok.Kind != TokenClass {
		t.Fatalf("got %v, want TokenClass", tok.Kind)
	}
	if tok.Span.Start.Offset != 0 || tok.Span.End.Offset != len(src) {
		t.Errorf("got span [%d,%d), want [0,%d)", tok.Span.Start.Offset, tok.Span.End.Offset, len(src))
	}
}

func TestLexerUnterminatedStringIsFatal(t *testing.T) {
	lexer := NewLexer([]byte(`"unterminated`), "Test.java")
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenEOF {
			break
		}
	}
	if lexer.Err() == nil {
		t.Fatal("expected a lex error")
	}
	if lexer.Err().Kind != LexErrUnterminatedString {
		t.Errorf("got %v, want LexErrUnterminatedString", lexer.Err().Kind)
	}
}

func TestLexerNumberSeparatorRules(t *testing.T) {
	bad := []string{"1_", "1__0"}
	for _, src := range bad {
		t.Run(src, func(t *testing.T) {
			lexer := NewLexer([]byte(src), "Test.java")
			for {
				tok := lexer.NextToken()
				if tok.Kind == TokenEOF {
					break
				}
			}
			if lexer.Err() == nil {
				t.Errorf("expected a lex error for %q", src)
			}
		})
	}
}
