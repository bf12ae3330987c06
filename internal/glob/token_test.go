package glob

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		unix    bool
		want    []TokenKind
	}{
		{"empty", "", true, []TokenKind{TokenEndOfText}},
		{"identifier", "src", true, []TokenKind{TokenIdentifier, TokenEndOfText}},
		{"double star is one token", "**", true, []TokenKind{TokenDirectoryWildcard, TokenEndOfText}},
		{"triple star", "***", true, []TokenKind{TokenDirectoryWildcard, TokenWildcard, TokenEndOfText}},
		{"both separators", `a/b\c`, true, []TokenKind{
			TokenIdentifier, TokenPathSeparator, TokenIdentifier, TokenPathSeparator, TokenIdentifier, TokenEndOfText,
		}},
		{"mixed segment", "*.go", true, []TokenKind{TokenWildcard, TokenIdentifier, TokenEndOfText}},
		{"character wildcard", "doc?", true, []TokenKind{TokenIdentifier, TokenCharacterWildcard, TokenEndOfText}},
		{"parent", "../x", true, []TokenKind{TokenParent, TokenPathSeparator, TokenIdentifier, TokenEndOfText}},
		{"dots inside name", "a..b", true, []TokenKind{TokenIdentifier, TokenEndOfText}},
		{"drive on windows", `C:\src`, false, []TokenKind{
			TokenWindowsRoot, TokenPathSeparator, TokenIdentifier, TokenEndOfText,
		}},
		{"drive is plain text on unix", "C:/src", true, []TokenKind{
			TokenIdentifier, TokenPathSeparator, TokenIdentifier, TokenEndOfText,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.pattern, tt.unix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kinds(got))
		})
	}
}

func TestTokenize_Values(t *testing.T) {
	got, err := Tokenize("src/*.go", true)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, Token{Kind: TokenIdentifier, Value: "src", Pos: 0}, got[0])
	assert.Equal(t, Token{Kind: TokenWildcard, Value: "*", Pos: 4}, got[2])
	assert.Equal(t, Token{Kind: TokenIdentifier, Value: ".go", Pos: 5}, got[3])
}

func TestTokenize_IllegalCharacters(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		unix    bool
		pos     int
	}{
		{"nul on unix", "a\x00b", true, 1},
		{"nul on windows", "a\x00b", false, 1},
		{"control on windows", "a\x01", false, 1},
		{"pipe on windows", "a|b", false, 1},
		{"angle on windows", "src/<x>", false, 4},
		{"quote on windows", `"x"`, false, 0},
		{"colon after drive", "C:/a:b", false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.pattern, tt.unix)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIllegalCharacter)

			var pe *PatternError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.pos, pe.Pos)
			assert.Equal(t, tt.pattern, pe.Pattern)
		})
	}
}

func TestTokenize_UnixAllowsWindowsReserved(t *testing.T) {
	_, err := Tokenize(`a|b<c>:"d"`, true)
	assert.NoError(t, err)
}
