// token.go implements the pattern tokenizer.
//
// The tokenizer is forward-only and never backtracks. Special characters are
// "*", "?", "/" and "\"; every other maximal run of characters is an
// identifier, except the run ".." which is a parent token. A drive prefix
// ("C:") is recognised only at offset 0 and only with Windows rules.

package glob

import "fmt"

// TokenKind identifies a lexical token.
type TokenKind int

const (
	TokenWildcard          TokenKind = iota // *
	TokenCharacterWildcard                  // ?
	TokenDirectoryWildcard                  // **
	TokenPathSeparator                      // / or \
	TokenIdentifier                         // literal text
	TokenWindowsRoot                        // C:
	TokenParent                             // ..
	TokenEndOfText
)

func (k TokenKind) String() string {
	switch k {
	case TokenWildcard:
		return "wildcard"
	case TokenCharacterWildcard:
		return "character wildcard"
	case TokenDirectoryWildcard:
		return "directory wildcard"
	case TokenPathSeparator:
		return "path separator"
	case TokenIdentifier:
		return "identifier"
	case TokenWindowsRoot:
		return "windows root"
	case TokenParent:
		return "parent"
	case TokenEndOfText:
		return "end of text"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

// Token is a single lexical unit of a pattern.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   int
}

type tokenizer struct {
	pattern string
	pos     int
	unix    bool
}

// Tokenize splits pattern into tokens, ending with TokenEndOfText.
func Tokenize(pattern string, unix bool) ([]Token, error) {
	t := &tokenizer{pattern: pattern, unix: unix}
	var tokens []Token
	for {
		tok, err := t.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEndOfText {
			return tokens, nil
		}
	}
}

func (t *tokenizer) next() (Token, error) {
	start := t.pos
	if start >= len(t.pattern) {
		return Token{Kind: TokenEndOfText, Pos: start}, nil
	}

	switch c := t.pattern[start]; c {
	case '/', '\\':
		t.pos++
		return Token{Kind: TokenPathSeparator, Value: string(c), Pos: start}, nil
	case '?':
		t.pos++
		return Token{Kind: TokenCharacterWildcard, Value: "?", Pos: start}, nil
	case '*':
		if start+1 < len(t.pattern) && t.pattern[start+1] == '*' {
			t.pos += 2
			return Token{Kind: TokenDirectoryWildcard, Value: "**", Pos: start}, nil
		}
		t.pos++
		return Token{Kind: TokenWildcard, Value: "*", Pos: start}, nil
	}

	if start == 0 && !t.unix && len(t.pattern) >= 2 && isLetter(t.pattern[0]) && t.pattern[1] == ':' {
		t.pos = 2
		return Token{Kind: TokenWindowsRoot, Value: t.pattern[:2], Pos: start}, nil
	}

	for t.pos < len(t.pattern) && !isSpecial(t.pattern[t.pos]) {
		if c := t.pattern[t.pos]; t.illegal(c) {
			return Token{}, &PatternError{
				Pattern: t.pattern,
				Pos:     t.pos,
				Err:     ErrIllegalCharacter,
				Detail:  fmt.Sprintf("%q", rune(c)),
			}
		}
		t.pos++
	}

	text := t.pattern[start:t.pos]
	if text == ".." {
		return Token{Kind: TokenParent, Value: text, Pos: start}, nil
	}
	return Token{Kind: TokenIdentifier, Value: text, Pos: start}, nil
}

// illegal reports whether c is outside the platform's path character set.
// All illegal characters are ASCII, so checking bytes is safe for UTF-8.
func (t *tokenizer) illegal(c byte) bool {
	if c == 0 {
		return true
	}
	if t.unix {
		return false
	}
	switch c {
	case '<', '>', '"', '|', ':':
		return true
	}
	return c < 32
}

func isSpecial(c byte) bool {
	return c == '/' || c == '\\' || c == '*' || c == '?'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
