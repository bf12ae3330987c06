// parser.go turns a token stream into a validated Node chain.
//
// Grammar, with separators between segments collapsed:
//
//	pattern := root segment*
//	root    := "/" | "C:" | "." | (empty)
//	segment := "**" | "*" | ".." | identifier | mixed
//
// A segment holding more than one token ("*.go", "doc?", "a*b") becomes a
// PatternSegment matched with doublestar. A lone "." segment is dropped.

package glob

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type parser struct {
	pattern string
	tokens  []Token
	pos     int
	unix    bool
}

// Parse parses pattern using Unix rules when unix is true, otherwise
// Windows rules. The returned chain has passed validation.
func Parse(pattern string, unix bool) (*Node, error) {
	tokens, err := Tokenize(pattern, unix)
	if err != nil {
		return nil, err
	}
	p := &parser{pattern: pattern, tokens: tokens, unix: unix}
	head, err := p.parse()
	if err != nil {
		return nil, err
	}
	if err := validate(pattern, head); err != nil {
		return nil, err
	}
	return head, nil
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	t := p.tokens[p.pos]
	if t.Kind != TokenEndOfText {
		p.pos++
	}
	return t
}

func (p *parser) errorf(pos int, kind error, format string, args ...any) error {
	return &PatternError{Pattern: p.pattern, Pos: pos, Err: kind, Detail: fmt.Sprintf(format, args...)}
}

func (p *parser) parse() (*Node, error) {
	head, err := p.parseRoot()
	if err != nil {
		return nil, err
	}
	tail := head
	for {
		for p.peek().Kind == TokenPathSeparator {
			p.advance()
		}
		if p.peek().Kind == TokenEndOfText {
			return head, nil
		}
		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		if seg == nil {
			continue
		}
		tail.Next = seg
		tail = seg
	}
}

func (p *parser) parseRoot() (*Node, error) {
	t := p.peek()
	switch t.Kind {
	case TokenWindowsRoot:
		p.advance()
		return &Node{Kind: WindowsRoot, Text: strings.ToUpper(t.Value), pos: t.Pos}, nil
	case TokenPathSeparator:
		if !p.unix {
			return nil, p.errorf(t.Pos, ErrUnsupported, "rooted path without a drive letter")
		}
		p.advance()
		return &Node{Kind: UnixRoot, pos: t.Pos}, nil
	case TokenIdentifier:
		if t.Value == "." {
			next := p.tokens[p.pos+1].Kind
			if next == TokenPathSeparator || next == TokenEndOfText {
				p.advance()
			}
		}
	}
	return &Node{Kind: RelativeRoot, pos: t.Pos}, nil
}

// parseSegment consumes tokens up to the next separator. It returns nil for
// a segment that contributes nothing to the chain.
func (p *parser) parseSegment() (*Node, error) {
	var items []Token
	for k := p.peek().Kind; k != TokenPathSeparator && k != TokenEndOfText; k = p.peek().Kind {
		items = append(items, p.advance())
	}
	first := items[0]

	if len(items) == 1 {
		switch first.Kind {
		case TokenWildcard:
			return &Node{Kind: WildcardSegment, Text: first.Value, pos: first.Pos}, nil
		case TokenDirectoryWildcard:
			return &Node{Kind: RecursiveWildcardSegment, Text: first.Value, pos: first.Pos}, nil
		case TokenParent:
			return &Node{Kind: ParentSegment, Text: first.Value, pos: first.Pos}, nil
		case TokenIdentifier:
			if first.Value == "." {
				return nil, nil
			}
			return &Node{Kind: IdentifierSegment, Text: first.Value, pos: first.Pos}, nil
		}
	}

	var raw, pattern strings.Builder
	for _, t := range items {
		raw.WriteString(t.Value)
		switch t.Kind {
		case TokenWildcard, TokenDirectoryWildcard:
			// "**" inside a segment cannot cross a separator, so it is "*".
			pattern.WriteByte('*')
		case TokenCharacterWildcard:
			pattern.WriteByte('?')
		case TokenIdentifier, TokenParent:
			pattern.WriteString(escape(t.Value))
		default:
			return nil, p.errorf(t.Pos, ErrUnexpectedToken, "%s inside a segment", t.Kind)
		}
	}
	if !doublestar.ValidatePattern(pattern.String()) {
		return nil, p.errorf(first.Pos, ErrUnexpectedToken, "segment %q", raw.String())
	}
	return &Node{Kind: PatternSegment, Text: raw.String(), pattern: pattern.String(), pos: first.Pos}, nil
}

// escape quotes the characters doublestar would otherwise treat as syntax.
// Separators and wildcards never reach here; they are tokens of their own.
func escape(s string) string {
	if !strings.ContainsAny(s, "[]{}") {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '[', ']', '{', '}':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// validate checks the chain for shapes the grammar accepts but the walker
// cannot give a meaning to.
func validate(pattern string, head *Node) error {
	if head == nil || !head.IsRoot() {
		return &PatternError{Pattern: pattern, Err: ErrUnexpectedToken, Detail: "pattern has no root"}
	}
	for n := head.Next; n != nil; n = n.Next {
		if n.IsRoot() {
			return &PatternError{Pattern: pattern, Pos: n.pos, Err: ErrUnexpectedToken, Detail: "root after first segment"}
		}
		if n.Kind == RecursiveWildcardSegment && n.Next != nil && n.Next.Kind == ParentSegment {
			return &PatternError{Pattern: pattern, Pos: n.Next.pos, Err: ErrUnsupported, Detail: "\"..\" directly after \"**\""}
		}
	}
	return nil
}
