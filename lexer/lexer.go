// Package lexer turns source text into a stream of tokens.
//
// Scanning is a single left-to-right pass over the input. A text buffer
// accumulates non-delimiter runes; the delimiter set { space, (, ), {,
// }, ;, ,, :, " } flushes the buffer through classify. Quotes toggle a
// string-collection mode that suspends every other rule. Tabs and
// newlines are whitespace that does not flush the buffer - only space
// does that. There are no comments in the language.
package lexer

import (
	"strconv"
	"strings"

	"github.com/danielcastelluccio/barelyc/token"
)

// Lexer holds scanning state over a rune sequence.
type Lexer struct {
	characters []rune
	position   int

	buffer   strings.Builder
	inQuotes bool

	pending []token.Token
}

// New creates a Lexer over the given source text.
func New(input string) *Lexer {
	return &Lexer{characters: []rune(input)}
}

// NextToken returns the next token in the stream, or an EOF token once
// the input is exhausted.
func (l *Lexer) NextToken() token.Token {
	for len(l.pending) == 0 {
		if l.position >= len(l.characters) {
			if tok, ok := l.flush(); ok {
				l.pending = append(l.pending, tok)
			}
			l.pending = append(l.pending, token.Token{Type: token.EOF})
			break
		}

		ch := l.characters[l.position]
		l.position++
		l.step(ch)
	}

	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok
}

// step consumes a single rune, updating the buffer and pending-token
// queue as the delimiter rules dictate.
func (l *Lexer) step(ch rune) {
	if l.inQuotes {
		if ch == '"' {
			l.pending = append(l.pending, token.Token{Type: token.STRING, Literal: l.buffer.String()})
			l.buffer.Reset()
			l.inQuotes = false
		} else {
			l.buffer.WriteRune(ch)
		}
		return
	}

	switch ch {
	case '"':
		l.flushPending()
		l.inQuotes = true
	case ' ':
		l.flushPending()
	case '(':
		l.flushPending()
		l.pending = append(l.pending, token.Token{Type: token.OPEN_PAREN})
	case ')':
		l.flushPending()
		l.pending = append(l.pending, token.Token{Type: token.CLOSE_PAREN})
	case '{':
		l.flushPending()
		l.pending = append(l.pending, token.Token{Type: token.OPEN_BRACE})
	case '}':
		l.flushPending()
		l.pending = append(l.pending, token.Token{Type: token.CLOSE_BRACE})
	case ';':
		l.flushPending()
		l.pending = append(l.pending, token.Token{Type: token.SEMICOLON})
	case ',':
		l.flushPending()
		l.pending = append(l.pending, token.Token{Type: token.COMMA})
	case ':':
		l.flushPending()
		l.pending = append(l.pending, token.Token{Type: token.COLON})
	case '\t', '\n', '\r':
		// pure whitespace: does not flush the buffer.
	default:
		l.buffer.WriteRune(ch)
	}
}

// flushPending flushes the buffer and, if it yielded a token, appends it
// to the pending queue.
func (l *Lexer) flushPending() {
	if tok, ok := l.flush(); ok {
		l.pending = append(l.pending, tok)
	}
}

// flush classifies the current buffer contents and resets the buffer.
func (l *Lexer) flush() (token.Token, bool) {
	text := l.buffer.String()
	l.buffer.Reset()
	return classify(text)
}

// classify turns a buffered run of characters into a token, in the
// order: keyword, NumberSplit ("A_B"), integer, boolean, name.
func classify(text string) (token.Token, bool) {
	if text == "" {
		return token.Token{}, false
	}

	if token.IsKeyword(text) {
		return token.Token{Type: token.KEYWORD, Literal: text}, true
	}

	if a, b, ok := splitNumber(text); ok {
		return token.Token{Type: token.NUMBER_SPLIT, Literal: text, SplitA: a, SplitB: b}, true
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return token.Token{Type: token.INTEGER, Literal: text, Integer: n}, true
	}

	if text == "true" || text == "false" {
		return token.Token{Type: token.BOOLEAN, Literal: text, Boolean: text == "true"}, true
	}

	if strings.TrimSpace(text) != "" {
		return token.Token{Type: token.NAME, Literal: text}, true
	}

	return token.Token{}, false
}

// splitNumber recognizes the "A_B" shape, where both A and B are
// decimal integers.
func splitNumber(text string) (int64, int64, bool) {
	idx := strings.IndexByte(text, '_')
	if idx <= 0 || idx == len(text)-1 {
		return 0, 0, false
	}

	a, errA := strconv.ParseInt(text[:idx], 10, 64)
	if errA != nil {
		return 0, 0, false
	}
	b, errB := strconv.ParseInt(text[idx+1:], 10, 64)
	if errB != nil {
		return 0, 0, false
	}
	return a, b, true
}
