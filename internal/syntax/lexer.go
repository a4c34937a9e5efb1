package syntax

import (
	"strings"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
)

// Token is one lexeme plus its original-text range. A plain
// character-by-character scan, generalized from a scripting language's
// token set to WGSL's.
type Token struct {
	Kind  SyntaxKind
	Text  string
	Range span.Range
}

// Lexer turns WGSL source text into a flat token stream. Whitespace and
// `//`/`/* */` comments are dropped rather than retained as trivia; the
// syntax layer here trades full-fidelity round-tripping (rowan's job in
// the systems this spec is modeled on) for a tree simple enough for
// AstPointer to re-resolve by range and kind alone.
type Lexer struct {
	src []byte
	pos int
}

func NewLexer(text string) *Lexer {
	return &Lexer{src: []byte(text)}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Tokenize runs the lexer to completion, returning every non-trivia token
// followed by a trailing KindEOF token.
func (l *Lexer) Tokenize() []Token {
	var toks []Token
	for {
		l.skipTrivia()
		if l.pos >= len(l.src) {
			toks = append(toks, Token{Kind: KindEOF, Range: span.NewRange(span.Offset(l.pos), span.Offset(l.pos))})
			return toks
		}
		start := l.pos
		tok := l.next()
		tok.Range = span.NewRange(span.Offset(start), span.Offset(l.pos))
		tok.Text = string(l.src[start:l.pos])
		toks = append(toks, tok)
	}
}

func (l *Lexer) skipTrivia() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.peek(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.peek(1) == '*':
			l.pos += 2
			for l.pos < len(l.src) && !(l.src[l.pos] == '*' && l.peek(1) == '/') {
				l.pos++
			}
			if l.pos < len(l.src) {
				l.pos += 2
			}
		default:
			return
		}
	}
}

func (l *Lexer) peek(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) next() Token {
	c := l.src[l.pos]
	switch {
	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
			l.pos++
		}
		text := string(l.src[start:l.pos])
		if text == "_" {
			return Token{Kind: KindUnderscore}
		}
		if kw, ok := keywords[text]; ok {
			return Token{Kind: kw}
		}
		return Token{Kind: KindIdent}
	case isDigit(c):
		return l.lexNumber()
	default:
		return l.lexPunct()
	}
}

func (l *Lexer) lexNumber() Token {
	start := l.pos
	isFloat := false
	if l.src[l.pos] == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') {
		l.pos += 2
		for l.pos < len(l.src) && isHex(l.src[l.pos]) {
			l.pos++
		}
		if l.pos < len(l.src) && l.src[l.pos] == '.' {
			isFloat = true
			l.pos++
			for l.pos < len(l.src) && isHex(l.src[l.pos]) {
				l.pos++
			}
		}
		if l.pos < len(l.src) && (l.src[l.pos] == 'p' || l.src[l.pos] == 'P') {
			isFloat = true
			l.pos++
			if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
				l.pos++
			}
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
	} else {
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		if l.pos < len(l.src) && l.src[l.pos] == '.' {
			isFloat = true
			l.pos++
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
		if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
			isFloat = true
			l.pos++
			if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
				l.pos++
			}
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
	}
	// numeric-type suffixes: i, u, f, h
	if l.pos < len(l.src) && strings.ContainsRune("iufh", rune(l.src[l.pos])) {
		if l.src[l.pos] == 'f' || l.src[l.pos] == 'h' {
			isFloat = true
		}
		l.pos++
	}
	_ = start
	if isFloat {
		return Token{Kind: KindFloatLiteral}
	}
	return Token{Kind: KindIntLiteral}
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *Lexer) lexPunct() Token {
	c := l.src[l.pos]
	two := func(second byte, kind2 SyntaxKind, kind1 SyntaxKind) Token {
		if l.peek(1) == second {
			l.pos += 2
			return Token{Kind: kind2}
		}
		l.pos++
		return Token{Kind: kind1}
	}
	switch c {
	case '(':
		l.pos++
		return Token{Kind: KindLParen}
	case ')':
		l.pos++
		return Token{Kind: KindRParen}
	case '{':
		l.pos++
		return Token{Kind: KindLBrace}
	case '}':
		l.pos++
		return Token{Kind: KindRBrace}
	case '[':
		l.pos++
		return Token{Kind: KindLBracket}
	case ']':
		l.pos++
		return Token{Kind: KindRBracket}
	case ',':
		l.pos++
		return Token{Kind: KindComma}
	case ':':
		l.pos++
		return Token{Kind: KindColon}
	case ';':
		l.pos++
		return Token{Kind: KindSemicolon}
	case '@':
		l.pos++
		return Token{Kind: KindAt}
	case '.':
		l.pos++
		return Token{Kind: KindDot}
	case '~':
		l.pos++
		return Token{Kind: KindTilde}
	case '+':
		if l.peek(1) == '+' {
			l.pos += 2
			return Token{Kind: KindPlusPlus}
		}
		return two('=', KindPlusEq, KindPlus)
	case '-':
		if l.peek(1) == '-' {
			l.pos += 2
			return Token{Kind: KindMinusMinus}
		}
		if l.peek(1) == '>' {
			l.pos += 2
			return Token{Kind: KindArrow}
		}
		return two('=', KindMinusEq, KindMinus)
	case '*':
		return two('=', KindStarEq, KindStar)
	case '/':
		return two('=', KindSlashEq, KindSlash)
	case '%':
		return two('=', KindPercentEq, KindPercent)
	case '^':
		return two('=', KindXorEq, KindCaret)
	case '!':
		return two('=', KindNotEq, KindBang)
	case '=':
		return two('=', KindEqEq, KindEq)
	case '&':
		if l.peek(1) == '&' {
			l.pos += 2
			return Token{Kind: KindAmpAmp}
		}
		return two('=', KindAndEq, KindAmp)
	case '|':
		if l.peek(1) == '|' {
			l.pos += 2
			return Token{Kind: KindPipePipe}
		}
		return two('=', KindOrEq, KindPipe)
	case '<':
		if l.peek(1) == '<' {
			if l.peek(2) == '=' {
				l.pos += 3
				return Token{Kind: KindShlEq}
			}
			l.pos += 2
			return Token{Kind: KindShl}
		}
		return two('=', KindLe, KindLt)
	case '>':
		if l.peek(1) == '>' {
			if l.peek(2) == '=' {
				l.pos += 3
				return Token{Kind: KindShrEq}
			}
			l.pos += 2
			return Token{Kind: KindShr}
		}
		return two('=', KindGe, KindGt)
	default:
		l.pos++
		return Token{Kind: KindError}
	}
}
