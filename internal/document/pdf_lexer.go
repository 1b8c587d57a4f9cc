package document

import (
	"strconv"
)

type operandKind int

const (
	operandString operandKind = iota
	operandNumber
	operandName
	operandArray
	operandOther
)

// operand is one value pushed before a content-stream operator.
type operand struct {
	kind  operandKind
	str   []byte
	num   float64
	items []operand
}

// contentLexer tokenizes a PDF content stream. It understands just enough of
// the syntax to skip over strings, arrays and dictionaries correctly.
type contentLexer struct {
	data []byte
	pos  int
}

func isPDFWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isPDFRegular(c byte) bool {
	return !isPDFWhitespace(c) && !isPDFDelimiter(c)
}

func (l *contentLexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if isPDFWhitespace(c) {
			l.pos++
			continue
		}
		if c == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		return
	}
}

// next returns the next operand, or the operator name when op is non-empty.
// ok is false at end of input.
func (l *contentLexer) next() (val operand, op string, ok bool) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return operand{}, "", false
	}

	c := l.data[l.pos]
	switch {
	case c == '(':
		l.pos++
		return operand{kind: operandString, str: l.readLiteral()}, "", true
	case c == '[':
		l.pos++
		return operand{kind: operandArray, items: l.readArray()}, "", true
	case c == '<':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
			l.pos += 2
			l.skipDict()
			return operand{kind: operandOther}, "", true
		}
		l.pos++
		for l.pos < len(l.data) && l.data[l.pos] != '>' {
			l.pos++
		}
		l.pos++
		return operand{kind: operandOther}, "", true
	case c == '/':
		l.pos++
		start := l.pos
		for l.pos < len(l.data) && isPDFRegular(l.data[l.pos]) {
			l.pos++
		}
		return operand{kind: operandName, str: l.data[start:l.pos]}, "", true
	case c == ']' || c == ')' || c == '>' || c == '{' || c == '}':
		l.pos++
		return operand{kind: operandOther}, "", true
	case c == '\'' || c == '"':
		l.pos++
		return operand{}, string(c), true
	}

	start := l.pos
	for l.pos < len(l.data) && isPDFRegular(l.data[l.pos]) && l.data[l.pos] != '\'' && l.data[l.pos] != '"' {
		l.pos++
	}
	if l.pos == start {
		l.pos++
		return operand{kind: operandOther}, "", true
	}
	word := string(l.data[start:l.pos])
	if isNumberStart(word[0]) {
		if n, err := strconv.ParseFloat(word, 64); err == nil {
			return operand{kind: operandNumber, num: n}, "", true
		}
	}
	return operand{}, word, true
}

func isNumberStart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}

// readLiteral reads a literal string body after the opening paren,
// honoring nested parens and backslash escapes.
func (l *contentLexer) readLiteral() []byte {
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '\\':
			if l.pos >= len(l.data) {
				return out
			}
			e := l.data[l.pos]
			l.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '(', ')', '\\':
				out = append(out, e)
			case '\r':
				if l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
			case '\n':
				// line continuation
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for i := 0; i < 2 && l.pos < len(l.data); i++ {
						d := l.data[l.pos]
						if d < '0' || d > '7' {
							break
						}
						v = v*8 + int(d-'0')
						l.pos++
					}
					out = append(out, byte(v))
				} else {
					out = append(out, e)
				}
			}
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return out
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}

func (l *contentLexer) readArray() []operand {
	var items []operand
	for {
		l.skipSpace()
		if l.pos >= len(l.data) {
			return items
		}
		if l.data[l.pos] == ']' {
			l.pos++
			return items
		}
		val, op, ok := l.next()
		if !ok {
			return items
		}
		if op != "" {
			continue
		}
		items = append(items, val)
	}
}

func (l *contentLexer) skipDict() {
	depth := 1
	for l.pos < len(l.data) && depth > 0 {
		switch {
		case l.data[l.pos] == '(':
			l.pos++
			l.readLiteral()
			continue
		case l.pos+1 < len(l.data) && l.data[l.pos] == '<' && l.data[l.pos+1] == '<':
			depth++
			l.pos += 2
			continue
		case l.pos+1 < len(l.data) && l.data[l.pos] == '>' && l.data[l.pos+1] == '>':
			depth--
			l.pos += 2
			continue
		}
		l.pos++
	}
}
