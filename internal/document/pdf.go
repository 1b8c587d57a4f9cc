package document

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"
)

// MinPDFText is the number of letters and digits below which a PDF
// extraction pass is considered to have failed.
const MinPDFText = 100

// kerningSpace is the TJ adjustment (thousandths of an em) beyond which a
// word break is assumed.
const kerningSpace = -200

var (
	streamBodyRegex = regexp.MustCompile(`(?s)stream\r?\n(.*?)endstream`)
	printableRun    = regexp.MustCompile(`[\x20-\x7E]{20,}`)
	wordRegex       = regexp.MustCompile(`[A-Za-z]{2,}`)
	wordTokenRegex  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9@.,;:'&+()/-]*$`)
)

var pdfKeywords = map[string]bool{
	"obj": true, "endobj": true, "stream": true, "endstream": true,
	"xref": true, "trailer": true, "startxref": true, "BT": true, "ET": true,
	"Tj": true, "TJ": true, "Tf": true, "Td": true, "TD": true, "Tm": true,
	"re": true, "cm": true, "rg": true, "RG": true, "Do": true, "R": true,
}

type pdfCandidate struct {
	method string
	text   string
}

// extractPDF runs the extraction passes in order of fidelity and keeps the
// richest result. A later pass only replaces an earlier one when it recovers more text.
func extractPDF(data []byte) *Result {
	passes := []struct {
		method string
		run    func([]byte) string
	}{
		{MethodPDFBlocks, extractTextBlocks},
		{MethodPDFReader, readPDFStructured},
		{MethodPDFStreams, scanStreams},
		{MethodPDFStrip, stripPDF},
	}

	best := pdfCandidate{method: MethodPDFBlocks}
	bestScore := 0
	for _, pass := range passes {
		text := strings.TrimSpace(pass.run(data))
		if score := meaningfulChars(text); score > bestScore {
			best = pdfCandidate{method: pass.method, text: text}
			bestScore = score
		}
		if bestScore >= MinPDFText {
			break
		}
	}

	return &Result{Format: FormatPDF, Method: best.method, Text: best.text}
}

// extractTextBlocks collects the strings shown by text operators inside BT/ET blocks.
func extractTextBlocks(data []byte) string {
	var out []byte
	newline := func() {
		if len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
	}

	pos := 0
	for {
		start := findOperator(data, pos, "BT")
		if start < 0 {
			break
		}
		lex := &contentLexer{data: data, pos: start + 2}
		var operands []operand

	block:
		for {
			val, op, ok := lex.next()
			if !ok {
				break
			}
			if op == "" {
				operands = append(operands, val)
				continue
			}

			switch op {
			case "ET", "endstream":
				break block
			case "Tj":
				if s, ok := lastString(operands); ok {
					out = append(out, s...)
				}
			case "'", "\"":
				newline()
				if s, ok := lastString(operands); ok {
					out = append(out, s...)
				}
			case "TJ":
				if len(operands) > 0 && operands[len(operands)-1].kind == operandArray {
					for _, item := range operands[len(operands)-1].items {
						switch item.kind {
						case operandString:
							out = append(out, item.str...)
						case operandNumber:
							if item.num < kerningSpace && len(out) > 0 && out[len(out)-1] != ' ' {
								out = append(out, ' ')
							}
						}
					}
				}
			case "T*":
				newline()
			case "Td", "TD":
				if len(operands) >= 2 && operands[len(operands)-1].kind == operandNumber &&
					operands[len(operands)-1].num != 0 {
					newline()
				} else if len(out) > 0 && out[len(out)-1] != ' ' && out[len(out)-1] != '\n' {
					out = append(out, ' ')
				}
			case "Tm":
				newline()
			}
			operands = operands[:0]
		}

		newline()
		if lex.pos <= start {
			lex.pos = start + 2
		}
		pos = lex.pos
	}

	return latin1(out)
}

// findOperator finds the next standalone occurrence of op at or after from.
func findOperator(data []byte, from int, op string) int {
	for from < len(data) {
		i := bytes.Index(data[from:], []byte(op))
		if i < 0 {
			return -1
		}
		i += from
		end := i + len(op)
		before := i == 0 || isPDFWhitespace(data[i-1]) || isPDFDelimiter(data[i-1])
		after := end >= len(data) || isPDFWhitespace(data[end]) || isPDFDelimiter(data[end])
		if before && after {
			return i
		}
		from = i + 1
	}
	return -1
}

func lastString(operands []operand) ([]byte, bool) {
	if len(operands) == 0 || operands[len(operands)-1].kind != operandString {
		return nil, false
	}
	return operands[len(operands)-1].str, true
}

// scanStreams keeps printable runs from raw stream bodies that look like prose.
func scanStreams(data []byte) string {
	var lines []string
	for _, m := range streamBodyRegex.FindAllSubmatch(data, -1) {
		for _, run := range printableRun.FindAll(m[1], -1) {
			if len(wordRegex.FindAll(run, 3)) >= 3 {
				lines = append(lines, strings.TrimSpace(string(run)))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// stripPDF drops every non-printable byte from the file and keeps word-like tokens.
func stripPDF(data []byte) string {
	var words []string
	for _, field := range strings.Fields(stripBinary(data)) {
		if len(field) < 2 || pdfKeywords[field] || !wordTokenRegex.MatchString(field) {
			continue
		}
		words = append(words, field)
	}
	return strings.Join(words, " ")
}

func meaningfulChars(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
