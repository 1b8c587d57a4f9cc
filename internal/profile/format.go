package profile

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	remoteMarkerRegex = regexp.MustCompile(`(?i)\b(?:fully\s+remote|remote|work[\s-]+from[\s-]+home|wfh)\b`)
	locationSepRegex  = regexp.MustCompile(`[,;/|•·()\[\]{}]`)
	dateDashRegex     = regexp.MustCompile(`\s*[-‐‑‒–—―]+\s*`)
	whitespaceRegex   = regexp.MustCompile(`\s+`)
)

// bulletMarkers are glyphs stripped from the start of a bullet line.
const bulletMarkers = "-•*·▪‣◦●○■□►➢>–—"

// FormatPhone rewrites an international number written as one digit run
// into "+<country> <national>". A single space after the country code is
// accepted. Anything else is returned unchanged.
func FormatPhone(phone string) string {
	trimmed := strings.TrimSpace(phone)
	if !strings.HasPrefix(trimmed, "+") {
		return phone
	}

	body := trimmed[1:]
	if country, national, ok := strings.Cut(body, " "); ok {
		if country == "" || len(country) > 3 || !isDigits(country) {
			return phone
		}
		body = country + national
	}
	if !isDigits(body) || len(body) < 11 || len(body) > 13 {
		return phone
	}

	split := len(body) - 10
	return "+" + body[:split] + " " + body[split:]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CleanLocation drops remote/work-from-home markers and normalizes separators to " | ".
func CleanLocation(location string) string {
	cleaned := remoteMarkerRegex.ReplaceAllString(location, " ")
	parts := locationSepRegex.Split(cleaned, -1)

	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		part = whitespaceRegex.ReplaceAllString(part, " ")
		part = strings.Trim(part, " -–—:")
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " | ")
}

// NormalizeDates converts every hyphen run to a spaced en dash.
func NormalizeDates(dates string) string {
	return strings.TrimSpace(dateDashRegex.ReplaceAllString(dates, " – "))
}

// CleanBullet strips one leading marker glyph and the surrounding whitespace.
func CleanBullet(bullet string) string {
	trimmed := strings.TrimSpace(bullet)
	r, size := utf8.DecodeRuneInString(trimmed)
	if size > 0 && strings.ContainsRune(bulletMarkers, r) {
		trimmed = strings.TrimLeftFunc(trimmed[size:], unicode.IsSpace)
	}
	return strings.TrimSpace(trimmed)
}
