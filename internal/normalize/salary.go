package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jimezsa/jobclip/internal/patterns"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	rangeSepRe   = regexp.MustCompile(`(?i)\d\s*K?(?:\s*/\s*[a-z]+)?\s*(?:-|–|—|\bto\b)\s*\$?\d`)
	dashTrimmers = "-–—"
)

// Salary converts a raw salary substring to "$A - $B", "$A" or "$A+".
// K values are multiplied by 1000. Input that starts or ends with a dash is
// treated as a broken range and yields "".
func Salary(raw string) string {
	return SalaryWith(patterns.Default(), raw)
}

// SalaryWith is Salary against an explicit library.
func SalaryWith(lib *patterns.Library, raw string) string {
	raw = strings.TrimSpace(Text(raw))
	if raw == "" {
		return ""
	}
	runes := []rune(raw)
	if strings.ContainsRune(dashTrimmers, runes[0]) || strings.ContainsRune(dashTrimmers, runes[len(runes)-1]) {
		return ""
	}

	hasSeparator := rangeSepRe.MatchString(raw)
	for _, p := range lib.SalaryPatterns() {
		m := p.Re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		switch p.Family {
		case patterns.SalaryKRange:
			return formatRange(parseAmount(m[1], true), parseAmount(m[2], true))
		case patterns.SalaryFullRange:
			return formatRange(parseAmount(m[1], false), parseAmount(m[2], false))
		case patterns.SalaryMixedRange:
			return formatRange(parseAmount(m[1], true), parseAmount(m[2], false))
		case patterns.SalarySingle:
			if hasSeparator {
				return ""
			}
			amount := parseAmount(m[1], m[2] != "")
			if amount <= 0 {
				return ""
			}
			out := "$" + groupDigits(amount)
			if m[3] != "" {
				out += "+"
			}
			return out
		}
	}
	return ""
}

func formatRange(lo, hi int64) string {
	if lo <= 0 || hi <= 0 {
		return ""
	}
	return "$" + groupDigits(lo) + " - $" + groupDigits(hi)
}

func groupDigits(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

func parseAmount(digits string, thousands bool) int64 {
	digits = strings.ReplaceAll(digits, ",", "")
	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	if thousands {
		value *= 1000
	}
	return int64(math.Round(value))
}
