package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf16"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	nbsp       = "\u00a0"
	narrowNbsp = '\u202f'
	currency   = "F" + nbsp + "CFA"
)

var frenchPrinter = message.NewPrinter(language.French)

// FormatPrice renders an amount of CFA francs the way fr-FR does, without
// decimals: 1250000 becomes "1 250 000 F CFA". Every space in the result is
// non-breaking.
func FormatPrice(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	digits := frenchPrinter.Sprintf("%v", number.Decimal(whole, number.MaxFractionDigits(0)))
	digits = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == narrowNbsp {
			return narrowNbsp
		}
		return r
	}, digits)
	return digits + nbsp + currency
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate renders t relative to now in loc: "15:04" for today,
// "Hier, 15:04" for yesterday, "2 janvier 2024 à 15:04" otherwise.
func FormatDate(t, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	now = now.In(loc)

	clock := t.Format("15:04")
	switch {
	case sameDay(t, now):
		return clock
	case sameDay(t, now.AddDate(0, 0, -1)):
		return "Hier, " + clock
	default:
		return fmt.Sprintf("%d %s %d à %s", t.Day(), frenchMonths[t.Month()-1], t.Year(), clock)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

var phonePattern = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})(\d{2})(\d{2})$`)

// FormatPhoneNumber groups a ten digit Ivorian number in pairs. Anything else
// is returned unchanged.
func FormatPhoneNumber(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	m := phonePattern.FindStringSubmatch(cleaned)
	if m == nil {
		return phone
	}
	return strings.Join(m[1:], " ")
}

func Truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length]) + "..."
}

var (
	slugInvalid   = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugSeparator = regexp.MustCompile(`[\s_-]+`)
)

// Slugify lower-cases s, folds accents ("Café" → "cafe") and joins words
// with dashes.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	slug := strings.ToLower(folded)
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugSeparator.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Initials takes the first letter of every space separated word.
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, " ") {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}

// ColorFromString derives a stable "#RRGGBB" avatar colour from s.
func ColorFromString(s string) string {
	var hash int32
	for _, c := range utf16.Encode([]rune(s)) {
		hash = int32(c) + ((hash << 5) - hash)
	}
	return fmt.Sprintf("#%06X", uint32(hash)&0x00FFFFFF)
}
