package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// \p{Zs} catches the full-width spaces common in the source markup.
	spaceRe   = regexp.MustCompile(`[\s\p{Zs}]+`)
	decimalRe = regexp.MustCompile(`[\d.]+`)
	digitsRe  = regexp.MustCompile(`\d+`)
	walkRe    = regexp.MustCompile(`(?:歩|徒歩)[\s\p{Zs}]*(\d+)[\s\p{Zs}]*分`)
)

// Spaces collapses every whitespace run to a single space and trims the ends.
func Spaces(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Price converts a price fragment to a comma-grouped yen string. Values
// quoted in 万 (ten-thousands) are scaled to yen with decimals truncated,
// plain yen amounts keep their leading digit run. Anything unparseable
// comes back as "0".
func Price(text string) string {
	t := strings.ReplaceAll(text, ",", "")
	if strings.Contains(t, "万") {
		if m := decimalRe.FindString(t); m != "" {
			if f, err := strconv.ParseFloat(m, 64); err == nil {
				return groupDigits(int64(f * 10000))
			}
		}
	}
	if m := digitsRe.FindString(t); m != "" {
		if n, err := strconv.ParseInt(m, 10, 64); err == nil {
			return groupDigits(n)
		}
	}
	return "0"
}

// Minutes pulls the walking time out of a 徒歩N分 (or 歩N分) phrase.
// The second return is false when the fragment has no walk phrase.
func Minutes(text string) (int, bool) {
	m := walkRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// PriceRangeLabel maps a monthly rent in yen onto one of ten fixed bucket
// labels. Non-positive rents land in the lowest bucket.
func PriceRangeLabel(rentYen int) string {
	if rentYen <= 0 {
		return "¥100~199K"
	}
	k := rentYen / 1000
	switch {
	case k < 200:
		return "¥100~199K"
	case k < 300:
		return "¥200~299K"
	case k < 400:
		return "¥300~399K"
	case k < 500:
		return "¥400~499K"
	case k < 600:
		return "¥500~599K"
	case k < 700:
		return "¥600~699K"
	case k < 800:
		return "¥700~799K"
	case k < 900:
		return "¥800~899K"
	case k < 1000:
		return "¥900~999K"
	default:
		return "¥1M~"
	}
}

// StationEN canonicalizes an English station name: spaces collapsed,
// title-cased, a trailing " Station" dropped, remaining spaces hyphenated.
func StationEN(name string) string {
	s := titleCase(Spaces(name))
	s = strings.TrimSuffix(s, " Station")
	return strings.ReplaceAll(s, " ", "-")
}

// titleCase upper-cases the first letter of every cased run and
// lower-cases the rest. Uncased characters act as word breaks.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		if isCased(r) {
			if prevCased {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevCased = true
		} else {
			b.WriteRune(r)
			prevCased = false
		}
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// TitleWords collapses spaces and title-cases a phrase without the
// station-specific suffix and hyphen handling.
func TitleWords(s string) string {
	return titleCase(Spaces(s))
}

var categoryEN = map[string]string{
	"マンション": "Apartment",
	"一戸建て":  "Detached house",
}

// CategoryEN maps a source-language building category onto its English
// name. Unlisted categories are left unmapped.
func CategoryEN(jp string) (string, bool) {
	en, ok := categoryEN[jp]
	return en, ok
}

// KindFromURL infers the transaction kind from the listing URL path. Rent
// markers win over purchase markers.
func KindFromURL(rawURL string) (string, bool) {
	if strings.Contains(rawURL, "chintai") {
		return "For Rent", true
	}
	if strings.Contains(rawURL, "/ms/chuko/") || strings.Contains(rawURL, "/ms/shinchiku/") {
		return "For Buy", true
	}
	return "", false
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
