package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// replacer transliterates French accented characters and Arabic letters to
// ASCII approximations before the slug is reduced to [a-z0-9-].
var replacer = strings.NewReplacer(
	// French accents
	"à", "a", "â", "a", "ä", "a", "æ", "ae",
	"ç", "c",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o", "œ", "oe",
	"ù", "u", "û", "u", "ü", "u",
	"ÿ", "y",
	// Arabic letters
	"ا", "a", "أ", "a", "إ", "a", "آ", "a", "ى", "a", "ة", "a",
	"ب", "b", "ت", "t", "ث", "th", "ج", "j", "ح", "h", "خ", "kh",
	"د", "d", "ذ", "dh", "ر", "r", "ز", "z", "س", "s", "ش", "sh",
	"ص", "s", "ض", "d", "ط", "t", "ظ", "z", "ع", "a", "غ", "gh",
	"ف", "f", "ق", "q", "ك", "k", "ل", "l", "م", "m", "ن", "n",
	"ه", "h", "و", "w", "ي", "y", "ؤ", "w", "ئ", "y", "ء", "",
)

// Generate creates a URL-friendly slug from the given name.
// French accents and Arabic letters are transliterated to ASCII equivalents.
//
// Examples:
//   - "Éponge à récurer" → "eponge-a-recurer"
//   - "صابون" → "sabwn"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = replacer.Replace(slug)

	// Replace any remaining non-alphanumeric characters with hyphens
	slug = slugRegexp.ReplaceAllString(slug, "-")

	// Trim leading and trailing hyphens
	slug = strings.Trim(slug, "-")

	// Collapse consecutive hyphens into single hyphens
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return slug
}
