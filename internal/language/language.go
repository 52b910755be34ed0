package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // English name
	native  string   // Label written into track names
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", "Español", []string{"spanish", "español"}},
	{"ja", "jpn", "", "Japanese", "日本語", []string{"japanese"}},
	{"fr", "fra", "fre", "French", "Français", []string{"french"}},
	{"de", "deu", "ger", "German", "Deutsch", []string{"german"}},
	{"it", "ita", "", "Italian", "Italiano", []string{"italian"}},
	{"pt", "por", "", "Portuguese", "Português", []string{"portuguese"}},
	{"ko", "kor", "", "Korean", "한국어", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", "中文", []string{"chinese"}},
	{"ru", "rus", "", "Russian", "Русский", []string{"russian"}},
}

// Undetermined is the ISO 639-2 code mkvmerge uses for unknown languages.
const Undetermined = "und"

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO3 converts any recognized language code to ISO 639-2 (3-letter).
// Returns "und" for unrecognized 2-letter codes, passes through 3-letter codes.
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return Undetermined
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if len(code) == 3 {
		return code
	}
	return Undetermined
}

// DisplayName returns the English name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// NativeName returns the label a player should show for the language, written
// in that language ("日本語", "Español"). Codes outside the table fall back to
// CLDR self-names; an empty string means no label is known.
func NativeName(code string) string {
	if e := lookup(code); e != nil {
		return e.native
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == Undetermined {
		return ""
	}
	base, err := xlang.ParseBase(code)
	if err != nil {
		return ""
	}
	tag, err := xlang.Compose(base)
	if err != nil {
		return ""
	}
	name := display.Self.Name(tag)
	if name == "" {
		return ""
	}
	return cases.Title(tag).String(name)
}

// IsKnown reports whether code resolves to a table entry.
func IsKnown(code string) bool {
	return lookup(code) != nil
}

// NormalizeList deduplicates and normalizes a list of language codes to ISO 639-2.
func NormalizeList(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if strings.TrimSpace(code) == "" {
			continue
		}
		code3 := ToISO3(code)
		if code3 == Undetermined {
			continue
		}
		if _, ok := seen[code3]; ok {
			continue
		}
		seen[code3] = struct{}{}
		normalized = append(normalized, code3)
	}
	return normalized
}
