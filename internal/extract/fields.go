package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

type replacement struct {
	pattern *regexp.Regexp
	with    string
}

// FieldResolver derives field keys from header text.
type FieldResolver struct {
	settings     sheetload.ParseSettings
	replacements []replacement
	logger       sheetload.Logger
}

// NewFieldResolver compiles the configured replacement rules.
func NewFieldResolver(settings sheetload.ParseSettings, logger sheetload.Logger) *FieldResolver {
	if logger == nil {
		panic("logger cannot be nil")
	}

	r := &FieldResolver{settings: settings, logger: logger}
	for _, rule := range settings.FieldNameReplacements {
		if rule.Match == "" {
			continue
		}
		r.replacements = append(r.replacements, replacement{
			pattern: regexp.MustCompile("(?i)" + regexp.QuoteMeta(rule.Match)),
			with:    rule.Replacement,
		})
	}
	return r
}

func syntheticName(position int) string {
	return "Column" + strconv.Itoa(position)
}

// Resolve builds the field for the header at a 1-based column position.
// The returned warning is empty unless the header produced no usable key.
func (r *FieldResolver) Resolve(header string, position int) (sheetload.Field, string) {
	if !r.settings.FirstRowIsHeader {
		name := syntheticName(position)
		return sheetload.Field{ColumnPosition: position, Name: name, Key: r.truncate(name)}, ""
	}

	key := header
	for _, rep := range r.replacements {
		key = rep.pattern.ReplaceAllLiteralString(key, rep.with)
	}
	if r.settings.StripFieldNameToAlphaAndNumeric {
		key = nonAlphanumeric.ReplaceAllString(key, "")
	} else {
		key = strings.TrimSpace(key)
	}

	field := sheetload.Field{ColumnPosition: position, Name: header, Key: key}

	if key == "" {
		field.Key = r.truncate(syntheticName(position))
		return field, fmt.Sprintf("Column name in position %d is empty or contains only special characters", position)
	}

	if truncated := r.truncate(key); truncated != key {
		r.logger.Verbose("Field name %q in position %d over %d characters, using %q",
			header, position, r.settings.FieldNameCharacterLimit, truncated)
		field.Key = truncated
	}

	return field, ""
}

func (r *FieldResolver) truncate(key string) string {
	return truncateRunes(key, r.settings.FieldNameCharacterLimit, r.settings.FieldNameOverLimitSplitFiftyFifty)
}

// truncateRunes shortens s to limit characters. With split it keeps the
// first ceil(limit/2) and the last limit-ceil(limit/2) characters.
func truncateRunes(s string, limit int, split bool) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	if !split {
		return string(runes[:limit])
	}
	head := (limit + 1) / 2
	tail := limit - head
	return string(runes[:head]) + string(runes[len(runes)-tail:])
}

// keySet records the keys taken within one worksheet, case-insensitively.
// A reserved key is never handed out, even with de-duplication off.
type keySet map[string]bool

func (s keySet) has(key string) bool {
	_, ok := s[strings.ToLower(key)]
	return ok
}

func (s keySet) reserved(key string) bool {
	return s[strings.ToLower(key)]
}

func (s keySet) add(key string) {
	if !s.has(key) {
		s[strings.ToLower(key)] = false
	}
}

func (s keySet) reserve(key string) {
	s[strings.ToLower(key)] = true
}

// Unique returns key, or key with an ordinal suffix when it is already taken.
// Suffixed keys are shortened to stay within the character limit.
func (r *FieldResolver) Unique(key string, taken keySet) string {
	if !taken.has(key) || (!r.settings.DeduplicateFieldNames && !taken.reserved(key)) {
		taken.add(key)
		return key
	}

	sep := "_"
	if r.settings.StripFieldNameToAlphaAndNumeric {
		sep = ""
	}
	for n := 2; ; n++ {
		suffix := sep + strconv.Itoa(n)
		base := ""
		if room := r.settings.FieldNameCharacterLimit - len(suffix); room > 0 {
			base = truncateRunes(key, room, false)
		}
		candidate := base + suffix
		if !taken.has(candidate) {
			taken.add(candidate)
			return candidate
		}
	}
}
