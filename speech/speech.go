// Package speech resolves localized speech cues shown in character bubbles.
package speech

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Table is the cue set of one locale. A cue key maps to one or more lines;
// Lookup picks one of them.
type Table struct {
	Locale language.Tag
	Cues   map[string][]string

	// Pick chooses a line index in [0, n). Defaults to a random choice.
	Pick func(n int) int
}

// Key joins a cue key with its numeric parameters: ENEMY_SKILL, 1, 2 is
// ENEMY_SKILL_1_2.
func Key(key string, params ...int) string {
	if len(params) == 0 {
		return key
	}
	var b strings.Builder
	b.WriteString(key)
	for _, p := range params {
		b.WriteByte('_')
		b.WriteString(strconv.Itoa(p))
	}
	return b.String()
}

// Lookup resolves key with params. Unknown keys report false.
func (t *Table) Lookup(key string, params ...int) (string, bool) {
	if t == nil || key == "" {
		return "", false
	}
	lines := t.Cues[Key(key, params...)]
	if len(lines) == 0 {
		return "", false
	}
	if len(lines) == 1 {
		return lines[0], true
	}
	pick := t.Pick
	if pick == nil {
		pick = rand.IntN
	}
	i := pick(len(lines))
	if i < 0 || i >= len(lines) {
		i = 0
	}
	return lines[i], true
}

// Catalog holds the tables of every shipped locale.
type Catalog struct {
	tags    []language.Tag
	tables  []*Table
	matcher language.Matcher
}

type catalogSpec struct {
	Default string                         `yaml:"default"`
	Locales map[string]map[string][]string `yaml:"locales"`
}

// Parse decodes a YAML speech catalog:
//
//	default: en
//	locales:
//	  en:
//	    ENEMY_INIT_0: ["Here they come!"]
func Parse(data []byte) (*Catalog, error) {
	var spec catalogSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("speech: unmarshal catalog: %w", err)
	}
	if len(spec.Locales) == 0 {
		return nil, fmt.Errorf("speech: catalog has no locales")
	}

	names := make([]string, 0, len(spec.Locales))
	for name := range spec.Locales {
		names = append(names, name)
	}
	sort.Strings(names)
	// The default locale goes first so the matcher falls back to it.
	if spec.Default != "" {
		for i, name := range names {
			if name == spec.Default {
				names[0], names[i] = names[i], names[0]
				break
			}
		}
	}

	c := &Catalog{}
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("speech: locale %q: %w", name, err)
		}
		c.tags = append(c.tags, tag)
		c.tables = append(c.tables, &Table{Locale: tag, Cues: spec.Locales[name]})
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Table returns the table best matching locale, falling back to the default.
func (c *Catalog) Table(locale string) *Table {
	if c == nil || len(c.tables) == 0 {
		return nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return c.tables[0]
	}
	_, index, confidence := c.matcher.Match(tag)
	if confidence == language.No || index < 0 || index >= len(c.tables) {
		return c.tables[0]
	}
	return c.tables[index]
}

// Locales lists the catalog locales, default first.
func (c *Catalog) Locales() []language.Tag {
	if c == nil {
		return nil
	}
	return append([]language.Tag(nil), c.tags...)
}
