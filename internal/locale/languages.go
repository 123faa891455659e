// Package locale holds the fixed table of game language names and the
// locale tags the spreadsheet translate formula expects.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnknownLanguage is returned by [Mapping.Lookup] for names outside the table.
var ErrUnknownLanguage = errors.New("unknown language")

// CollationTag is the locale used to order dump keys.
var CollationTag = language.AmericanEnglish

// Language is one entry of the mapping: the lowercase column name used by the
// game and the locale tag used by GOOGLETRANSLATE.
type Language struct {
	Name string
	Tag  string
}

// Mapping is a read-only, ordered language table. Build it once with
// [NewMapping] or use [Default].
type Mapping struct {
	entries []Language
	byName  map[string]Language
}

var defaultMapping = NewMapping([]Language{
	{"english", "en-US"},
	{"german", "de-DE"},
	{"spanish", "es-ES"},
	{"french", "fr-FR"},
	{"italian", "it-IT"},
	{"japanese", "ja-JP"},
	{"koreana", "ko-KR"},
	{"polish", "pl-PL"},
	{"brazilian", "pt-BR"},
	{"russian", "ru-RU"},
	{"turkish", "tr-TR"},
	{"schinese", "zh-CN"},
	{"tchinese", "zh-TW"},
})

// Default returns the process-wide language table shipped with the game.
func Default() *Mapping { return defaultMapping }

// NewMapping copies entries into a new table. Names are lowercased; a later
// duplicate name replaces the earlier tag but keeps its position.
func NewMapping(entries []Language) *Mapping {
	m := &Mapping{byName: make(map[string]Language, len(entries))}
	for _, e := range entries {
		e.Name = strings.ToLower(e.Name)
		if _, dup := m.byName[e.Name]; dup {
			for i := range m.entries {
				if m.entries[i].Name == e.Name {
					m.entries[i] = e
				}
			}
		} else {
			m.entries = append(m.entries, e)
		}
		m.byName[e.Name] = e
	}
	return m
}

// Lookup resolves name case-insensitively.
func (m *Mapping) Lookup(name string) (Language, error) {
	l, ok := m.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Language{}, fmt.Errorf("%w %q", ErrUnknownLanguage, name)
	}
	return l, nil
}

// Has reports whether name is in the table (case-insensitive).
func (m *Mapping) Has(name string) bool {
	_, err := m.Lookup(name)
	return err == nil
}

// Names returns the language names in table order.
func (m *Mapping) Names() []string {
	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.Name
	}
	return names
}

// Languages returns a copy of the table entries in order.
func (m *Mapping) Languages() []Language {
	return append([]Language(nil), m.entries...)
}

// ParseTag parses the entry's locale tag into a BCP 47 tag.
func (l Language) ParseTag() (language.Tag, error) {
	return language.Parse(l.Tag)
}
