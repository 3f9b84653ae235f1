package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for conflict, exception and step
// codes. data provides values substituted for "{key}" placeholders (for
// example "name" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// Table maps codes to message templates.
type Table map[string]string

// Message renders the template for code, or returns code when the table has
// none.
func (t Table) Message(code string, data map[string]string) string {
	tpl, ok := t[code]
	if !ok {
		return code
	}
	return substitute(tpl, data)
}

func substitute(tpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tpl, "{") {
		return tpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

var (
	mu           sync.RWMutex
	dictionaries = map[string]Table{"en": english, "ja": japanese}
)

// dictTranslator is the built-in dictionary-based Translator. Codes missing
// from its language fall back to English.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	mu.RLock()
	table, fallback := dictionaries[t.lang], dictionaries["en"]
	mu.RUnlock()
	if tpl, ok := table[code]; ok {
		return substitute(tpl, data)
	}
	return fallback.Message(code, data)
}

// Dictionary returns the built-in Translator for lang.
func Dictionary(lang string) Translator { return dictTranslator{lang: lang} }

// Register merges table into the dictionary of lang, creating it if needed.
func Register(lang string, table Table) {
	mu.Lock()
	defer mu.Unlock()
	merged := Table{}
	for k, v := range dictionaries[lang] {
		merged[k] = v
	}
	for k, v := range table {
		merged[k] = v
	}
	dictionaries[lang] = merged
}

// Languages lists the languages with a dictionary.
func Languages() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(dictionaries))
	for l := range dictionaries {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

var (
	currentMu         sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language. Unknown languages
// select English.
func SetLanguage(lang string) {
	mu.RLock()
	_, ok := dictionaries[lang]
	mu.RUnlock()
	if !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	currentMu.Lock()
	currentTranslator = tr
	currentMu.Unlock()
}

// Current returns the Translator used by T.
func Current() Translator {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return currentTranslator
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return Current().Message(code, data) }
