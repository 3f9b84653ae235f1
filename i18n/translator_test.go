package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("conflict.unknown_name", map[string]string{"name": "x"}); msg != "nothing is named x" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("conflict.unknown_name", map[string]string{"name": "x"}); msg != "x という名前はありません" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeAndLanguage(t *testing.T) {
	if msg := T("no.such.code", nil); msg != "no.such.code" {
		t.Fatalf("unknown codes must render as themselves, got %q", msg)
	}
	SetLanguage("xx")
	defer SetLanguage("en")
	if msg := T("exception.unimplemented", nil); msg != "this is not implemented yet" {
		t.Fatalf("unknown language must fall back to en, got %q", msg)
	}
}

func TestTable_Substitution(t *testing.T) {
	tb := Table{"greet": "{a} and {ab}"}
	if got := tb.Message("greet", map[string]string{"a": "1", "ab": "2"}); got != "1 and 2" {
		t.Fatalf("substitution: %q", got)
	}
}

func TestLoadYAML_RegistersCatalogs(t *testing.T) {
	data := []byte(`language: fr
messages:
  conflict.unknown_name: "rien ne s'appelle {name}"
---
language: ja
messages:
  step.start: "{node} 開始"
`)
	catalogs, err := LoadYAML(data)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if len(catalogs) != 2 || catalogs[0].Language != "fr" {
		t.Fatalf("catalogs: %+v", catalogs)
	}
	if err := RegisterYAML(data); err != nil {
		t.Fatalf("RegisterYAML: %v", err)
	}
	fr := Dictionary("fr")
	if got := fr.Message("conflict.unknown_name", map[string]string{"name": "x"}); got != "rien ne s'appelle x" {
		t.Fatalf("fr: %q", got)
	}
	if got := fr.Message("exception.unimplemented", nil); got != "this is not implemented yet" {
		t.Fatalf("fr fallback: %q", got)
	}
	// merged into ja without losing built-in entries
	ja := Dictionary("ja")
	if got := ja.Message("step.start", map[string]string{"node": "Block"}); got != "Block 開始" {
		t.Fatalf("ja override: %q", got)
	}
	if got := ja.Message("exception.unimplemented", nil); got != "まだ実装されていません" {
		t.Fatalf("ja built-in lost: %q", got)
	}
	// restore the built-in ja step.start
	Register("ja", Table{"step.start": japanese["step.start"]})
}

func TestLoadYAML_RequiresLanguage(t *testing.T) {
	if _, err := LoadYAML([]byte("messages:\n  a: b\n")); err == nil {
		t.Fatalf("expected an error for a catalog without language")
	}
}
