package lang

import (
	"encoding/json"
	"testing"
)

func TestDictionariesShareKeys(t *testing.T) {
	keys := func(l LangType) map[string]string {
		t.Helper()
		data, err := dicts.ReadFile("dict/" + langTypeToJsonName(l))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		m := map[string]string{}
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return m
	}
	en, ru := keys(EN), keys(RU)
	if len(en) != len(ru) {
		t.Fatalf("size mismatch: en %d ru %d", len(en), len(ru))
	}
	for k := range en {
		if _, ok := ru[k]; !ok {
			t.Fatalf("ru misses %q", k)
		}
	}
}

func TestTranslate(t *testing.T) {
	lw, err := NewGUILangWorker(LangFromString("en"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := lw.T("pause.resume"); got != "Resume" {
		t.Fatalf("got %q", got)
	}
	if got := lw.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("missing key: %q", got)
	}
	if got := lw.Tf("play.turn", "Player 1"); got != "Player 1 to move" {
		t.Fatalf("format: %q", got)
	}
	if err := lw.SetLang(RU); err != nil || lw.GetLang() != RU {
		t.Fatalf("switch: %v", err)
	}
}
