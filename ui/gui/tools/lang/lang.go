package lang

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed dict/*.json
var dicts embed.FS

type LangType int

const (
	EN LangType = iota
	RU
)

func LangFromString(s string) LangType {
	if s == "ru" {
		return RU
	}
	return EN
}

type GUILangWorker struct {
	lang LangType
	dict map[string]string
}

// create object LangWorker with language l
func NewGUILangWorker(l LangType) (*GUILangWorker, error) {
	lw := &GUILangWorker{}
	if err := lw.SetLang(l); err != nil {
		return nil, err
	}
	return lw, nil
}

func (lw *GUILangWorker) GetLang() LangType {
	return lw.lang
}

func (lw *GUILangWorker) SetLang(l LangType) error {
	data, err := dicts.ReadFile("dict/" + langTypeToJsonName(l))
	if err != nil {
		return err
	}
	dict := make(map[string]string)
	if err := json.Unmarshal(data, &dict); err != nil {
		return fmt.Errorf("error decode dictionary: %w", err)
	}
	lw.lang, lw.dict = l, dict
	return nil
}

func (lw *GUILangWorker) T(key string) string {
	if v, ok := lw.dict[key]; ok {
		return v
	}
	return key // if key is not found
}

// Tf is T with fmt verbs in the translation.
func (lw *GUILangWorker) Tf(key string, args ...any) string {
	return fmt.Sprintf(lw.T(key), args...)
}

func langTypeToJsonName(l LangType) string {
	switch l {
	case RU:
		return "ru.json"
	default:
		return "en.json"
	}
}
