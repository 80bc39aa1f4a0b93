package ui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalization_SetLanguage(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		expected string
	}{
		{"english", "en", "en"},
		{"russian", "ru", "ru"},
		{"portuguese", "pt", "pt"},
		{"system falls back to default", LangSystem, LangDefault},
		{"unknown is ignored", "xx", LangDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocalization()
			l.SetLanguage(tt.lang)
			assert.Equal(t, tt.expected, l.GetCurrentLanguage())
		})
	}
}

func TestLocalization_GetText(t *testing.T) {
	l := NewLocalization()
	assert.Equal(t, "Download", l.GetText(KeyDownload))
	assert.Equal(t, "missing_key", l.GetText("missing_key"))

	l.SetLanguage("ru")
	assert.Equal(t, "Скачать", l.GetText(KeyDownload))
}

func TestLocalization_EveryLanguageHasEveryKey(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts[LangDefault] {
		for lang := range l.GetAvailableLanguages() {
			_, ok := l.texts[lang][key]
			assert.True(t, ok, "%s missing %s", lang, key)
		}
	}
}

func TestLocalization_ControllerTexts(t *testing.T) {
	for lang := range NewLocalization().GetAvailableLanguages() {
		t.Run(lang, func(t *testing.T) {
			l := NewLocalization()
			l.SetLanguage(lang)
			texts := l.ControllerTexts()

			assert.NotEmpty(t, texts.Preparing)
			assert.NotEmpty(t, texts.Finished)
			assert.NotContains(t, fmt.Sprintf(texts.ProgressFormat, 42), "%!")
			assert.Contains(t, fmt.Sprintf(texts.ProgressFormat, 42), "42%")
		})
	}
}
