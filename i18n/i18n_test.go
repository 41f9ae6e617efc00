package i18n

import (
	"net/http/httptest"
	"testing"
)

func TestMain(m *testing.M) {
	if err := LoadTranslations("."); err != nil {
		panic(err)
	}
	m.Run()
}

func TestTranslationLookup(t *testing.T) {
	if got := T("fr", "Connect"); got != "Se connecter" {
		t.Errorf("Expected French translation, got '%s'", got)
	}
	if got := T("de", "Connect"); got != T("en", "Connect") {
		t.Errorf("Expected fallback to English, got '%s'", got)
	}
	if got := T("en", "NoSuchKey"); got != "NoSuchKey" {
		t.Errorf("Expected the key itself for unknown entries, got '%s'", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"fr-CH, fr;q=0.9, en;q=0.8", "fr"},
		{"en-US,en;q=0.5", "en"},
		{"de-DE,de;q=0.9", DefaultLang},
		{"", DefaultLang},
	}
	for _, c := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		if c.header != "" {
			r.Header.Set("Accept-Language", c.header)
		}
		if got := DetectLanguage(r); got != c.want {
			t.Errorf("Header %q: expected %q, got %q", c.header, c.want, got)
		}
	}
}
