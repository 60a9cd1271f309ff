// Package i18n provides the in-process message catalog backing the
// Translator port. Catalogs are compiled in; there is no runtime loading.
package i18n

// DefaultLang is used whenever a request carries no language or an
// unsupported one.
const DefaultLang = "en"

var catalogs = map[string]map[string]string{
	"en": {
		// Leading space is part of the message: it is appended directly
		// to an existing description.
		"adjust.intensified": " (INTENSIFIED: Schedule compressed!)",

		"mail.login.subject":    "Sign in to PaceMaker",
		"mail.login.body":       "Click the link below to sign in. It expires shortly and works only once.",
		"mail.progress.subject": "Your PaceMaker progress update",
	},
	"ja": {
		"adjust.intensified": " 【強化】スケジュール圧縮！",

		"mail.login.subject":    "PaceMakerにサインイン",
		"mail.login.body":       "以下のリンクからサインインしてください。リンクは短時間で失効し、一度しか使えません。",
		"mail.progress.subject": "PaceMaker進捗レポート",
	},
}

// Translator resolves localized strings from the compiled-in catalogs.
type Translator struct{}

// New creates a new translator.
func New() *Translator {
	return &Translator{}
}

// Translate returns the message for key in lang, falling back to the default
// language, then to the key itself so a missing entry is visible rather than
// silent.
func (t *Translator) Translate(lang, key string) string {
	if catalog, ok := catalogs[lang]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLang][key]; ok {
		return msg
	}
	return key
}

// Supported reports whether a language has its own catalog.
func Supported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}
