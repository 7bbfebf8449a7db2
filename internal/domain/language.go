package domain

import "fmt"

// Language identifies one of the supported languages by its short code.
type Language string

// Supported language codes.
const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
	LanguageSpanish Language = "es"
	LanguageBengali Language = "bn"
)

// SourceAuto is the pseudo source code that asks the resolver to detect
// the source language itself.
const SourceAuto = "auto"

// ErrUnsupportedLanguage is returned when a language code is not one of
// the supported languages.
var ErrUnsupportedLanguage = fmt.Errorf("%w: unsupported language", ErrValidation)

// Languages lists every supported language in output order. The order is
// fixed because translation responses enumerate all languages.
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageFrench, LanguageSpanish, LanguageBengali}
}

// DictionaryLanguages lists the languages that carry their own bilingual
// dictionary (target language <-> English gloss).
func DictionaryLanguages() []Language {
	return []Language{LanguageFrench, LanguageSpanish}
}

// ParseLanguage validates a language code.
func ParseLanguage(code string) (Language, error) {
	switch Language(code) {
	case LanguageEnglish, LanguageFrench, LanguageSpanish, LanguageBengali:
		return Language(code), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
}

// ParseDictionaryLanguage validates a code that must refer to a language
// with its own dictionary (used by progress and practice endpoints).
func ParseDictionaryLanguage(code string) (Language, error) {
	switch Language(code) {
	case LanguageFrench, LanguageSpanish:
		return Language(code), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
}

// LangTag returns the fixed locale tag for a language, used both in
// translation responses and as the TTS voice hint for practice items.
func (l Language) LangTag() string {
	switch l {
	case LanguageFrench:
		return "fr-FR"
	case LanguageSpanish:
		return "es-ES"
	case LanguageBengali:
		return "bn-BD"
	default:
		return "en-US"
	}
}

// Name returns the English display name of the language.
func (l Language) Name() string {
	switch l {
	case LanguageFrench:
		return "French"
	case LanguageSpanish:
		return "Spanish"
	case LanguageBengali:
		return "Bengali"
	default:
		return "English"
	}
}

// NativeName returns the language's own name for itself.
func (l Language) NativeName() string {
	switch l {
	case LanguageFrench:
		return "Français"
	case LanguageSpanish:
		return "Español"
	case LanguageBengali:
		return "বাংলা"
	default:
		return "English"
	}
}

// BengaliName returns the Bengali name of the language, used in bilingual
// practice prompts.
func (l Language) BengaliName() string {
	switch l {
	case LanguageFrench:
		return "ফরাসি"
	case LanguageSpanish:
		return "স্প্যানিশ"
	case LanguageBengali:
		return "বাংলা"
	default:
		return "ইংরেজি"
	}
}
