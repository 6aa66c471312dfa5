package models

// Lang is one of the two languages every public document is served in.
type Lang string

const (
	LangEN Lang = "en"
	LangAR Lang = "ar"
)

// Languages lists the supported languages in output order.
var Languages = []Lang{LangEN, LangAR}

// LocalizationKey identifies a translatable string in the localization store.
type LocalizationKey string

// Text is a resolved LocalizationKey. Both fields are always set, missing
// translations are the empty string.
type Text struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

// In returns the text for lang.
func (t Text) In(lang Lang) string {
	if lang == LangAR {
		return t.AR
	}
	return t.EN
}

// Localized holds one payload per language and serializes as {"en": .., "ar": ..}.
type Localized[T any] struct {
	EN T `json:"en"`
	AR T `json:"ar"`
}

// Localize builds a Localized value by calling build once per language.
func Localize[T any](build func(lang Lang) T) Localized[T] {
	return Localized[T]{
		EN: build(LangEN),
		AR: build(LangAR),
	}
}
