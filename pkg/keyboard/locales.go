package keyboard

import "sort"

// DefaultLocaleRowWidth is the grid width for locale pickers.
const DefaultLocaleRowWidth = 2

// builtinLocales maps locale codes to flag + native-name labels.
var builtinLocales = map[string]string{
	"be_BY": "🇧🇾 Беларуская",
	"de_DE": "🇩🇪 Deutsch",
	"zh_CN": "🇨🇳 中文",
	"en_US": "🇬🇧 English",
	"fr_FR": "🇫🇷 Français",
	"id_ID": "🇮🇩 Bahasa Indonesia",
	"it_IT": "🇮🇹 Italiano",
	"ko_KR": "🇰🇷 한국어",
	"tr_TR": "🇹🇷 Türkçe",
	"ru_RU": "🇷🇺 Русский",
	"es_ES": "🇪🇸 Español",
	"uk_UA": "🇺🇦 Українська",
	"uz_UZ": "🇺🇿 Oʻzbekcha",
}

// Locales returns the builtin locale codes, sorted.
func Locales() []string {
	codes := make([]string, 0, len(builtinLocales))
	for code := range builtinLocales {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// AddLocale registers (or overrides) a locale label on this keyboard.
// Custom locales take precedence over the builtin table.
func (k *InlineKeyboard) AddLocale(code, label string) {
	if k.customLocales == nil {
		k.customLocales = map[string]string{}
	}
	k.customLocales[code] = label
}

func (k *InlineKeyboard) localeLabel(code string) (string, bool) {
	if label, ok := k.customLocales[code]; ok {
		return label, true
	}
	label, ok := builtinLocales[code]
	return label, ok
}

// Languages appends a locale-picker grid. The pattern must contain exactly
// one {locale} placeholder; every requested code must be builtin or
// registered via AddLocale. rowWidth below 1 uses DefaultLocaleRowWidth.
func (k *InlineKeyboard) Languages(pattern string, locales []string, rowWidth int) error {
	tpl, err := NewLocaleTemplate(pattern)
	if err != nil {
		return err
	}
	if len(locales) == 0 {
		return &LocaleError{Param: "locales", Value: locales, Reason: "must not be empty"}
	}
	if rowWidth < 1 {
		rowWidth = DefaultLocaleRowWidth
	}

	btns := make([]Button, 0, len(locales))
	for _, code := range locales {
		label, ok := k.localeLabel(code)
		if !ok {
			return &LocaleError{Param: "locales", Value: code, Reason: "unknown locale"}
		}
		btns = append(btns, Btn(label, tpl.RenderString(code)))
	}
	k.rows = append(k.rows, splitRows(rowWidth, btns)...)
	return nil
}
