package wallpaper

import (
	"errors"
	"strings"
)

type Locale string

const (
	LocaleKO Locale = "ko"
	LocaleEN Locale = "en"
)

// ParseLocale picks the first supported language tag, defaulting to Korean.
// It accepts both a bare tag and an Accept-Language header value.
func ParseLocale(s string) Locale {
	if l, ok := LookupLocale(s); ok {
		return l
	}
	return LocaleKO
}

// LookupLocale is ParseLocale without the fallback.
func LookupLocale(s string) (Locale, bool) {
	for _, part := range strings.Split(s, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		lang, _, _ := strings.Cut(strings.ToLower(tag), "-")
		switch Locale(lang) {
		case LocaleKO, LocaleEN:
			return Locale(lang), true
		}
	}
	return "", false
}

type messageKey int

const (
	msgUnknown messageKey = iota
	msgEmptyPrompt
	msgBusy
	msgNoAPIKey
	msgInvalidAPIKey
	msgImageNotFound
	msgNoImages
)

var catalog = map[Locale]map[messageKey]string{
	LocaleKO: {
		msgUnknown:       "알 수 없는 오류가 발생했습니다.",
		msgEmptyPrompt:   "만들고 싶은 배경화면을 입력해 주세요.",
		msgBusy:          "이미 배경화면을 만들고 있어요. 잠시만 기다려 주세요.",
		msgNoAPIKey:      "API 키를 찾을 수 없습니다. 키를 직접 입력하거나 환경에서 선택해 주세요.",
		msgInvalidAPIKey: "API 키가 유효하지 않습니다. 키를 다시 선택해 주세요.",
		msgImageNotFound: "이미지를 찾을 수 없습니다.",
		msgNoImages:      "이미지가 생성되지 않았습니다. 다른 프롬프트로 시도해 보세요.",
	},
	LocaleEN: {
		msgUnknown:       "An unknown error occurred.",
		msgEmptyPrompt:   "Describe the wallpaper you want first.",
		msgBusy:          "A wallpaper is already being generated. Please wait.",
		msgNoAPIKey:      "API key not found. Please provide a key manually or select one.",
		msgInvalidAPIKey: "The API key is not valid. Please select a key again.",
		msgImageNotFound: "Image not found.",
		msgNoImages:      "No images were generated. Try a different prompt.",
	},
}

var loaderCaptions = map[Locale][]string{
	LocaleKO: {
		"AI가 붓을 들었습니다...",
		"색상을 조합하고 있어요...",
		"창의력을 발휘하는 중...",
		"거의 다 완성되었어요!",
	},
	LocaleEN: {
		"The AI picked up its brush...",
		"Mixing colors...",
		"Getting creative...",
		"Almost done!",
	},
}

// UserMessage maps err to the text shown under the prompt box. Errors
// without a catalog entry show their own text.
func UserMessage(err error, locale Locale) string {
	msgs, ok := catalog[locale]
	if !ok {
		msgs = catalog[LocaleKO]
	}
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrEmptyPrompt):
		return msgs[msgEmptyPrompt]
	case errors.Is(err, ErrBusy):
		return msgs[msgBusy]
	case errors.Is(err, ErrNoAPIKey):
		return msgs[msgNoAPIKey]
	case IsInvalidKeyError(err):
		return msgs[msgInvalidAPIKey]
	case errors.Is(err, ErrImageNotFound):
		return msgs[msgImageNotFound]
	case errors.Is(err, ErrNoImages):
		return msgs[msgNoImages]
	}

	if text := strings.TrimSpace(err.Error()); text != "" {
		return text
	}
	return msgs[msgUnknown]
}

// LoaderCaptions returns the rotating status lines shown while generating.
func LoaderCaptions(locale Locale) []string {
	if c, ok := loaderCaptions[locale]; ok {
		return c
	}
	return loaderCaptions[LocaleKO]
}
