package handler

import (
	"embed"
	"html/template"
	"net/http"

	"gogemini-wallpapers/internal/apikey"
	"gogemini-wallpapers/internal/logger"
	"gogemini-wallpapers/internal/studio"
	"gogemini-wallpapers/internal/wallpaper"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type labels struct {
	Title, Subtitle, Placeholder, Generate      string
	EmptyTitle, EmptyHint, LoaderTitle          string
	Download, Remix, Export, Close              string
	KeyTitle, KeyPlaceholder, KeySave, KeyClear string
	KeyValidate, KeyStored, KeyHost, KeyMissing string
}

var pageLabels = map[wallpaper.Locale]labels{
	wallpaper.LocaleKO: {
		Title:          "AI 배경화면 생성기",
		Subtitle:       "당신만의 특별한 휴대폰 배경화면을 만들어보세요",
		Placeholder:    "예: '별이 빛나는 밤하늘 아래 숲'",
		Generate:       "생성",
		EmptyTitle:     "어떤 분위기의 배경화면을 원하시나요?",
		EmptyHint:      "위 입력창에 원하는 내용을 자유롭게 적어보세요.",
		LoaderTitle:    "당신만의 배경화면을 만들고 있어요.",
		Download:       "다운로드",
		Remix:          "리믹스",
		Export:         "클라우드 저장",
		Close:          "닫기",
		KeyTitle:       "Gemini API 키",
		KeyPlaceholder: "API 키를 입력하세요",
		KeySave:        "저장",
		KeyClear:       "삭제",
		KeyValidate:    "확인",
		KeyStored:      "저장된 키 사용 중",
		KeyHost:        "환경에서 제공된 키 사용 중",
		KeyMissing:     "API 키가 필요합니다",
	},
	wallpaper.LocaleEN: {
		Title:          "AI Wallpaper Generator",
		Subtitle:       "Create a phone wallpaper that is all yours",
		Placeholder:    "e.g. 'a forest under a starry night sky'",
		Generate:       "Generate",
		EmptyTitle:     "What kind of wallpaper would you like?",
		EmptyHint:      "Describe it freely in the box above.",
		LoaderTitle:    "Creating your wallpaper.",
		Download:       "Download",
		Remix:          "Remix",
		Export:         "Save to cloud",
		Close:          "Close",
		KeyTitle:       "Gemini API key",
		KeyPlaceholder: "Enter your API key",
		KeySave:        "Save",
		KeyClear:       "Remove",
		KeyValidate:    "Check",
		KeyStored:      "Using saved key",
		KeyHost:        "Using key provided by the host",
		KeyMissing:     "An API key is required",
	},
}

type pageData struct {
	Locale        wallpaper.Locale
	L             labels
	State         studio.Snapshot
	Key           apikey.Status
	Captions      []string
	ExportEnabled bool
	Version       string
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	data := pageData{
		Locale:        locale,
		L:             pageLabels[locale],
		State:         h.services.Studio.Snapshot(locale),
		Captions:      wallpaper.LoaderCaptions(locale),
		ExportEnabled: h.services.Exporter != nil,
		Version:       h.opts.Version,
	}
	if st, err := h.services.Keys.Status(r.Context()); err == nil {
		data.Key = st
	} else {
		logger.FromRequest(r).Err(err).Msg("error reading api key status")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.FromRequest(r).Err(err).Msg("error rendering page")
	}
}
