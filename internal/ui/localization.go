package ui

import (
	"github.com/ytget/ytdownloader/internal/controller"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyURLLabel          = "url_label"
	KeyURLPlaceholder    = "url_placeholder"
	KeyPaste             = "paste"
	KeyDirLabel          = "dir_label"
	KeyDirPlaceholder    = "dir_placeholder"
	KeyBrowse            = "browse"
	KeyResolutionLabel   = "resolution_label"
	KeyProgressLabel     = "progress_label"
	KeyDownload          = "download"
	KeyOpenFolder        = "open_folder"
	KeyLanguage          = "language"
	KeyPreparing         = "preparing"
	KeyDownloadingFormat = "downloading_format"
	KeyFinished          = "finished"
	KeyFailedPrefix      = "failed_prefix"
	KeyErrorOpeningFile  = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangDefault,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. Unknown codes are ignored.
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem {
		lang = LangDefault
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts[LangDefault]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// ControllerTexts returns the progress and error labels in the current language
func (l *Localization) ControllerTexts() controller.Texts {
	return controller.Texts{
		Preparing:      l.GetText(KeyPreparing),
		ProgressFormat: l.GetText(KeyDownloadingFormat),
		Finished:       l.GetText(KeyFinished),
		FailedPrefix:   l.GetText(KeyFailedPrefix),
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YTdownloader",
		KeyURLLabel:          "Enter URL:",
		KeyURLPlaceholder:    "Video URL",
		KeyPaste:             "Paste",
		KeyDirLabel:          "Enter download path:",
		KeyDirPlaceholder:    "Download path",
		KeyBrowse:            "Browse",
		KeyResolutionLabel:   "Choose resolution:",
		KeyProgressLabel:     "Download progress:",
		KeyDownload:          "Download",
		KeyOpenFolder:        "Open folder",
		KeyLanguage:          "Language",
		KeyPreparing:         "Preparing...",
		KeyDownloadingFormat: "Downloading... %d%%",
		KeyFinished:          "Downloading finished!",
		KeyFailedPrefix:      "Download failed:\n",
		KeyErrorOpeningFile:  "Error opening file",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YTdownloader",
		KeyURLLabel:          "Введите URL:",
		KeyURLPlaceholder:    "URL видео",
		KeyPaste:             "Вставить",
		KeyDirLabel:          "Папка для загрузки:",
		KeyDirPlaceholder:    "Путь загрузки",
		KeyBrowse:            "Обзор",
		KeyResolutionLabel:   "Выберите разрешение:",
		KeyProgressLabel:     "Прогресс загрузки:",
		KeyDownload:          "Скачать",
		KeyOpenFolder:        "Открыть папку",
		KeyLanguage:          "Язык",
		KeyPreparing:         "Подготовка...",
		KeyDownloadingFormat: "Загрузка... %d%%",
		KeyFinished:          "Загрузка завершена!",
		KeyFailedPrefix:      "Ошибка загрузки:\n",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YTdownloader",
		KeyURLLabel:          "Digite a URL:",
		KeyURLPlaceholder:    "URL do vídeo",
		KeyPaste:             "Colar",
		KeyDirLabel:          "Pasta de download:",
		KeyDirPlaceholder:    "Caminho de download",
		KeyBrowse:            "Navegar",
		KeyResolutionLabel:   "Escolha a resolução:",
		KeyProgressLabel:     "Progresso do download:",
		KeyDownload:          "Baixar",
		KeyOpenFolder:        "Abrir pasta",
		KeyLanguage:          "Idioma",
		KeyPreparing:         "Preparando...",
		KeyDownloadingFormat: "Baixando... %d%%",
		KeyFinished:          "Download concluído!",
		KeyFailedPrefix:      "Falha no download:\n",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
	}
}
