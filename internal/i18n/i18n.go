// Package i18n provides internationalization support for the catalog service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{messages: messages}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Unknown locales and keys missing from a locale fall back to DefaultLocale;
// a key unknown everywhere is returned as is.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supported reports whether locale has a message table.
func (t *Translator) Supported(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale extracts the locale from the Accept-Language header of the request,
// e.g. "pt-BR,pt;q=0.9,en;q=0.8" yields "pt".
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	for _, part := range strings.Split(acceptLang, ",") {
		lang := strings.TrimSpace(strings.Split(part, ";")[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if GetTranslator().Supported(lang) {
			return lang
		}
	}
	return DefaultLocale
}

var messages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:     "Invalid request",
		ErrKeyInvalidRequestBody: "Invalid request body",
		ErrKeyInvalidQuery:       "Filter parameters must be numeric",
		ErrKeyInvalidID:          "Identifier must be a positive integer",
		ErrKeyInternalError:      "An unexpected error occurred",
		ErrKeyNotFound:           "Not found",
		ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
		ErrKeyConflict:           "Name already in use",
		ErrKeyInvalidReference:   "Referenced category or brand does not exist",
		ErrKeyUnavailable:        "Service temporarily unavailable",
		ErrKeyTimeout:            "Request timed out",

		SuccessKeyCreated: "Created",
		SuccessKeyUpdated: "Updated",
		SuccessKeyDeleted: "Deleted",
	},
	"pt": {
		ErrKeyInvalidRequest:     "Requisição inválida",
		ErrKeyInvalidRequestBody: "Corpo da requisição inválido",
		ErrKeyInvalidQuery:       "Parâmetros de filtro devem ser numéricos",
		ErrKeyInvalidID:          "Identificador deve ser um inteiro positivo",
		ErrKeyInternalError:      "Ocorreu um erro inesperado",
		ErrKeyNotFound:           "Não encontrado",
		ErrKeyRateLimitExceeded:  "Muitas requisições, tente novamente mais tarde",
		ErrKeyConflict:           "Nome já está em uso",
		ErrKeyInvalidReference:   "Categoria ou marca referenciada não existe",
		ErrKeyUnavailable:        "Serviço temporariamente indisponível",
		ErrKeyTimeout:            "Tempo limite da requisição excedido",

		SuccessKeyCreated: "Criado",
		SuccessKeyUpdated: "Atualizado",
		SuccessKeyDeleted: "Removido",
	},
	"nl": {
		ErrKeyInvalidRequest:     "Ongeldig verzoek",
		ErrKeyInvalidRequestBody: "Ongeldige aanvraag body",
		ErrKeyInvalidQuery:       "Filterparameters moeten numeriek zijn",
		ErrKeyInvalidID:          "Identificatie moet een positief geheel getal zijn",
		ErrKeyInternalError:      "Er is een onverwachte fout opgetreden",
		ErrKeyNotFound:           "Niet gevonden",
		ErrKeyRateLimitExceeded:  "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyConflict:           "Naam is al in gebruik",
		ErrKeyInvalidReference:   "Verwezen categorie of merk bestaat niet",
		ErrKeyUnavailable:        "Dienst tijdelijk niet beschikbaar",
		ErrKeyTimeout:            "Verzoek verlopen",

		SuccessKeyCreated: "Aangemaakt",
		SuccessKeyUpdated: "Bijgewerkt",
		SuccessKeyDeleted: "Verwijderd",
	},
}
