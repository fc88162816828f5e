// Package i18n holds the user-facing texts of especies.
//
// Keys are English sentences; the Brazilian Portuguese catalogue is registered
// on init. A printer for English prints the keys unchanged.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	ConfirmDelete   = "Are you sure you want to delete this species?"
	Deleted         = "Species deleted!"
	DeleteFailed    = "Failed to delete."
	ConnectionError = "Connection error."
	Created         = "Species created!"
	Updated         = "Species updated!"
	SaveFailed      = "Failed to save on the server."
	NewTitle        = "New species"
	EditTitle       = "Edit species"
	NoDescription   = "No description"
	EmptyState      = "No species registered yet."
	ListTitle       = "Species"
	CountLabel      = "%d species"
	FieldName       = "Name"
	FieldDesc       = "Description"
	NameRequired    = "Name is required."
	ActionEdit      = "Edit"
	ActionDelete    = "Delete"
	ActionSave      = "Save"
	ActionCancel    = "Cancel"
	ActionNew       = "Add species"
	ActionReload    = "Reload list"
	ActionQuit      = "Quit"
	Yes             = "Yes"
	No              = "No"
	NotFound        = "Species not found."
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "pt-BR"

var portuguese = map[string]string{
	ConfirmDelete:   "Tem certeza que deseja excluir esta espécie?",
	Deleted:         "Espécie excluída!",
	DeleteFailed:    "Erro ao excluir.",
	ConnectionError: "Erro de conexão.",
	Created:         "Cadastrado com sucesso!",
	Updated:         "Editado com sucesso!",
	SaveFailed:      "Erro ao salvar no servidor.",
	NewTitle:        "Nova Espécie",
	EditTitle:       "Editar Espécie",
	NoDescription:   "Sem descrição",
	EmptyState:      "Nenhuma espécie cadastrada.",
	ListTitle:       "Espécies",
	CountLabel:      "%d espécies",
	FieldName:       "Nome",
	FieldDesc:       "Descrição",
	NameRequired:    "O nome é obrigatório.",
	ActionEdit:      "Editar",
	ActionDelete:    "Excluir",
	ActionSave:      "Salvar",
	ActionCancel:    "Cancelar",
	ActionNew:       "Nova espécie",
	ActionReload:    "Recarregar lista",
	ActionQuit:      "Sair",
	Yes:             "Sim",
	No:              "Não",
	NotFound:        "Espécie não encontrada.",
}

func init() {
	for key, text := range portuguese {
		if err := message.SetString(language.BrazilianPortuguese, key, text); err != nil {
			panic(fmt.Sprintf("i18n: register %q: %v", key, err))
		}
	}
}

// Supported lists the accepted language tags.
var Supported = []string{"pt-BR", "en"}

// ParseLanguage parses a language tag, accepting the forms "pt-BR", "pt_br"
// and "en". Unsupported or empty tags return an error.
func ParseLanguage(s string) (language.Tag, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
	if norm == "" {
		return language.Und, fmt.Errorf("language is empty (supported: %s)", strings.Join(Supported, ", "))
	}
	tag, err := language.Parse(norm)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language %q: %w", s, err)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "pt":
		return language.BrazilianPortuguese, nil
	case "en":
		return language.English, nil
	}
	return language.Und, fmt.Errorf("unsupported language %q (supported: %s)", s, strings.Join(Supported, ", "))
}

// NewPrinter returns a printer for lang, falling back to DefaultLanguage when
// lang is not supported.
func NewPrinter(lang string) *message.Printer {
	tag, err := ParseLanguage(lang)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	return message.NewPrinter(tag)
}

// Default returns a printer for DefaultLanguage.
func Default() *message.Printer {
	return message.NewPrinter(language.BrazilianPortuguese)
}
