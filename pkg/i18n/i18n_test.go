package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    language.Tag
		wantErr bool
	}{
		{"pt-BR", language.BrazilianPortuguese, false},
		{"pt_br", language.BrazilianPortuguese, false},
		{"pt", language.BrazilianPortuguese, false},
		{"en", language.English, false},
		{"en-US", language.English, false},
		{"", language.Und, true},
		{"fr", language.Und, true},
		{"not a tag!", language.Und, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLanguage(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLanguage(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrinter_Portuguese(t *testing.T) {
	p := NewPrinter("pt-BR")

	if got := p.Sprintf(ConfirmDelete); got != "Tem certeza que deseja excluir esta espécie?" {
		t.Errorf("ConfirmDelete = %q", got)
	}
	if got := p.Sprintf(CountLabel, 3); got != "3 espécies" {
		t.Errorf("CountLabel = %q", got)
	}
}

func TestPrinter_EnglishUsesKeys(t *testing.T) {
	p := NewPrinter("en")

	if got := p.Sprintf(Deleted); got != Deleted {
		t.Errorf("Deleted = %q, want %q", got, Deleted)
	}
}

func TestPrinter_UnsupportedFallsBackToDefault(t *testing.T) {
	p := NewPrinter("de")

	if got := p.Sprintf(ConnectionError); got != "Erro de conexão." {
		t.Errorf("ConnectionError = %q", got)
	}
}

func TestCatalogCoversEveryKey(t *testing.T) {
	keys := []string{
		ConfirmDelete, Deleted, DeleteFailed, ConnectionError, Created, Updated,
		SaveFailed, NewTitle, EditTitle, NoDescription, EmptyState, ListTitle,
		CountLabel, FieldName, FieldDesc, NameRequired, ActionEdit, ActionDelete, ActionSave,
		ActionCancel, ActionNew, ActionReload, ActionQuit, Yes, No, NotFound,
	}
	for _, k := range keys {
		if _, ok := portuguese[k]; !ok {
			t.Errorf("missing pt-BR text for %q", k)
		}
	}
}
