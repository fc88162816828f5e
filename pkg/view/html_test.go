package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/raizdigital/especies/pkg/controller"
	"github.com/raizdigital/especies/pkg/species"
)

func render(t *testing.T, v *HTMLView) (string, *html.Node) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf))
	doc, err := html.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return buf.String(), doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byID(n *html.Node, id string) *html.Node {
	nodes := findAll(n, func(n *html.Node) bool {
		v, _ := attr(n, "id")
		return v == id
	})
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func hidden(n *html.Node) bool {
	_, ok := attr(n, "hidden")
	return ok
}

func TestHTMLView_EmptyState(t *testing.T) {
	v := NewHTMLView("pt-BR")
	v.RenderList([]species.Species{})

	_, doc := render(t, v)

	empty := byID(doc, "empty-state-especies")
	list := byID(doc, "lista-especies-container")
	require.NotNil(t, empty)
	require.NotNil(t, list)
	assert.False(t, hidden(empty))
	assert.True(t, hidden(list))
	assert.Equal(t, "Nenhuma espécie cadastrada.", text(empty))
	assert.Equal(t, "0", text(byID(doc, "contador-especies")))
	assert.Empty(t, findAll(doc, func(n *html.Node) bool { return hasClass(n, "species-row") }))
}

func TestHTMLView_OneRowPerSpecies(t *testing.T) {
	items := []species.Species{
		{ID: 1, Name: "Ipê", Description: "Amarelo"},
		{ID: 2, Name: "Jatobá"},
		{ID: 9, Name: "Aroeira", Description: "Pimenta-rosa"},
	}
	v := NewHTMLView("pt-BR")
	v.RenderList(items)

	_, doc := render(t, v)

	assert.True(t, hidden(byID(doc, "empty-state-especies")))
	assert.False(t, hidden(byID(doc, "lista-especies-container")))
	assert.Equal(t, "3", text(byID(doc, "contador-especies")))

	rows := findAll(doc, func(n *html.Node) bool { return hasClass(n, "species-row") })
	require.Len(t, rows, len(items))
	for i, row := range rows {
		name, _ := attr(row, "data-name")
		id, _ := attr(row, "data-id")
		assert.Equal(t, items[i].Name, name)
		assert.Equal(t, []string{"1", "2", "9"}[i], id)
	}
	assert.Contains(t, text(rows[1]), "Sem descrição")
}

func TestHTMLView_EscapesQuotesAndMarkup(t *testing.T) {
	v := NewHTMLView("pt-BR")
	v.RenderList([]species.Species{{ID: 3, Name: "Pau d'arco", Description: `<script>alert("x")</script>`}})

	raw, doc := render(t, v)

	assert.Contains(t, raw, "Pau d&#39;arco")
	assert.NotContains(t, raw, "Pau d'arco")
	assert.NotContains(t, raw, "<script>alert")

	rows := findAll(doc, func(n *html.Node) bool { return hasClass(n, "species-row") })
	require.Len(t, rows, 1)
	name, _ := attr(rows[0], "data-name")
	desc, _ := attr(rows[0], "data-description")
	assert.Equal(t, "Pau d'arco", name)
	assert.Equal(t, `<script>alert("x")</script>`, desc)
}

func TestHTMLView_FormVisibility(t *testing.T) {
	v := NewHTMLView("pt-BR")

	_, doc := render(t, v)
	assert.Nil(t, byID(doc, "modal-nova-especie"))

	v.ShowForm(controller.EditMode, controller.FormState{EditingID: 7, Name: "Ipê", Description: "Amarelo"})
	_, doc = render(t, v)

	modal := byID(doc, "modal-nova-especie")
	require.NotNil(t, modal)
	assert.Contains(t, text(modal), "Editar Espécie")
	name, _ := attr(byID(doc, "nome-especie"), "value")
	id, _ := attr(byID(doc, "id-especie"), "value")
	assert.Equal(t, "Ipê", name)
	assert.Equal(t, "7", id)
	assert.Equal(t, "Amarelo", text(byID(doc, "desc-especie")))

	v.ShowForm(controller.CreateMode, controller.FormState{})
	_, doc = render(t, v)
	assert.Contains(t, text(byID(doc, "modal-nova-especie")), "Nova Espécie")
	id, _ = attr(byID(doc, "id-especie"), "value")
	assert.Empty(t, id)

	v.HideForm()
	_, doc = render(t, v)
	assert.Nil(t, byID(doc, "modal-nova-especie"))
}

func TestHTMLView_FlashShownOnce(t *testing.T) {
	v := NewHTMLView("en")
	v.AddFlash("Species created!")

	raw, _ := render(t, v)
	assert.Contains(t, raw, "Species created!")

	raw, _ = render(t, v)
	assert.NotContains(t, raw, "Species created!")
}

func TestHTMLView_Confirm(t *testing.T) {
	v := NewHTMLView("pt-BR")
	v.SetConfirm(4, "Tem certeza que deseja excluir esta espécie?")

	_, doc := render(t, v)
	dialog := byID(doc, "confirm-dialog")
	require.NotNil(t, dialog)
	assert.Contains(t, text(dialog), "Tem certeza que deseja excluir esta espécie?")

	forms := findAll(dialog, func(n *html.Node) bool { return n.Data == "form" })
	require.NotEmpty(t, forms)
	action, _ := attr(forms[0], "action")
	assert.Equal(t, "/species/4/delete", action)

	v.ClearConfirm()
	_, doc = render(t, v)
	assert.Nil(t, byID(doc, "confirm-dialog"))
}

func TestHTMLView_PageIsACopy(t *testing.T) {
	v := NewHTMLView("xx")
	v.RenderList([]species.Species{{ID: 1, Name: "Ipê"}})

	p := v.Page()
	p.Items[0].Name = "changed"

	assert.Equal(t, "Ipê", v.Page().Items[0].Name)
	assert.Equal(t, 1, v.Page().Count)
}
