package response

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"ai-note-assistant/pkg/assistant/intent"
	"ai-note-assistant/pkg/search"
	"ai-note-assistant/pkg/store"

	"github.com/stretchr/testify/assert"
)

func scored(title, body string, tags []string, score int, reason string) store.ScoredNote {
	n := store.ScoredNote{
		Note:  store.Note{ID: title, Title: title, Body: body, Tags: tags, CreatedAt: time.Unix(0, 0)},
		Score: score,
		Tier:  store.TierForScore(score),
	}
	if reason != "" {
		n.MatchReasons = []string{reason}
	}
	return n
}

func TestFormatResultsEmptyKeyword(t *testing.T) {
	// An empty collection searched for "foo" must say the keyword was not found.
	results := search.NewEngine(nil).Search(nil, "foo")
	assert.Empty(t, results)

	out := NewFormatter().FormatResults(results, intent.QueryByKeyword, "foo")
	assert.Contains(t, out, "No encontré notas que coincidan con «foo»")
	assert.NotContains(t, out, "Aún no tienes notas")
}

func TestFormatResultsEmptyOtherKinds(t *testing.T) {
	f := NewFormatter()
	for _, kind := range []intent.QueryKind{intent.QueryByTag, intent.QueryRecent} {
		assert.Contains(t, f.FormatResults(nil, kind, "x"), "Aún no tienes notas guardadas")
	}
}

func TestFormatResultsIdempotent(t *testing.T) {
	notes := []store.ScoredNote{
		scored("Receta de arepas", "Harina, agua y sal", []string{"Recetas"}, 30, "el título contiene «arepas»"),
		scored("Lista", "Comprar harina", []string{"Compras"}, 12, "«harina» en el contenido"),
	}
	f := NewFormatter()
	first := f.FormatResults(notes, intent.QueryByKeyword, "arepas")
	second := f.FormatResults(notes, intent.QueryByKeyword, "arepas")
	assert.Equal(t, first, second)
}

func TestFormatResultsKeywordHeaderFollowsTopTier(t *testing.T) {
	f := NewFormatter()
	tests := []struct {
		score  int
		header string
	}{
		{30, "🎯 Esto es lo que encontré sobre «pasta»:"},
		{4, "🔗 No encontré «pasta» tal cual"},
		{1, "🤏 Solo encontré coincidencias parciales para «pasta»:"},
	}
	for _, tt := range tests {
		out := f.FormatResults([]store.ScoredNote{scored("N", "b", []string{"A"}, tt.score, "r")}, intent.QueryByKeyword, "pasta")
		assert.True(t, strings.HasPrefix(out, tt.header), out)
	}
}

func TestFormatResultsNoteLayout(t *testing.T) {
	body := strings.Repeat("a", 100)
	out := NewFormatter().FormatResults(
		[]store.ScoredNote{scored("Título", body, []string{"A", "B"}, 25, "el contenido contiene «aaa»")},
		intent.QueryByKeyword, "aaa",
	)

	assert.Contains(t, out, "1. *Título*")
	assert.Contains(t, out, "   "+strings.Repeat("a", 80)+"...")
	assert.Contains(t, out, "🏷️ A, B")
	assert.Contains(t, out, "🎯 Coincidencia exacta: el contenido contiene «aaa»")
}

func TestFormatResultsUnscoredOmitsTier(t *testing.T) {
	notes := store.Unscored([]store.Note{{Title: "Idea", Body: "corta", Tags: []string{"Ideas"}}})
	out := NewFormatter().FormatResults(notes, intent.QueryByTag, "Ideas")

	assert.True(t, strings.HasPrefix(out, "🏷️ Notas con la etiqueta «Ideas» (1):"))
	assert.Contains(t, out, "   corta")
	assert.NotContains(t, out, "Coincidencia")
	assert.NotContains(t, out, "💡")
}

func TestFormatResultsTruncatesList(t *testing.T) {
	var notes []store.Note
	for i := 0; i < 8; i++ {
		notes = append(notes, store.Note{Title: fmt.Sprintf("Nota %d", i), Tags: []string{"A"}})
	}
	out := NewFormatter().FormatResults(store.Unscored(notes), intent.QueryRecent, "")

	assert.True(t, strings.HasPrefix(out, "🕒 Tus notas más recientes:"))
	assert.Contains(t, out, "5. *Nota 4*")
	assert.NotContains(t, out, "*Nota 5*")
	assert.True(t, strings.HasSuffix(out, "...y 3 notas más."))
}

func TestFormatStats(t *testing.T) {
	out := NewFormatter().FormatStats(store.Stats{
		Total:  4,
		PerTag: map[string]int64{"Trabajo": 1, "Recetas": 3, "Ideas": 1},
	})
	assert.Equal(t, "📊 Tienes 4 notas en total.\n\n🏷️ Por etiqueta:\n• Recetas: 3\n• Ideas: 1\n• Trabajo: 1", out)

	assert.Contains(t, NewFormatter().FormatStats(store.Stats{}), "Aún no tienes notas")
}
