package search

import (
	"testing"
	"time"

	"ai-note-assistant/pkg/store"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(id, title, body string, tags ...string) store.Note {
	return store.Note{ID: id, Title: title, Body: body, Tags: tags, CreatedAt: time.Now()}
}

func ids(results []store.ScoredNote) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestSearch_ExactTitleMatch(t *testing.T) {
	engine := NewEngine(DefaultLexicon())
	notes := []store.Note{
		note("1", "Receta de arepas venezolanas", "Harina, agua y sal", "Recetas"),
		note("2", "Lista del súper", "Leche, huevos, pan", "Compras"),
	}

	results := engine.Search(notes, "arepas")

	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID)
	assert.GreaterOrEqual(t, results[0].Score, 30)
	assert.Equal(t, store.TierExact, results[0].Tier)
	assert.NotEmpty(t, results[0].MatchReasons)
}

func TestSearch_SynonymTier(t *testing.T) {
	engine := NewEngine(DefaultLexicon())
	notes := []store.Note{
		note("1", "Cena del domingo", "Espagueti con salsa de tomate", "Recetas"),
		note("2", "Reunión de equipo", "Revisar el roadmap", "Trabajo"),
	}

	results := engine.Search(notes, "pasta")

	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID)
	assert.GreaterOrEqual(t, results[0].Score, 3)
	assert.Equal(t, store.TierRelated, results[0].Tier)
}

func TestSearch_FuzzyTier(t *testing.T) {
	engine := NewEngine(DefaultLexicon())
	notes := []store.Note{
		note("1", "Presupuestario anual", "cifras", "Finanzas"),
		note("2", "Otra cosa", "nada que ver", "Varios"),
	}

	results := engine.Search(notes, "presuntos")

	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID)
	assert.Equal(t, 1, results[0].Score)
	assert.Equal(t, store.TierFuzzy, results[0].Tier)
	assert.Contains(t, results[0].MatchReasons[0], "parcial")
}

func TestSearch_TierPrecedence(t *testing.T) {
	engine := NewEngine(DefaultLexicon())
	notes := []store.Note{
		note("fuzzy", "Arepera del barrio", "Abre los domingos", "Lugares"),
		note("exact", "Receta de arepas venezolanas", "Harina precocida", "Recetas"),
	}

	results := engine.Search(notes, "arepas")

	if diff := cmp.Diff([]string{"exact"}, ids(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_WordFallbackWithinExactTier(t *testing.T) {
	engine := NewEngine(DefaultLexicon())
	notes := []store.Note{
		note("1", "Ideas para el viaje", "Visitar Mérida en vacaciones", "Viajes"),
	}

	// The full phrase appears nowhere, each word does.
	results := engine.Search(notes, "viaje a mérida")

	require.Len(t, results, 1)
	// viaje: title +15, tags +10 ("viajes"); mérida: body +12
	assert.Equal(t, 37, results[0].Score)
}

func TestSearch_SortedDescendingWithStableTies(t *testing.T) {
	engine := NewEngine(DefaultLexicon())
	notes := []store.Note{
		note("a", "café", "", "Bebidas"),
		note("b", "otra", "café de olla", "Bebidas"),
		note("c", "café", "", "Bebidas"),
		note("d", "café", "café", "Bebidas"),
	}

	results := engine.Search(notes, "café")

	assert.Equal(t, []string{"d", "a", "c", "b"}, ids(results))
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	for _, r := range results {
		assert.Positive(t, r.Score)
	}
}

func TestSearch_EmptyInputs(t *testing.T) {
	engine := NewEngine(nil)

	assert.Empty(t, engine.Search(nil, "arepas"))
	assert.Empty(t, engine.Search([]store.Note{note("1", "x", "y", "z")}, "   "))
}

func TestSearch_StopWordsIgnored(t *testing.T) {
	engine := NewEngine(DefaultLexicon())
	notes := []store.Note{
		note("1", "Todo para la casa", "limpieza", "Hogar"),
	}

	// "para" and "las" are stop words, "casas" alone does not appear anywhere.
	results := engine.Search(notes, "para las casas")

	for _, r := range results {
		assert.NotEqual(t, store.TierExact, r.Tier)
	}
}

func TestSignificantWords(t *testing.T) {
	engine := NewEngine(DefaultLexicon())

	got := engine.SignificantWords("Receta de la Pasta, pasta y salsa!", 3)

	assert.Equal(t, []string{"receta", "pasta", "salsa"}, got)
}

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score int
		want  store.Tier
	}{
		{0, store.TierNone},
		{1, store.TierFuzzy},
		{2, store.TierFuzzy},
		{3, store.TierRelated},
		{9, store.TierRelated},
		{10, store.TierExact},
		{75, store.TierExact},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, store.TierForScore(tt.score), "score %d", tt.score)
	}
}
