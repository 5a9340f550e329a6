package correction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   []string
		wantOk bool
	}{
		{
			name:   "change tag to list",
			text:   "cambia la etiqueta a B, C",
			want:   []string{"B", "C"},
			wantOk: true,
		},
		{
			name:   "change tags with accent and por",
			text:   "Cámbiale las etiquetas por Trabajo y Casa.",
			want:   []string{"Trabajo", "Casa"},
			wantOk: true,
		},
		{
			name:   "should be",
			text:   "debería ser Recetas",
			want:   []string{"Recetas"},
			wantOk: true,
		},
		{
			name:   "tag with colon",
			text:   "etiquetas: Ideas, Proyectos, , Hogar!",
			want:   []string{"Ideas", "Proyectos", "Hogar"},
			wantOk: true,
		},
		{
			name:   "tag is",
			text:   "la etiqueta es Viajes",
			want:   []string{"Viajes"},
			wantOk: true,
		},
		{
			name:   "category",
			text:   "ponlo en la categoría Finanzas",
			want:   []string{"Finanzas"},
			wantOk: true,
		},
		{
			name:   "unrelated text",
			text:   "¿qué notas tengo de recetas?",
			wantOk: false,
		},
		{
			name:   "question about tags is not a correction",
			text:   "qué etiquetas tengo",
			wantOk: false,
		},
		{
			name:   "category with change verb",
			text:   "cambia la categoría por Salud",
			want:   []string{"Salud"},
			wantOk: true,
		},
		{
			name:   "confirming the tag is not a correction",
			text:   "la etiqueta es correcta",
			wantOk: false,
		},
		{
			name:   "confirming the category is not a correction",
			text:   "la categoría está bien",
			wantOk: false,
		},
		{
			name:   "confirmation list",
			text:   "etiquetas: ok, perfecto",
			wantOk: false,
		},
		{
			name:   "search by category is not a correction",
			text:   "muéstrame las notas de la categoría viajes",
			wantOk: false,
		},
		{
			name:   "empty capture",
			text:   "cambia la etiqueta a ,",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.text)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
