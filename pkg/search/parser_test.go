package search

import (
	"testing"

	"ai-note-assistant/pkg/store"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want store.QueryFilter
	}{
		{
			name: "plain text",
			raw:  "receta de arepas",
			want: store.QueryFilter{Text: "receta de arepas"},
		},
		{
			name: "hash tag",
			raw:  "#Recetas arepas",
			want: store.QueryFilter{Tag: "Recetas", Text: "arepas"},
		},
		{
			name: "slash tag keeps case of value",
			raw:  "/TAG:Trabajo reunión lunes",
			want: store.QueryFilter{Tag: "Trabajo", Text: "reunión lunes"},
		},
		{
			name: "lonely hash is text",
			raw:  "# hola",
			want: store.QueryFilter{Text: "# hola"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuery(tt.raw)
			if got != tt.want {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
