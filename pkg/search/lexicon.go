package search

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LexiconSource hands out the lexicon to use for the next search.
type LexiconSource interface {
	Lexicon() *Lexicon
}

// Lexicon holds the language data the matching algorithm is driven by.
// Keys are lowercase.
type Lexicon struct {
	StopWords map[string]struct{}
	Synonyms  map[string][]string
}

// lexiconFile is the YAML layout of a lexicon override file:
//
//	stop_words: [de, la, que]
//	synonyms:
//	  pasta: [espagueti, fideos]
type lexiconFile struct {
	StopWords []string            `yaml:"stop_words"`
	Synonyms  map[string][]string `yaml:"synonyms"`
}

// Lexicon lets a static lexicon act as its own source.
func (l *Lexicon) Lexicon() *Lexicon {
	return l
}

func (l *Lexicon) IsStopWord(word string) bool {
	_, ok := l.StopWords[word]
	return ok
}

// Related returns the synonym terms registered for word.
func (l *Lexicon) Related(word string) []string {
	return l.Synonyms[word]
}

// DefaultLexicon returns the built-in Spanish tables.
func DefaultLexicon() *Lexicon {
	l := &Lexicon{
		StopWords: make(map[string]struct{}, len(defaultStopWords)),
		Synonyms:  make(map[string][]string, len(defaultSynonyms)),
	}
	for _, w := range defaultStopWords {
		l.StopWords[w] = struct{}{}
	}
	for k, v := range defaultSynonyms {
		l.Synonyms[k] = append([]string(nil), v...)
	}
	return l
}

// ParseLexicon reads YAML lexicon data on top of the defaults. Stop words are added,
// synonym entries replace the default entry for the same word.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	l := DefaultLexicon()
	for _, w := range f.StopWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			l.StopWords[w] = struct{}{}
		}
	}
	for k, terms := range f.Synonyms {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		clean := make([]string, 0, len(terms))
		for _, t := range terms {
			t = strings.ToLower(strings.TrimSpace(t))
			if t != "" {
				clean = append(clean, t)
			}
		}
		l.Synonyms[k] = clean
	}
	return l, nil
}

// LoadLexicon reads a YAML lexicon file. An empty path yields the defaults.
func LoadLexicon(path string) (*Lexicon, error) {
	if path == "" {
		return DefaultLexicon(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	return ParseLexicon(data)
}

var defaultStopWords = []string{
	"de", "la", "que", "el", "en", "y", "a", "los", "del", "se", "las", "por", "un",
	"para", "con", "no", "una", "su", "al", "lo", "como", "más", "mas", "pero", "sus",
	"le", "ya", "o", "este", "sí", "porque", "esta", "entre", "cuando", "muy", "sin",
	"sobre", "también", "me", "hasta", "hay", "donde", "quien", "desde", "todo", "nos",
	"durante", "todos", "uno", "les", "ni", "contra", "otros", "ese", "eso", "ante",
	"ellos", "e", "esto", "mí", "antes", "algunos", "qué", "unos", "yo", "otro",
	"otras", "otra", "él", "tanto", "esa", "estos", "mucho", "quienes", "nada",
	"muchos", "cual", "poco", "ella", "estar", "estas", "algunas", "algo", "nosotros",
	"mi", "mis", "tú", "te", "ti", "tu", "tus", "nota", "notas", "tengo", "tienes",
	"busca", "buscar", "muestra", "muéstrame", "dame", "cuál", "cuáles", "son", "era",
}

var defaultSynonyms = map[string][]string{
	"pasta":     {"espagueti", "fideos", "macarrones", "tallarines", "lasaña", "ravioles"},
	"receta":    {"cocina", "ingredientes", "preparación", "comida"},
	"recetas":   {"cocina", "ingredientes", "preparación", "comida"},
	"comida":    {"receta", "cocina", "almuerzo", "cena", "desayuno"},
	"trabajo":   {"oficina", "reunión", "proyecto", "cliente", "tarea"},
	"reunión":   {"junta", "meeting", "llamada", "agenda"},
	"reunion":   {"junta", "meeting", "llamada", "agenda"},
	"idea":      {"ocurrencia", "propuesta", "plan", "proyecto"},
	"ideas":     {"ocurrencia", "propuesta", "plan", "proyecto"},
	"compras":   {"supermercado", "lista", "mercado", "comprar"},
	"salud":     {"médico", "doctor", "cita", "medicina", "ejercicio"},
	"ejercicio": {"gimnasio", "entrenamiento", "rutina", "correr"},
	"viaje":     {"vacaciones", "vuelo", "hotel", "destino"},
	"viajes":    {"vacaciones", "vuelo", "hotel", "destino"},
	"dinero":    {"finanzas", "gasto", "pago", "presupuesto", "ahorro"},
	"finanzas":  {"dinero", "gasto", "pago", "presupuesto"},
	"libro":     {"lectura", "leer", "novela", "autor"},
	"libros":    {"lectura", "leer", "novela", "autor"},
	"película":  {"cine", "serie", "documental"},
	"música":    {"canción", "disco", "artista", "concierto"},
}
