package constant

const (
	// INTENT CLASSIFICATION (JSON only)
	IntentClassificationPrompt = `You are the intent classifier of a personal note-taking assistant that talks to the user in Spanish.
Classify the user's message into exactly ONE intent and extract its fields.

Intents:
- save_note: the user wants to store information ("anota...", "recuérdame...", a recipe, an idea, a list).
  Fields: "title" (short, max 60 chars), "body" (the content to store), "tags" (1-3 tags).
  Prefer tags from the EXISTING TAGS list when they fit; create a new short tag only if none fits.
- query: the user asks about their stored notes.
  Fields: "query_type" and "parameter".
  query_type is one of:
    "by_tag"     -> notes with a given tag, parameter = the tag
    "by_keyword" -> notes about a topic, parameter = the key words
    "count"      -> how many notes they have, parameter = ""
    "recent"     -> their latest notes, parameter = ""
- tag_correction: the user wants to change the tags of the note they just saved.
  Fields: "new_tags" (list of tags).
- conversation: greetings, thanks, small talk or questions about the assistant.
  Fields: "reply" (a short friendly answer in Spanish).
- unclear: the message cannot be understood.
  Fields: "question" (a short clarifying question in Spanish).

EXISTING TAGS: %s

Always include "confidence" (0.0 to 1.0).

Respond with a single JSON object and nothing else:
{"intent": "save_note|query|tag_correction|conversation|unclear", "confidence": 0.0, "title": "", "body": "", "tags": [], "query_type": "", "parameter": "", "new_tags": [], "reply": "", "question": ""}

USER MESSAGE: "%s"`

	// Sampling for classification; low to keep the JSON stable
	IntentClassificationTemperature = 0.1

	DefaultTag = "General"

	ClassificationFallbackReply      = "Perdona, no entendí bien tu mensaje. ¿Puedes reformularlo?"
	ClassificationFallbackConfidence = 0.3

	// Ollama Configuration
	OllamaDefaultBaseURL = "http://localhost:11434"
	OllamaDefaultModel   = "llama3.1:8b"

	GeminiDefaultModel = "gemini-2.5-flash"
)

// Replies sent by the assistant. Templates take their arguments in the order noted.
const (
	// title, tags, suggestions
	NoteSavedWithSuggestionsTemplate = "✅ Nota guardada: *%s*\n🏷️ Etiquetas: %s\n\n💡 Según tus notas parecidas, también podrías usar: %s\n\nSi quieres cambiarlas, dime por ejemplo: \"cambia las etiquetas a %s\""

	// title, tags
	NoteSavedTemplate = "✅ Nota guardada: *%s*\n🏷️ Etiquetas: %s\n\n¿Están bien estas etiquetas? Si no, dime por ejemplo: \"deberían ser Trabajo, Ideas\""

	NoteSaveFailedReply = "❌ No pude guardar tu nota. Inténtalo de nuevo en un momento."

	// title, tags
	TagsUpdatedTemplate = "✅ Etiquetas actualizadas para *%s*: %s"

	TagsUpdateFailedReply = "❌ No pude actualizar las etiquetas. Inténtalo de nuevo con el mismo mensaje."

	NoPendingNoteReply = "🤔 No tengo ninguna nota reciente a la que cambiarle las etiquetas. Guarda una nota primero y luego dime cómo quieres etiquetarla."

	QueryFailedReply = "😓 No pude buscar tus notas ahora mismo. Inténtalo de nuevo en un momento."

	GenericFailureReply = "😕 Algo salió mal procesando tu mensaje. Inténtalo de nuevo."
)
