package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoAssistant struct {
	turns  []string
	resets int
}

func (a *echoAssistant) HandleTurn(_ context.Context, _ string, text string) string {
	a.turns = append(a.turns, text)
	return "eco: " + text
}

func (a *echoAssistant) Respond(context.Context, string, string) error { return nil }

func (a *echoAssistant) ResetConversation(context.Context, string) error {
	a.resets++
	return nil
}

func TestRunChat(t *testing.T) {
	color.NoColor = true

	assistant := &echoAssistant{}
	in := strings.NewReader("hola\n\n/reset\n  guarda esto  \n/salir\nno llega\n")
	var out bytes.Buffer

	require.NoError(t, runChat(context.Background(), assistant, "c1", in, &out))

	assert.Equal(t, []string{"hola", "guarda esto"}, assistant.turns)
	assert.Equal(t, 1, assistant.resets)
	assert.Contains(t, out.String(), "eco: hola")
	assert.Contains(t, out.String(), "Conversación reiniciada.")
	assert.NotContains(t, out.String(), "no llega")
}

func TestRunChatStopsAtEOF(t *testing.T) {
	color.NoColor = true

	assistant := &echoAssistant{}
	var out bytes.Buffer
	require.NoError(t, runChat(context.Background(), assistant, "c1", strings.NewReader("uno"), &out))
	assert.Equal(t, []string{"uno"}, assistant.turns)
}
