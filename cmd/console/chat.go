package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"ai-note-assistant/internal/service"

	"github.com/fatih/color"
)

var conversationID string

var (
	promptColor = color.New(color.FgCyan, color.Bold)
	replyColor  = color.New(color.FgGreen)
	hintColor   = color.New(color.FgHiBlack)
)

const (
	exitCommand  = "/salir"
	resetCommand = "/reset"
)

// runChat reads one turn per line until EOF or the exit command.
func runChat(ctx context.Context, assistant service.IAssistantService, conversation string, in io.Reader, out io.Writer) error {
	hintColor.Fprintf(out, "Conversación %q. Escribe %s para terminar o %s para empezar de nuevo.\n", conversation, exitCommand, resetCommand)

	scanner := bufio.NewScanner(in)
	for {
		promptColor.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case exitCommand:
			return nil
		case resetCommand:
			if err := assistant.ResetConversation(ctx, conversation); err != nil {
				return fmt.Errorf("reset conversation: %w", err)
			}
			hintColor.Fprintln(out, "Conversación reiniciada.")
			continue
		}

		reply := assistant.HandleTurn(ctx, conversation, text)
		replyColor.Fprintln(out, reply)
	}
}
