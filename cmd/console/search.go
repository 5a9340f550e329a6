package main

import (
	"fmt"
	"strings"

	"ai-note-assistant/pkg/assistant/intent"
	"ai-note-assistant/pkg/assistant/response"
	"ai-note-assistant/pkg/search"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search saved notes without going through the assistant",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := buildContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Close()

		filter := search.ParseQuery(strings.Join(args, " "))
		notes, err := container.NoteStore.Query(cmd.Context(), filter)
		if err != nil {
			return err
		}

		formatter := response.NewFormatter()
		kind, parameter := intent.QueryByKeyword, filter.Text
		if filter.Text == "" {
			kind, parameter = intent.QueryByTag, filter.Tag
		}
		replyColor.Fprintln(cmd.OutOrStdout(), formatter.FormatResults(notes, kind, parameter))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many notes there are per tag",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := buildContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Close()

		stats, err := container.NoteStore.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), response.NewFormatter().FormatStats(*stats))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
}
