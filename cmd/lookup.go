package cmd

import (
	"errors"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/srtdeck/srtdeck/cue"
	"github.com/srtdeck/srtdeck/inline"
)

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringP("at", "a", "", "Playback offset, e.g. 00:01:02,500")
	lookupCmd.Flags().StringP("search", "q", "", "Fuzzy text to look for")
	lookupCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	lookupCmd.MarkFlagsOneRequired("at", "search")
}

// lookupCmd answers which cue is shown at an offset, or which cues match a text.
var lookupCmd = &cobra.Command{
	Use:     "lookup <source>",
	Short:   "Find the cue shown at a playback offset or the cues matching a text",
	Example: "  srtdeck lookup talk.en.srt --at 00:01:02,500\n  srtdeck lookup talk.en.srt --search \"general kenobi\"",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		options := inlineOptions(cmd, args[0])

		if at := lo.Must(cmd.Flags().GetString("at")); at != "" {
			ms, err := cue.ParseTimestamp(at)
			if err != nil {
				handleErr(errors.Join(errors.New("invalid --at offset"), err))
			}
			options.At = mo.Some(time.Duration(ms) * time.Millisecond)
		}

		if query := lo.Must(cmd.Flags().GetString("search")); query != "" {
			options.Query = mo.Some(query)
		}

		handleErr(inline.Run(cmd.Context(), options))
	},
}
