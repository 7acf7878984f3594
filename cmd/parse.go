package cmd

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/filesystem"
	"github.com/srtdeck/srtdeck/inline"
	"github.com/srtdeck/srtdeck/key"
)

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	parseCmd.Flags().StringP("cues", "c", "all", "Select the cues to print")
	parseCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
}

// parseCmd prints the cues of a subtitle track without starting a player.
var parseCmd = &cobra.Command{
	Use:   "parse <source>",
	Short: "Parse a subtitle file or URL and print its cues",
	Long: `Parse a subtitle file or URL and print its cues.

Cue selectors:
  all - every cue (default)
  first - first cue in the file
  last - last cue in the file
  [number] - select a cue by position (starting from 0)
  [from]-[to] - select a range of positions, inclusive
  @[substring]@ - select cues whose text contains the substring`,
	Example: "  srtdeck parse talk.en.srt --cues 0-9\n  srtdeck parse https://example.com/talk.srt --json --cues @kenobi@",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filter, err := inline.ParseCueFilter(lo.Must(cmd.Flags().GetString("cues")))
		handleErr(err)

		options := inlineOptions(cmd, args[0])
		options.Filter = mo.Some(filter)

		out, closeOut := outputWriter(cmd)
		defer closeOut()
		options.Out = out

		handleErr(inline.Run(cmd.Context(), options))
	},
}

func init() {
	parseCmd.AddCommand(parseSchemaCmd)
}

// parseSchemaCmd generates the JSON schema of the structured parse output.
var parseSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for structured parse and lookup output",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true

		schema := reflector.Reflect(&inline.Output{})
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
	},
}

// inlineOptions builds the shared options of the inspection commands.
func inlineOptions(cmd *cobra.Command, source string) *inline.Options {
	return &inline.Options{
		Out:      cmd.OutOrStdout(),
		Source:   source,
		Json:     lo.Must(cmd.Flags().GetBool("json")),
		MaxBytes: viper.GetInt64(key.SubtitlesMaxBytes),
		Timeout:  time.Duration(viper.GetInt(key.SubtitlesTimeoutMs)) * time.Millisecond,
	}
}

// outputWriter opens the --output file when one is given.
func outputWriter(cmd *cobra.Command) (io.Writer, func()) {
	path := lo.Must(cmd.Flags().GetString("output"))
	if path == "" {
		return cmd.OutOrStdout(), func() {}
	}

	file, err := filesystem.API().OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	handleErr(err)
	return file, func() { _ = file.Close() }
}
