package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/srtdeck/srtdeck/color"
	"github.com/srtdeck/srtdeck/icon"
	"github.com/srtdeck/srtdeck/prefs"
	"github.com/srtdeck/srtdeck/style"
	"github.com/srtdeck/srtdeck/where"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(prefsCmd)
}

// prefsCmd serves as the parent command for the remembered visual toggles.
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect or reset the remembered player modes and track visibility",
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsShowCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the stored preferences",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		all, err := prefs.NewFileStore(where.Prefs()).All()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(all))
			return
		}

		if len(all) == 0 {
			cmd.Println(style.Faint("no preferences stored"))
			return
		}

		keys := lo.Keys(all)
		slices.Sort(keys)
		for _, k := range keys {
			cmd.Printf("%s = %s\n", style.Fg(color.Purple)(k), style.Fg(color.Yellow)(all[k]))
		}
	},
}

func init() {
	prefsCmd.AddCommand(prefsResetCmd)
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every stored preference",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(prefs.NewFileStore(where.Prefs()).Reset())
		fmt.Printf("%s preferences reset\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
