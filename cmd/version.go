package cmd

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/color"
	"github.com/srtdeck/srtdeck/constant"
	"github.com/srtdeck/srtdeck/key"
	"github.com/srtdeck/srtdeck/style"
	"github.com/srtdeck/srtdeck/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

var versionTemplate = lo.Must(template.New("version").Funcs(map[string]any{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
	"red":     style.Fg(color.Red),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}         {{ bold .Version }}
  {{ faint "Git Commit" }}      {{ bold .Revision }}
  {{ faint "Build Date" }}      {{ bold .BuiltAt }}
  {{ faint "Built By" }}        {{ bold .BuiltBy }}
  {{ faint "Platform" }}        {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "Player" }}          {{ if .PlayerPath }}{{ bold .PlayerPath }}{{ else }}{{ red (printf "%s not found" .Player) }}{{ end }}
`))

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Long:  "Display the current application version, build revision, platform, and the media player in use.",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify(context.Background(), cmd.OutOrStdout())

		player := viper.GetString(key.PlayerBinary)
		playerPath, _ := exec.LookPath(player)

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), struct {
			App, Version, Revision, BuiltAt, BuiltBy string
			OS, Arch                                 string
			Player, PlayerPath                       string
		}{
			App:        constant.App,
			Version:    constant.Version,
			Revision:   constant.Revision,
			BuiltAt:    strings.TrimSpace(constant.BuiltAt),
			BuiltBy:    constant.BuiltBy,
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			Player:     player,
			PlayerPath: playerPath,
		}))
	},
}
