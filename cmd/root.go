// Package cmd implements the command-line interface for srtdeck.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/color"
	"github.com/srtdeck/srtdeck/constant"
	"github.com/srtdeck/srtdeck/cue"
	"github.com/srtdeck/srtdeck/history"
	"github.com/srtdeck/srtdeck/icon"
	"github.com/srtdeck/srtdeck/key"
	"github.com/srtdeck/srtdeck/log"
	"github.com/srtdeck/srtdeck/player"
	"github.com/srtdeck/srtdeck/session"
	"github.com/srtdeck/srtdeck/style"
	"github.com/srtdeck/srtdeck/tui"
	"github.com/srtdeck/srtdeck/util"
	"github.com/srtdeck/srtdeck/version"
)

var slotShorthands = map[cue.Slot]string{
	cue.Primary:   "p",
	cue.Secondary: "s",
	cue.Extra:     "x",
}

func init() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	for _, slot := range cue.Slots() {
		rootCmd.Flags().StringP(string(slot), slotShorthands[slot], "", fmt.Sprintf("Load the %s subtitle track from a file path or http(s) URL", slot))
	}

	rootCmd.Flags().String("socket", "", "Attach to an mpv instance already listening on this IPC socket instead of starting one")
	rootCmd.Flags().StringP("title", "t", "", "Title shown in the player window and the page header")

	rootCmd.Flags().BoolP("continue", "c", false, "Resume the most recent session with its media, tracks and position")

	rootCmd.MarkFlagsMutuallyExclusive("continue", "socket")

	rootCmd.Flags().String("player", "", "Media player executable")
	lo.Must0(viper.BindPFlag(key.PlayerBinary, rootCmd.Flags().Lookup("player")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(context.Background(), cmd.OutOrStdout())
	})
}

// rootCmd defines the entry point for the srtdeck application.
var rootCmd = &cobra.Command{
	Use:   constant.App + " [media]",
	Short: "A terminal subtitle deck for mpv",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal subtitle deck for mpv"),
	Example: fmt.Sprintf(`  %[1]s talk.mkv --primary talk.en.srt --secondary https://example.com/talk.de.srt
  %[1]s --socket /tmp/mpv.sock -p talk.en.srt`, constant.App),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		socket := lo.Must(cmd.Flags().GetString("socket"))
		title := lo.Must(cmd.Flags().GetString("title"))
		tracks := make(map[cue.Slot]string)
		var start float64

		if lo.Must(cmd.Flags().GetBool("continue")) {
			latest, err := history.Latest()
			handleErr(err)

			saved, ok := latest.Get()
			if !ok {
				handleErr(errors.New("no session to continue"))
			}

			args = []string{saved.Media}
			title = lo.Ternary(title != "", title, saved.Title)
			tracks = lo.Assign(tracks, saved.Tracks)
			start = saved.Position
		}

		if len(args) == 0 && socket == "" {
			handleErr(cmd.Help())
			return
		}

		for _, slot := range cue.Slots() {
			if src := lo.Must(cmd.Flags().GetString(string(slot))); src != "" {
				tracks[slot] = src
			}
		}

		media := lo.FirstOr(args, "")
		if title == "" && media != "" {
			title = util.SourceName(media)
		}

		widget, err := openWidget(media, socket, title, start)
		handleErr(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		err = tui.Run(ctx, widget, &tui.Options{
			Title:   title,
			Session: session.OptionsFromConfig(tracks),
		})

		if media != "" && socket == "" && viper.GetBool(key.HistorySaveOnExit) {
			saveSession(widget, media, title, tracks)
		}

		if closeErr := widget.Close(); closeErr != nil {
			log.Warnf("close player: %v", closeErr)
		}
		handleErr(err)
	},
}

// saveSession records the session for --continue, with the last known position.
func saveSession(widget player.Widget, media, title string, tracks map[cue.Slot]string) {
	position, err := widget.CurrentTime()
	if err != nil {
		log.Debugf("no final position: %v", err)
		position = 0
	}

	err = history.Save(&history.SavedSession{
		Media:    media,
		Title:    title,
		Tracks:   tracks,
		Position: position,
		SavedAt:  time.Now(),
	})
	if err != nil {
		log.Warnf("save history: %v", err)
	}
}

// openWidget attaches to a running player when a socket is given and spawns one otherwise.
func openWidget(media, socket, title string, start float64) (*player.MPV, error) {
	if socket != "" {
		player.API.Resolve(nil)
		return player.Attach(socket)
	}

	binary := viper.GetString(key.PlayerBinary)
	CheckDependencies(binary)
	player.LoadAPI(binary)

	widget := player.NewMPV(binary)
	widget.StartAt(start)
	if err := widget.Play(media, title); err != nil {
		return nil, errors.Join(err, widget.Close())
	}
	return widget, nil
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
