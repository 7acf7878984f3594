// Package inline implements the non-interactive, scriptable inspection of subtitle tracks.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/srtdeck/srtdeck/cue"
	"github.com/srtdeck/srtdeck/log"
	"github.com/srtdeck/srtdeck/network"
)

// Run reads and parses the source, applies the selection and writes the result.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	raw, err := network.ReadSource(ctx, options.Source, options.MaxBytes, options.Timeout)
	if err != nil {
		return err
	}

	track := cue.Parse(raw)
	log.Infof("parsed %d cues from %s", len(track), options.Source)

	selected, err := selectCues(track, options)
	if err != nil {
		return err
	}

	if options.Json {
		return writeJson(options.Out, options.Source, track, selected)
	}

	for i, c := range selected {
		if i > 0 {
			fmt.Fprintln(options.Out)
		}
		writeCue(options.Out, c)
	}

	return nil
}

func selectCues(track cue.Track, options *Options) (cue.Track, error) {
	selected := track

	if at, ok := options.At.Get(); ok {
		selected = cue.Track{}
		if active, ok := track.Active(at).Get(); ok {
			selected = cue.Track{active}
		}
	}

	if query, ok := options.Query.Get(); ok {
		selected = selected.Search(query)
	}

	if filter, ok := options.Filter.Get(); ok {
		return filter(selected)
	}

	return selected, nil
}

// writeCue prints one cue the way it appears in a subtitle file.
func writeCue(out io.Writer, c cue.Cue) {
	fmt.Fprintf(out, "%d\n%s --> %s\n%s\n", c.Index, cue.FormatTimestamp(c.StartMs), cue.FormatTimestamp(c.EndMs), strings.TrimRight(c.Text, "\n"))
}

func writeJson(out io.Writer, source string, track, selected cue.Track) error {
	data, err := asJson(source, track, selected)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
