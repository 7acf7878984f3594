package version

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/color"
	"github.com/srtdeck/srtdeck/constant"
	"github.com/srtdeck/srtdeck/key"
	"github.com/srtdeck/srtdeck/log"
	"github.com/srtdeck/srtdeck/style"
)

// Notify prints an alert to out if a more recent stable version is available.
func Notify(ctx context.Context, out io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	latest, err := Latest(ctx)
	if err != nil {
		log.Warnf("version check: %v", err)
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Fprintf(out, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/srtdeck/srtdeck/releases/tag/v"+latest),
	)
}
