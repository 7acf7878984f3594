// Package main is the entry point for the srtdeck application.
package main

import (
	"github.com/samber/lo"
	"github.com/srtdeck/srtdeck/cmd"
	"github.com/srtdeck/srtdeck/config"
	"github.com/srtdeck/srtdeck/internal/cache"
	"github.com/srtdeck/srtdeck/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
