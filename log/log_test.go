package log

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/filesystem"
	"github.com/srtdeck/srtdeck/key"
	"github.com/srtdeck/srtdeck/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup should succeed and leave logging off", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeFalse)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "warn")
		defer viper.Set(key.LogsWrite, false)

		Convey("Warnings should land in the daily file", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeTrue)

			Warnf("track %s failed", "primary")

			path := filepath.Join(where.Logs(), fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
			contents := string(lo.Must(filesystem.API().ReadFile(path)))
			So(strings.Contains(contents, "track primary failed"), ShouldBeTrue)
		})
	})
}
