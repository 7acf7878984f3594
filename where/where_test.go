package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/srtdeck/srtdeck/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Prefs() should live in the config directory", func() {
			So(filepath.Dir(Prefs()), ShouldEqual, Config())
		})

		Convey("Config() should honour the override variable", func() {
			t.Setenv(EnvConfigPath, "/custom/srtdeck")
			So(Config(), ShouldEqual, "/custom/srtdeck")
			So(lo.Must(filesystem.API().IsDir("/custom/srtdeck")), ShouldBeTrue)
		})
	})
}
