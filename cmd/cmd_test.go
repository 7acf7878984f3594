package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/config"
	"github.com/srtdeck/srtdeck/filesystem"
	"github.com/srtdeck/srtdeck/inline"
	"github.com/srtdeck/srtdeck/key"
)

const talk = `1
00:00:01,000 --> 00:00:02,000
Hello there.

2
00:00:02,500 --> 00:00:04,000
General Kenobi!
`

func init() {
	filesystem.SetMemMapFs()
	if err := config.Setup(); err != nil {
		panic(err)
	}
	viper.Set(key.CliVersionCheck, false)
}

func execute(args ...string) string {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	So(rootCmd.Execute(), ShouldBeNil)
	return out.String()
}

func TestInspectionCommands(t *testing.T) {
	if err := filesystem.API().WriteFile("/subs/talk.srt", []byte(talk), 0644); err != nil {
		t.Fatal(err)
	}
	if err := filesystem.API().MkdirAll("/out", 0755); err != nil {
		t.Fatal(err)
	}

	Convey("Given a subtitle file", t, func() {
		Convey("When parsed as JSON", func() {
			out := execute("parse", "/subs/talk.srt", "--json", "--cues", "last", "--output", "")

			Convey("Then the selected cues are printed", func() {
				var output inline.Output
				So(json.Unmarshal([]byte(out), &output), ShouldBeNil)
				So(output.Total, ShouldEqual, 2)
				So(output.Cues, ShouldHaveLength, 1)
				So(output.Cues[0].Text, ShouldEqual, "General Kenobi!")
			})
		})

		Convey("When parsed into an output file", func() {
			execute("parse", "/subs/talk.srt", "--json=false", "--cues", "all", "--output", "/out/talk.txt")

			Convey("Then the file holds the cues", func() {
				data, err := filesystem.API().ReadFile("/out/talk.txt")
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "00:00:02,500 --> 00:00:04,000")
			})
		})

		Convey("When looked up at an offset", func() {
			out := execute("lookup", "/subs/talk.srt", "--at", "00:00:01,500", "--search", "", "--json=false")

			Convey("Then the active cue is printed", func() {
				So(out, ShouldContainSubstring, "Hello there.")
				So(out, ShouldNotContainSubstring, "Kenobi")
			})
		})

		Convey("When the parse schema is generated", func() {
			out := execute("parse", "schema")

			Convey("Then it describes the output", func() {
				So(out, ShouldContainSubstring, `"duration_ms"`)
				So(out, ShouldContainSubstring, `"cues"`)
			})
		})
	})
}

func TestWhere(t *testing.T) {
	Convey("Given the where command", t, func() {
		Convey("Then the preferences path can be printed alone", func() {
			out := execute("where", "--prefs")
			So(out, ShouldContainSubstring, "prefs.json")
			So(out, ShouldNotContainSubstring, "--config")
		})
	})
}
