package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/srtdeck/srtdeck/constant"
	"github.com/srtdeck/srtdeck/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

const track = "1\n00:00:01,000 --> 00:00:02,000\nHello\n"

func TestReadSource(t *testing.T) {
	Convey("Given a subtitle server", t, func() {
		agents := make(chan string, 8)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agents <- r.UserAgent()
			switch r.URL.Path {
			case "/talk.srt":
				_, _ = w.Write([]byte(track))
			case "/slow.srt":
				time.Sleep(200 * time.Millisecond)
				_, _ = w.Write([]byte(track))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		Convey("When fetching an existing track", func() {
			text, err := ReadSource(context.Background(), server.URL+"/talk.srt", 1024, time.Second)

			Convey("Then the body is returned", func() {
				So(err, ShouldBeNil)
				So(text, ShouldEqual, track)
				So(<-agents, ShouldEqual, constant.UserAgent)
			})
		})

		Convey("When the server answers 404", func() {
			_, err := ReadSource(context.Background(), server.URL+"/missing.srt", 1024, time.Second)

			Convey("Then ErrStatus is reported", func() {
				So(errors.Is(err, ErrStatus), ShouldBeTrue)
			})
		})

		Convey("When the body exceeds the cap", func() {
			_, err := ReadSource(context.Background(), server.URL+"/talk.srt", 8, time.Second)

			Convey("Then ErrTooLarge is reported", func() {
				So(errors.Is(err, ErrTooLarge), ShouldBeTrue)
			})
		})

		Convey("When the server is slower than the timeout", func() {
			_, err := ReadSource(context.Background(), server.URL+"/slow.srt", 1024, 20*time.Millisecond)

			Convey("Then the fetch fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given a local track", t, func() {
		So(filesystem.API().WriteFile("/subs/talk.srt", []byte(track), 0644), ShouldBeNil)

		Convey("When reading it by path", func() {
			text, err := ReadSource(context.Background(), "/subs/talk.srt", 1024, 0)

			Convey("Then the file content is returned", func() {
				So(err, ShouldBeNil)
				So(text, ShouldEqual, track)
			})
		})

		Convey("When it is larger than the cap", func() {
			_, err := ReadSource(context.Background(), "/subs/talk.srt", 4, 0)

			Convey("Then ErrTooLarge is reported", func() {
				So(errors.Is(err, ErrTooLarge), ShouldBeTrue)
			})
		})

		Convey("When the path does not exist", func() {
			_, err := ReadSource(context.Background(), "/subs/none.srt", 1024, 0)

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestIsRemote(t *testing.T) {
	Convey("IsRemote", t, func() {
		So(IsRemote("https://example.com/a.srt"), ShouldBeTrue)
		So(IsRemote("HTTP://example.com/a.srt"), ShouldBeTrue)
		So(IsRemote("/home/me/a.srt"), ShouldBeFalse)
		So(IsRemote(`C:\subs\a.srt`), ShouldBeFalse)
		So(IsRemote(strings.Repeat("x", 3)), ShouldBeFalse)
	})
}
