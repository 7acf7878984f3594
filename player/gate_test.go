package player

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGate(t *testing.T) {
	Convey("Given an unresolved gate", t, func() {
		gate := NewGate()

		Convey("When waiting with a deadline", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()

			Convey("Then the context error is returned", func() {
				So(errors.Is(gate.Wait(ctx), context.DeadlineExceeded), ShouldBeTrue)
			})
		})

		Convey("When resolved more than once", func() {
			first := errors.New("first")
			gate.Resolve(first)
			gate.Resolve(nil)

			Convey("Then every waiter sees the first outcome", func() {
				for i := 0; i < 3; i++ {
					So(gate.Wait(context.Background()), ShouldEqual, first)
				}
			})
		})

		Convey("When many sessions wait concurrently", func() {
			results := make(chan error, 4)
			for i := 0; i < 4; i++ {
				go func() { results <- gate.Wait(context.Background()) }()
			}
			gate.Resolve(nil)

			Convey("Then all of them are released", func() {
				for i := 0; i < 4; i++ {
					So(<-results, ShouldBeNil)
				}
			})
		})
	})
}
