package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When it is initialized", func() {
			So(InitWithWriter(io.Discard), ShouldBeNil)

			Convey("Then Get returns a usable logger", func() {
				So(Get(), ShouldNotBeNil)
			})
		})

		Convey("When it is initialized with a nil writer", func() {
			err := InitWithWriter(nil)

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging an error with fields", func() {
			Named("fetcher").Error(ctx, "request failed", String("endpoint", "/health"), Error(errors.New("boom")))

			Convey("Then the record carries the message, component and fields", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "request failed")
				So(out, ShouldContainSubstring, "component=fetcher")
				So(out, ShouldContainSubstring, "endpoint=/health")
				So(out, ShouldContainSubstring, "error=boom")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When With adds fields", func() {
			Get().With(String("fetch_id", "abc")).Info(ctx, "done")

			Convey("Then they appear in the record", func() {
				So(buf.String(), ShouldContainSubstring, "fetch_id=abc")
			})
		})

		Convey("When the level is raised to error", func() {
			So(SetLevelString("error"), ShouldBeNil)
			defer func() { _ = SetLevelString("info") }()
			Get().Info(ctx, "hidden")

			Convey("Then info records are dropped", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "info", "", "WARN", "warning", "error"} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
		_ = SetLevelString("info")
	})
}

func TestNop(t *testing.T) {
	Convey("Given a nop logger", t, func() {
		So(func() { Nop().Named("x").Error(context.Background(), "ignored") }, ShouldNotPanic)
	})
}
