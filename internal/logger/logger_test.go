package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"feedback-backend/internal/logger"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		So(logger.SetLevelString("info"), ShouldBeNil)
		var buf bytes.Buffer
		log := logger.New(&buf).Named("enrichment")

		Convey("Info records carry the component and fields", func() {
			log.Info(context.Background(), "artifact generated", logger.String("artifact", "summary"), logger.Int("rating", 4))
			out := buf.String()
			So(out, ShouldContainSubstring, "artifact generated")
			So(out, ShouldContainSubstring, "component=enrichment")
			So(out, ShouldContainSubstring, "artifact=summary")
			So(out, ShouldContainSubstring, "rating=4")
		})

		Convey("Debug records are dropped at info level", func() {
			log.Debug(context.Background(), "hidden")
			So(buf.String(), ShouldBeEmpty)
		})

		Convey("Error fields are rendered", func() {
			log.Error(context.Background(), "insert failed", logger.Error(errors.New("boom")))
			So(buf.String(), ShouldContainSubstring, "error=boom")
		})
	})

	Convey("SetLevelString rejects unknown levels", t, func() {
		So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		So(logger.SetLevelString("WARNING"), ShouldBeNil)
		So(logger.SetLevelString("info"), ShouldBeNil)
	})
}
