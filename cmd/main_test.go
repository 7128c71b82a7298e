package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	convey.Convey("Given the talentroll binary", t, func() {
		ctx := context.Background()
		hero := filepath.Join("..", "internal", "cli", "testdata", "hero.json")

		convey.Convey("When a simulation succeeds", func() {
			var stdout, stderr bytes.Buffer
			code := run(ctx, []string{"--log-level", "error", "simulate", hero, "-n", "20", "--seed", "9"}, &stdout, &stderr)

			convey.Convey("Then it should exit zero and print results", func() {
				convey.So(code, convey.ShouldEqual, 0)
				convey.So(stdout.String(), convey.ShouldContainSubstring, "Klettern (TAL_3)")
			})
		})

		convey.Convey("When the command fails", func() {
			var stdout, stderr bytes.Buffer
			code := run(ctx, []string{"--log-level", "error", "simulate", "missing.json"}, &stdout, &stderr)

			convey.Convey("Then it should exit one with the error on stderr", func() {
				convey.So(code, convey.ShouldEqual, 1)
				convey.So(stderr.String(), convey.ShouldStartWith, "error: read character")
				convey.So(stdout.Len(), convey.ShouldEqual, 0)
			})
		})
	})
}
