package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentroll/internal/adapters/loader"
	"github.com/okian/talentroll/internal/config"
	"github.com/okian/talentroll/internal/domain/assembler"
)

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func hero() string { return filepath.Join("testdata", "hero.json") }

func TestSimulateCommand(t *testing.T) {
	Convey("Given the simulate command", t, func() {
		Convey("When run with the bundled mapping and JSON output", func() {
			out, _, err := execute("simulate", hero(), "-n", "200", "--seed", "5", "-w", "2", "-f", "json")

			Convey("Then every talent should be in the document", func() {
				So(err, ShouldBeNil)

				var doc struct {
					Seed    uint64 `json:"seed"`
					Trials  int    `json:"trials"`
					Talents []struct {
						ID           string `json:"id"`
						Learned      bool   `json:"learned"`
						Distribution []struct {
							Needed int `json:"needed"`
							Count  int `json:"count"`
						} `json:"distribution"`
					} `json:"talents"`
				}
				So(json.Unmarshal([]byte(out), &doc), ShouldBeNil)
				So(doc.Seed, ShouldEqual, uint64(5))
				So(doc.Trials, ShouldEqual, 200)
				So(len(doc.Talents), ShouldEqual, 59)
				So(doc.Talents[2].ID, ShouldEqual, "TAL_3")
				So(doc.Talents[2].Learned, ShouldBeTrue)

				total := 0
				for _, o := range doc.Talents[2].Distribution {
					So(o.Needed, ShouldBeGreaterThanOrEqualTo, -1)
					total += o.Count
				}
				So(total, ShouldEqual, 200)
			})
		})

		Convey("When unlearned talents are skipped", func() {
			out, _, err := execute("simulate", hero(), "-n", "50", "--seed", "1", "--missing", "skip")

			Convey("Then the text output should list them as skipped", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Klettern (TAL_3)")
				So(out, ShouldContainSubstring, "skipped (not learned): Fliegen")
				So(out, ShouldNotContainSubstring, "Fliegen (TAL_1)")
			})
		})

		Convey("When a metrics textfile is requested", func() {
			path := filepath.Join(t.TempDir(), "talentroll.prom")
			_, _, err := execute("simulate", hero(), "-n", "10", "--seed", "2", "--metrics-textfile", path)

			Convey("Then the exposition should be written", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "talentroll_simulator_trials_total")
			})
		})

		Convey("When the trial count is zero", func() {
			out, _, err := execute("simulate", hero(), "-n", "0")

			Convey("Then it should fail before simulating", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When the format is unknown", func() {
			_, _, err := execute("simulate", hero(), "--format", "xml")

			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the character file is missing", func() {
			_, _, err := execute("simulate", filepath.Join("testdata", "nobody.json"))

			Convey("Then the read error should surface with context", func() {
				So(errors.Is(err, loader.ErrReadInput), ShouldBeTrue)
				So(err.Error(), ShouldStartWith, "read character")
			})
		})

		Convey("When no character is given", func() {
			_, _, err := execute("simulate")

			So(err, ShouldNotBeNil)
		})
	})
}

func TestSimulateFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("TALENTROLL_TRIALS", "0")

	Convey("Given an environment with an invalid trial count", t, func() {
		Convey("When --trials is given", func() {
			out, _, err := execute("simulate", hero(), "--trials", "30", "--seed", "4")

			Convey("Then the flag should win and the run succeed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "30 trials per talent")
			})
		})

		Convey("When --trials is not given", func() {
			_, _, err := execute("simulate", hero())

			Convey("Then the run should fail validation", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}

func TestTalentsCommand(t *testing.T) {
	Convey("Given the talents command", t, func() {
		Convey("When run with the bundled mapping", func() {
			out, _, err := execute("talents", hero())
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

			Convey("Then it should print one row per talent", func() {
				So(err, ShouldBeNil)
				So(len(lines), ShouldEqual, 60)
				So(lines[3], ShouldStartWith, "TAL_3")
				So(lines[3], ShouldContainSubstring, "Klettern")
				So(lines[59], ShouldStartWith, "TAL_59")
			})
		})

		Convey("When the mapping references an unknown attribute", func() {
			_, _, err := execute("talents", hero(), "--mapping", filepath.Join("testdata", "mapping.yaml"))

			Convey("Then the unresolved reference should be reported", func() {
				So(errors.Is(err, assembler.ErrUnresolvedReference), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "ATTR_9")
			})
		})
	})
}
