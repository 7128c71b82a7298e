package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/message"

	"github.com/okian/talentroll/internal/domain/model"
)

// Text renders one block per talent: needed points, probability and
// cumulative probability, followed by the success share.
type Text struct {
	printer *message.Printer
}

// NewText returns a text renderer using p for labels and numbers.
func NewText(p *message.Printer) *Text {
	return &Text{printer: p}
}

// Render implements Renderer.
func (t *Text) Render(w io.Writer, results *model.Results) error {
	p := t.printer
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	seed := strconv.FormatUint(results.Seed, 10)
	p.Fprintf(tw, msgHeader, results.RunID, seed, results.Trials)
	fmt.Fprintln(tw)

	for _, tr := range results.Talents {
		fmt.Fprintln(tw)
		t.talent(tw, tr)
	}

	if len(results.Skipped) > 0 {
		names := make([]string, len(results.Skipped))
		for i, s := range results.Skipped {
			names[i] = s.Name
		}
		fmt.Fprintln(tw)
		p.Fprintf(tw, msgSkipped, strings.Join(names, ", "))
		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (t *Text) talent(w io.Writer, tr model.TalentResult) {
	p := t.printer
	row := tr.Talent

	checks := make([]string, len(row.Attributes))
	thresholds := make([]string, len(row.Thresholds))
	for i := range row.Attributes {
		checks[i] = AttributeName(row.Attributes[i])
		thresholds[i] = strconv.Itoa(row.Thresholds[i])
	}
	skill := p.Sprintf(msgNotLearned)
	if level, ok := row.Level(); ok {
		skill = strconv.Itoa(level)
	}

	fmt.Fprintf(w, "%s (%s)  %s %s %s  %s %s\n",
		row.Name, row.ID,
		p.Sprintf(msgChecks), strings.Join(checks, "/"), strings.Join(thresholds, "/"),
		p.Sprintf(msgSkill), skill)

	fmt.Fprintf(w, "%s\t%s\t%s\n", p.Sprintf(msgNeeded), p.Sprintf(msgProb), p.Sprintf(msgCumulative))
	cumulative := 0.0
	for _, outcome := range tr.Distribution.Outcomes() {
		prob := tr.Distribution[outcome]
		cumulative += prob
		fmt.Fprintf(w, "%d\t%s\t%s\n", outcome, percent(p, prob), percent(p, cumulative))
	}
	fmt.Fprintf(w, "%s\t%s\t\n", p.Sprintf(msgSuccess), percent(p, tr.Distribution.Success()))
}

func percent(p *message.Printer, v float64) string {
	return p.Sprintf("%.2f%%", v*100)
}
