package render

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/okian/talentroll/internal/domain/model"
)

// Table writes the assembled talent table: id, name, checks, thresholds and
// skill level, one row per talent in assembly order.
func (t *Text) Table(w io.Writer, rows []model.AssembledTalent) error {
	p := t.printer
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "id\t%s\t%s\t\t\t%s\n", "talent", p.Sprintf(msgChecks), p.Sprintf(msgSkill))
	for _, row := range rows {
		skill := "-"
		if level, ok := row.Level(); ok {
			skill = strconv.Itoa(level)
		}
		fmt.Fprintf(tw, "%s\t%s", row.ID, row.Name)
		for i := range row.Attributes {
			fmt.Fprintf(tw, "\t%s %d", AttributeName(row.Attributes[i]), row.Thresholds[i])
		}
		fmt.Fprintf(tw, "\t%s\n", skill)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
