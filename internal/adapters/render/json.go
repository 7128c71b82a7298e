package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/talentroll/internal/domain/model"
)

// JSON renders Results as a single document with outcomes in ascending order.
type JSON struct {
	Indent string
}

type jsonResults struct {
	RunID   string        `json:"run_id"`
	Seed    uint64        `json:"seed"`
	Trials  int           `json:"trials"`
	Talents []jsonTalent  `json:"talents"`
	Skipped []jsonSkipped `json:"skipped,omitempty"`
}

type jsonTalent struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Checks             [3]string     `json:"checks"`
	Thresholds         [3]int        `json:"thresholds"`
	SkillLevel         int           `json:"skill_level"`
	Learned            bool          `json:"learned"`
	Trials             int           `json:"trials"`
	SuccessProbability float64       `json:"success_probability"`
	Distribution       []jsonOutcome `json:"distribution"`
}

type jsonOutcome struct {
	Needed      int     `json:"needed"`
	Count       int     `json:"count"`
	Probability float64 `json:"probability"`
}

type jsonSkipped struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Render implements Renderer.
func (j *JSON) Render(w io.Writer, results *model.Results) error {
	doc := jsonResults{
		RunID:   results.RunID,
		Seed:    results.Seed,
		Trials:  results.Trials,
		Talents: make([]jsonTalent, 0, len(results.Talents)),
	}
	for _, tr := range results.Talents {
		level, learned := tr.Talent.Level()
		t := jsonTalent{
			ID:                 tr.Talent.ID,
			Name:               tr.Talent.Name,
			Checks:             tr.Talent.Attributes,
			Thresholds:         tr.Talent.Thresholds,
			SkillLevel:         level,
			Learned:            learned,
			Trials:             tr.Trials,
			SuccessProbability: tr.Distribution.Success(),
		}
		for _, outcome := range tr.Distribution.Outcomes() {
			t.Distribution = append(t.Distribution, jsonOutcome{
				Needed:      outcome,
				Count:       tr.Tally[outcome],
				Probability: tr.Distribution[outcome],
			})
		}
		doc.Talents = append(doc.Talents, t)
	}
	for _, s := range results.Skipped {
		doc.Skipped = append(doc.Skipped, jsonSkipped{ID: s.ID, Name: s.Name})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", j.Indent)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
