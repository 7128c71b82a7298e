// Package assembler merges a talent-to-attribute mapping with a character
// record into the table of talents consumed by the simulator.
package assembler

import (
	"fmt"
	"sort"

	"github.com/okian/talentroll/internal/domain/model"
)

// Assemble produces one AssembledTalent per definition, in definition order.
// Check references are resolved to the character's attribute values. Talents
// the character never learned keep a nil SkillLevel. Duplicate definitions
// yield duplicate rows.
//
// The whole input is validated before any row is returned: a missing "attr",
// "attr.values" or "talents" key, an attribute without id or value, a null or
// negative talent level, or a definition without id, name or check fails with
// ErrMalformedInput; a check naming an unknown attribute fails with
// ErrUnresolvedReference.
func Assemble(character model.CharacterRecord, defs []model.TalentDefinition) ([]model.AssembledTalent, error) {
	attrs, err := attributeLookup(character)
	if err != nil {
		return nil, err
	}
	levels, err := talentLevels(character)
	if err != nil {
		return nil, err
	}

	out := make([]model.AssembledTalent, 0, len(defs))
	for i, def := range defs {
		if err := validateDefinition(i, def); err != nil {
			return nil, err
		}

		row := model.AssembledTalent{
			ID:         def.ID,
			Name:       def.Name,
			Attributes: def.Checks(),
		}
		for c, ref := range row.Attributes {
			value, ok := attrs[ref]
			if !ok {
				return nil, fmt.Errorf("%w: talent %q (%s) check%d references %q",
					ErrUnresolvedReference, def.Name, def.ID, c+1, ref)
			}
			row.Thresholds[c] = value
		}
		if level, ok := levels[def.ID]; ok {
			row.SkillLevel = &level
		}
		out = append(out, row)
	}
	return out, nil
}

func attributeLookup(character model.CharacterRecord) (map[string]int, error) {
	if character.Attributes == nil {
		return nil, fmt.Errorf("%w: character record has no \"attr\" object", ErrMalformedInput)
	}
	if character.Attributes.Values == nil {
		return nil, fmt.Errorf("%w: character record has no \"attr.values\" list", ErrMalformedInput)
	}

	attrs := make(map[string]int, len(character.Attributes.Values))
	for i, a := range character.Attributes.Values {
		if a.ID == "" {
			return nil, fmt.Errorf("%w: attribute %d has no id", ErrMalformedInput, i)
		}
		if a.Value == nil {
			return nil, fmt.Errorf("%w: attribute %d (%q) has no value", ErrMalformedInput, i, a.ID)
		}
		attrs[a.ID] = *a.Value
	}
	return attrs, nil
}

// talentLevels checks every skill level in the record, in id order so the
// reported talent is stable.
func talentLevels(character model.CharacterRecord) (map[string]int, error) {
	if character.Talents == nil {
		return nil, fmt.Errorf("%w: character record has no \"talents\" map", ErrMalformedInput)
	}

	ids := make([]string, 0, len(character.Talents))
	for id := range character.Talents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	levels := make(map[string]int, len(ids))
	for _, id := range ids {
		level := character.Talents[id]
		switch {
		case level == nil:
			return nil, fmt.Errorf("%w: talent %q has a null skill level", ErrMalformedInput, id)
		case *level < 0:
			return nil, fmt.Errorf("%w: talent %q has negative skill level %d", ErrMalformedInput, id, *level)
		}
		levels[id] = *level
	}
	return levels, nil
}

func validateDefinition(i int, def model.TalentDefinition) error {
	missing := ""
	switch {
	case def.ID == "":
		missing = "id"
	case def.Name == "":
		missing = "name"
	case def.Check1 == "":
		missing = "check1"
	case def.Check2 == "":
		missing = "check2"
	case def.Check3 == "":
		missing = "check3"
	}
	if missing != "" {
		return fmt.Errorf("%w: talent definition %d (%q) has no %s", ErrMalformedInput, i, def.ID, missing)
	}
	return nil
}
