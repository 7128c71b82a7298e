// Package model contains domain models passed between layers.
package model

// AttributeScore is one attribute rating from a character export, e.g.
// {"id": "ATTR_1", "value": 14}. Value is nil when the key is absent or null.
type AttributeScore struct {
	ID    string `json:"id"`
	Value *int   `json:"value"`
}

// AttributeBlock mirrors the "attr" object of an Optolith character export.
type AttributeBlock struct {
	Values []AttributeScore `json:"values"`
}

// CharacterRecord is the subset of a character export the assembler reads.
// A nil Attributes, nil Attributes.Values or nil Talents means the key was
// absent from the source document. A nil talent level means the export held
// null for it.
type CharacterRecord struct {
	Name       string          `json:"name,omitempty"`
	Attributes *AttributeBlock `json:"attr"`
	Talents    map[string]*int `json:"talents"`
}

// TalentDefinition maps a talent to the three attributes governing its check.
type TalentDefinition struct {
	ID     string `json:"id"     yaml:"id"`
	Name   string `json:"name"   yaml:"name"`
	Check1 string `json:"check1" yaml:"check1"`
	Check2 string `json:"check2" yaml:"check2"`
	Check3 string `json:"check3" yaml:"check3"`
}

// Checks returns the three attribute references in check order.
func (d TalentDefinition) Checks() [3]string {
	return [3]string{d.Check1, d.Check2, d.Check3}
}
