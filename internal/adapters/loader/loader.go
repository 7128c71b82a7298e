// Package loader reads character exports and talent mappings into domain
// records. It only decodes; structural validation belongs to the assembler.
package loader

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/okian/talentroll/internal/domain/model"
)

//go:embed data/talent_mapping.yaml
var defaultMapping []byte

// ReadCharacter loads an Optolith character export from path.
func ReadCharacter(path string) (model.CharacterRecord, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return model.CharacterRecord{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	defer func() { _ = f.Close() }()

	rec, err := DecodeCharacter(f)
	if err != nil {
		return model.CharacterRecord{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// DecodeCharacter decodes one character export document from r.
func DecodeCharacter(r io.Reader) (model.CharacterRecord, error) {
	var rec model.CharacterRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return model.CharacterRecord{}, fmt.Errorf("%w: character: %w", ErrDecodeInput, err)
	}
	return rec, nil
}

// ReadMapping loads a talent mapping from path. YAML and JSON files are both
// accepted.
func ReadMapping(path string) ([]model.TalentDefinition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	defs, err := DecodeMapping(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// DecodeMapping decodes a list of talent definitions, keeping document order.
func DecodeMapping(data []byte) ([]model.TalentDefinition, error) {
	var defs []model.TalentDefinition
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: mapping: empty document", ErrDecodeInput)
	}
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("%w: mapping: %w", ErrDecodeInput, err)
	}
	return defs, nil
}

// DefaultMapping returns the bundled DSA5 talent mapping.
func DefaultMapping() []model.TalentDefinition {
	defs, err := DecodeMapping(defaultMapping)
	if err != nil {
		panic(fmt.Sprintf("loader: bundled talent mapping: %v", err))
	}
	return defs
}

// Mapping returns the mapping at path, or the bundled one when path is empty.
func Mapping(path string) ([]model.TalentDefinition, error) {
	if path == "" {
		return DefaultMapping(), nil
	}
	return ReadMapping(path)
}
