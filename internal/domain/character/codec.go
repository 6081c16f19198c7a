package character

import (
	"encoding/json"

	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

// Export renders the sheet as the JSON document players share and back up
func Export(c *Character) ([]byte, error) {
	if c == nil {
		return nil, sheeterr.InvalidArgument("character cannot be nil")
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, sheeterr.WrapWithCode(err, sheeterr.CodeInternal, "failed to export character")
	}
	return data, nil
}

// Decode parses a document without checking invariants. Anything that parses
// as a character object is accepted.
func Decode(data []byte) (*Character, error) {
	var c Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, sheeterr.WrapWithCode(err, sheeterr.CodeInvalidArgument, "failed to parse character document")
	}
	return &c, nil
}

// Import parses a document and rejects it unless Validate passes
func Import(data []byte) (*Character, error) {
	c, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, sheeterr.WrapWithCode(err, sheeterr.CodeInvalidArgument, "invalid character document")
	}
	return c, nil
}

// Clone returns a deep copy made through the document form. A nil character
// clones to nil.
func (c *Character) Clone() (*Character, error) {
	if c == nil {
		return nil, nil
	}

	data, err := json.Marshal(c)
	if err != nil {
		return nil, sheeterr.WrapWithCode(err, sheeterr.CodeInternal, "failed to copy character").
			WithMeta("character_id", c.ID)
	}
	clone, err := Decode(data)
	if err != nil {
		return nil, sheeterr.WrapWithCode(err, sheeterr.CodeInternal, "failed to copy character").
			WithMeta("character_id", c.ID)
	}
	return clone, nil
}
