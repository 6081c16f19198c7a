package skills

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	skillsrepo "github.com/KirkDiggler/character-sheet/internal/repositories/skills"
)

// ReadSkills parses a CSV with name and description columns, in any case and
// order. Rows without a name are skipped.
func ReadSkills(r io.Reader) ([]*skillsrepo.Skill, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, sheeterr.InvalidArgument("csv is empty")
	}
	if err != nil {
		return nil, sheeterr.InvalidArgumentf("reading csv header: %v", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range []string{"name", "description"} {
		if _, ok := cols[want]; !ok {
			return nil, sheeterr.InvalidArgumentf("csv header is missing a %s column", want).
				WithMeta("column", want)
		}
	}

	field := func(record []string, col string) string {
		i := cols[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var found []*skillsrepo.Skill
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, sheeterr.InvalidArgumentf("reading csv: %v", err)
		}

		name := field(record, "name")
		if name == "" {
			continue
		}
		found = append(found, &skillsrepo.Skill{Name: name, Description: field(record, "description")})
	}
	return found, nil
}
