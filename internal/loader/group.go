package loader

import (
	"regexp"
	"strings"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

var placeholder = regexp.MustCompile("(?i)" + regexp.QuoteMeta(sheetload.WorksheetNamePlaceholder))

// Group is the set of records bound for one table.
type Group struct {
	Table   string
	Records []sheetload.ImportRecord
}

// TableName substitutes the worksheet name into a table name template.
// The placeholder is matched case-insensitively.
func TableName(template, worksheet string) string {
	return placeholder.ReplaceAllLiteralString(template, worksheet)
}

// GroupRecords splits records by destination table. A template holding the
// worksheet placeholder yields one group per worksheet, in order of first
// appearance; any other name yields a single group.
func GroupRecords(records []sheetload.ImportRecord, template string) []Group {
	if len(records) == 0 {
		return nil
	}
	if !placeholder.MatchString(template) {
		return []Group{{Table: strings.TrimSpace(template), Records: records}}
	}

	var groups []Group
	index := make(map[string]int)
	for _, rec := range records {
		i, ok := index[rec.WorksheetName]
		if !ok {
			i = len(groups)
			index[rec.WorksheetName] = i
			groups = append(groups, Group{Table: strings.TrimSpace(TableName(template, rec.WorksheetName))})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}
