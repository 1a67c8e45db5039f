package display

import (
	"strings"
	"unicode/utf8"
)

// Field is one labelled line of a summary block.
type Field struct {
	Label string
	Value string
}

// RenderFields aligns labels into a "Label:  value" block with the same
// indent as Table. Fields with an empty value are skipped.
func RenderFields(fields []Field) string {
	width := 0
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		if n := utf8.RuneCountInString(f.Label); n > width {
			width = n
		}
	}

	var sb strings.Builder
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		sb.WriteString("  " + Gray(pad(f.Label+":", width+1)) + " " + f.Value + "\n")
	}
	return sb.String()
}
