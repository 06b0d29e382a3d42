package setupfile

import (
	"strings"

	"github.com/matzehuels/autogen/pkg/errors"
	"github.com/matzehuels/autogen/pkg/project"
)

// FileName is the generated file.
const FileName = "setup.py"

// Marker lines delimiting the user region.
const (
	BeginMarker = "########## EDIT BELOW THIS LINE ONLY ##########"
	EndMarker   = "########## EDIT ABOVE THIS LINE ONLY ##########"
)

// DefaultRegion is the user region of a freshly generated file.
const DefaultRegion = "\n\n"

const header = `"""
This file is automatically generated by the autogen package.
Please edit the marked area only. Other areas will be
overwritten when autogen is rerun.
"""

from setuptools import setup

`

const footer = "\nsetup(**params)\n"

// Marker texts searched for in an existing file. The hash decoration around
// them is not required, so reformatted marker lines are still found.
const (
	beginText = "EDIT BELOW THIS LINE ONLY"
	endText   = "EDIT ABOVE THIS LINE ONLY"
)

// UserRegion extracts the lines strictly between the first line containing
// the begin marker text and the first line containing the end marker text,
// line endings included.
func UserRegion(src string) (string, error) {
	lines := strings.SplitAfter(src, "\n")
	begin, end := -1, -1
	for i, line := range lines {
		if begin < 0 && strings.Contains(line, beginText) {
			begin = i
		}
		if end < 0 && strings.Contains(line, endText) {
			end = i
		}
	}
	if begin < 0 || end < 0 {
		return "", errors.New(errors.ErrCodeMissingMarkers,
			"%s has no autogen marker lines; restore %q and %q or delete the file to start over",
			FileName, BeginMarker, EndMarker)
	}
	if end <= begin {
		return "", nil
	}
	return strings.Join(lines[begin+1:end], ""), nil
}

// Render produces the unformatted setup.py for params around region.
func Render(params project.Params, region string) []byte {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("params = dict(\n")
	for i, p := range params {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("    ")
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(Literal(p.Value))
	}
	// The closing paren shares the last parameter line.
	b.WriteString(")\n\n")
	b.WriteString(BeginMarker + "\n")
	b.WriteString(region)
	if region != "" && !strings.HasSuffix(region, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(EndMarker + "\n")
	b.WriteString(footer)
	return []byte(b.String())
}
