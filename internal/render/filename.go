package render

import (
	"strings"
)

const MediaTypePDF = "application/pdf"

// FileName builds CV_{Full_Name}_{suffix}.pdf. suffix is the record id for the
// default export or the requested format name. Both parts are made safe for a
// Content-Disposition header.
func FileName(fullName, suffix string) string {
	name := filePart(fullName)
	if name == "" {
		name = "Resume"
	}
	return "CV_" + name + "_" + filePart(suffix) + ".pdf"
}

func filePart(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '"', '/', '\\', '\r', '\n', ';':
			return -1
		}
		return r
	}, strings.Join(strings.Fields(s), "_"))
}
