package render

import (
	"sort"
	"strings"

	"github.com/maplepath/api/internal/models"
)

type RGB struct{ R, G, B int }

// Format is a named visual style. Every format keeps the same section order;
// only typography and colour change.
type Format struct {
	Name        string
	Font        string // Helvetica, Times or Courier; fpdf falls back to it when the embedded face fails
	Accent      RGB
	NameSize    float64
	HeadingSize float64
	BodySize    float64
	HeadingRule bool
}

var DefaultFormat = Format{
	Name:        models.FormatCanadian,
	Font:        "Helvetica",
	Accent:      RGB{0x2c, 0x5a, 0xa0},
	NameSize:    18,
	HeadingSize: 12,
	BodySize:    10,
	HeadingRule: true,
}

var formats = map[string]Format{
	models.FormatCanadian: DefaultFormat,
	"modern": {
		Name:        "modern",
		Font:        "Helvetica",
		Accent:      RGB{0x1a, 0x7f, 0x72},
		NameSize:    22,
		HeadingSize: 12,
		BodySize:    10,
		HeadingRule: false,
	},
	"minimal": {
		Name:        "minimal",
		Font:        "Times",
		Accent:      RGB{0x33, 0x33, 0x33},
		NameSize:    16,
		HeadingSize: 11,
		BodySize:    10,
		HeadingRule: false,
	},
}

// LookupFormat resolves a format by name. Unknown or empty names get the
// default layout and ok=false, so export never fails on a bad name.
func LookupFormat(name string) (f Format, ok bool) {
	f, ok = formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return DefaultFormat, false
	}
	return f, true
}

func FormatNames() []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
