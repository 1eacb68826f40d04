package report

import (
	"fmt"
	"sort"

	"github.com/fastrep/fastrep/model"
)

// DefaultTemplate is the template used when none is selected.
const DefaultTemplate = "classic"

// Template is a named visual style. Templates differ only in decoration;
// grouping and data selection are identical for every template.
type Template struct {
	name          string
	headerFormat  string // fmt verb receives the period label
	headerRule    string // character repeated under the header
	sectionFormat string // fmt verb receives the project name
	sectionRule   string // character repeated under each section, "" for none
	bullet        string // prefix of each entry line
	ruleWidth     int
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.name
}

var templates = map[string]*Template{
	"classic": {
		name:          "classic",
		headerFormat:  "Report Period: %s",
		headerRule:    "=",
		sectionFormat: "Project: %s",
		sectionRule:   "-",
		bullet:        "  * ",
		ruleWidth:     60,
	},
	"bold": {
		name:          "bold",
		headerFormat:  "REPORT PERIOD: %s",
		headerRule:    "#",
		sectionFormat: "## %s ##",
		sectionRule:   "#",
		bullet:        "  * ",
		ruleWidth:     60,
	},
	"modern": {
		name:          "modern",
		headerFormat:  "Report Period: %s",
		headerRule:    "─",
		sectionFormat: "▸ %s",
		sectionRule:   "─",
		bullet:        "  • ",
		ruleWidth:     60,
	},
}

// LookupTemplate returns the template with the given name.
// An empty name selects DefaultTemplate.
func LookupTemplate(name string) (*Template, error) {
	if name == "" {
		name = DefaultTemplate
	}
	t, ok := templates[name]
	if !ok {
		return nil, model.NewValidationError(fmt.Sprintf("unknown template: %q", name))
	}
	return t, nil
}

// TemplateNames returns the available template names in alphabetical order.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
