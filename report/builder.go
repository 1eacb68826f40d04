package report

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/fastrep/fastrep/model"
)

// noEntriesMarker is rendered when a period contains no entries.
const noEntriesMarker = "No entries logged for this period."

// Render formats entries into a plain-text report using the named template.
//
// Entries are grouped by project; projects are listed alphabetically and
// entries keep their given order within each group (the store returns them
// date-descending, newest-logged-first within a day). Output is
// deterministic: the same entries and template always produce
// byte-identical text.
func Render(entries []*model.Entry, period Period, templateName string) (string, error) {
	tmpl, err := LookupTemplate(templateName)
	if err != nil {
		return "", err
	}

	grouped, projects, err := groupByProject(entries)
	if err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, fmt.Sprintf(tmpl.headerFormat, period.Label()))
	lines = append(lines, strings.Repeat(tmpl.headerRule, tmpl.ruleWidth))
	lines = append(lines, "")

	if len(entries) == 0 {
		lines = append(lines, noEntriesMarker)
		lines = append(lines, "")
		return strings.Join(lines, "\n"), nil
	}

	for _, project := range projects {
		lines = append(lines, fmt.Sprintf(tmpl.sectionFormat, project))
		if tmpl.sectionRule != "" {
			lines = append(lines, strings.Repeat(tmpl.sectionRule, tmpl.ruleWidth))
		}
		for _, entry := range grouped[project] {
			lines = append(lines, fmt.Sprintf("%s%s - %s",
				tmpl.bullet, entry.Date.Format("01/02"), entry.Description))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n"), nil
}

// RenderHTML formats entries into an HTML fragment for the web dashboard.
// Grouping and ordering match Render exactly; only the decoration differs.
func RenderHTML(entries []*model.Entry, period Period) (string, error) {
	grouped, projects, err := groupByProject(entries)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<p><strong>Report Period:</strong> %s</p>",
		html.EscapeString(period.Label())))

	if len(entries) == 0 {
		sb.WriteString("<p>" + noEntriesMarker + "</p>")
		return sb.String(), nil
	}

	for _, project := range projects {
		sb.WriteString(fmt.Sprintf("<h4>%s</h4>", html.EscapeString(project)))
		sb.WriteString("<ul>")
		for _, entry := range grouped[project] {
			sb.WriteString(fmt.Sprintf("<li><strong>%s</strong> - %s</li>",
				entry.Date.Format("01/02"), html.EscapeString(entry.Description)))
		}
		sb.WriteString("</ul>")
	}

	return sb.String(), nil
}

// groupByProject buckets entries by project, preserving the incoming order
// within each bucket, and returns the project names alphabetically sorted.
// Malformed entries fail the whole render rather than being dropped.
func groupByProject(entries []*model.Entry) (map[string][]*model.Entry, []string, error) {
	grouped := make(map[string][]*model.Entry)
	var projects []string
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, nil, fmt.Errorf("malformed entry %d: %w", entry.ID, err)
		}
		if _, seen := grouped[entry.Project]; !seen {
			projects = append(projects, entry.Project)
		}
		grouped[entry.Project] = append(grouped[entry.Project], entry)
	}
	sort.Strings(projects)
	return grouped, projects, nil
}
