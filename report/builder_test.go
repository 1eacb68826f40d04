package report

import (
	"strings"
	"testing"
	"time"

	"github.com/fastrep/fastrep/model"
)

// testEntry builds a persisted-looking entry for rendering tests.
func testEntry(t *testing.T, id int64, project, description string, date model.Date) *model.Entry {
	t.Helper()
	entry, err := model.LoadEntry(id, project, description, date,
		time.Date(2024, 11, 22, 9, 0, 0, 0, time.UTC).Add(time.Duration(id)*time.Minute))
	if err != nil {
		t.Fatalf("Failed to build test entry: %v", err)
	}
	return entry
}

// weeklyScenario models the end-to-end case: two projects logged across
// 2024-11-19..21, reported for the week ending 2024-11-22. Entries are in
// store order (date descending).
func weeklyScenario(t *testing.T) ([]*model.Entry, Period) {
	t.Helper()
	entries := []*model.Entry{
		testEntry(t, 3, "API Development", "Added rate limiting", model.NewDate(2024, time.November, 21)),
		testEntry(t, 2, "API Development", "Implemented pagination", model.NewDate(2024, time.November, 20)),
		testEntry(t, 1, "Documentation", "Wrote setup guide", model.NewDate(2024, time.November, 19)),
	}
	period, err := ComputeRange(ModeWeekly, model.NewDate(2024, time.November, 22), nil, nil)
	if err != nil {
		t.Fatalf("ComputeRange failed: %v", err)
	}
	return entries, period
}

func TestRenderClassic(t *testing.T) {
	entries, period := weeklyScenario(t)

	got, err := Render(entries, period, "classic")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := strings.Join([]string{
		"Report Period: 11/16 - 11/22",
		strings.Repeat("=", 60),
		"",
		"Project: API Development",
		strings.Repeat("-", 60),
		"  * 11/21 - Added rate limiting",
		"  * 11/20 - Implemented pagination",
		"",
		"Project: Documentation",
		strings.Repeat("-", 60),
		"  * 11/19 - Wrote setup guide",
		"",
	}, "\n")

	if got != want {
		t.Errorf("Render output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	entries, period := weeklyScenario(t)

	for _, name := range TemplateNames() {
		first, err := Render(entries, period, name)
		if err != nil {
			t.Fatalf("Render(%s) failed: %v", name, err)
		}
		second, err := Render(entries, period, name)
		if err != nil {
			t.Fatalf("Render(%s) failed: %v", name, err)
		}
		if first != second {
			t.Errorf("template %s: repeated renders differ", name)
		}
	}
}

func TestRenderProjectsAlphabetical(t *testing.T) {
	// insertion order is not alphabetical
	entries := []*model.Entry{
		testEntry(t, 1, "Zeta", "z work", model.NewDate(2024, time.November, 20)),
		testEntry(t, 2, "Alpha", "a work", model.NewDate(2024, time.November, 20)),
		testEntry(t, 3, "Midway", "m work", model.NewDate(2024, time.November, 20)),
	}
	period, _ := ComputeRange(ModeWeekly, model.NewDate(2024, time.November, 22), nil, nil)

	got, err := Render(entries, period, "classic")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	alpha := strings.Index(got, "Project: Alpha")
	midway := strings.Index(got, "Project: Midway")
	zeta := strings.Index(got, "Project: Zeta")
	if alpha < 0 || midway < 0 || zeta < 0 {
		t.Fatalf("missing project sections in output:\n%s", got)
	}
	if !(alpha < midway && midway < zeta) {
		t.Errorf("projects not alphabetical: Alpha@%d Midway@%d Zeta@%d", alpha, midway, zeta)
	}
}

func TestRenderEmptyPeriod(t *testing.T) {
	period, _ := ComputeRange(ModeWeekly, model.NewDate(2024, time.November, 22), nil, nil)

	got, err := Render(nil, period, "classic")
	if err != nil {
		t.Fatalf("Render failed for empty entries: %v", err)
	}

	if !strings.Contains(got, "Report Period: 11/16 - 11/22") {
		t.Errorf("expected period header in empty report, got:\n%s", got)
	}
	if !strings.Contains(got, noEntriesMarker) {
		t.Errorf("expected no-entries marker, got:\n%s", got)
	}
	if strings.Contains(got, "Project:") {
		t.Errorf("expected no project sections in empty report, got:\n%s", got)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	entries, period := weeklyScenario(t)
	if _, err := Render(entries, period, "baroque"); err == nil {
		t.Error("expected error for unknown template, got nil")
	}
}

func TestRenderTemplatesShareData(t *testing.T) {
	// templates may only differ in decoration: every entry line's payload
	// must appear in every template's output
	entries, period := weeklyScenario(t)

	for _, name := range TemplateNames() {
		got, err := Render(entries, period, name)
		if err != nil {
			t.Fatalf("Render(%s) failed: %v", name, err)
		}
		for _, payload := range []string{
			"11/21 - Added rate limiting",
			"11/20 - Implemented pagination",
			"11/19 - Wrote setup guide",
		} {
			if !strings.Contains(got, payload) {
				t.Errorf("template %s: missing entry line %q", name, payload)
			}
		}
	}
}

func TestRenderHTML(t *testing.T) {
	entries, period := weeklyScenario(t)

	got, err := RenderHTML(entries, period)
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}

	want := "<p><strong>Report Period:</strong> 11/16 - 11/22</p>" +
		"<h4>API Development</h4><ul>" +
		"<li><strong>11/21</strong> - Added rate limiting</li>" +
		"<li><strong>11/20</strong> - Implemented pagination</li>" +
		"</ul>" +
		"<h4>Documentation</h4><ul>" +
		"<li><strong>11/19</strong> - Wrote setup guide</li>" +
		"</ul>"

	if got != want {
		t.Errorf("RenderHTML mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	entries := []*model.Entry{
		testEntry(t, 1, "R&D <lab>", "fixed a < b comparison", model.NewDate(2024, time.November, 20)),
	}
	period, _ := ComputeRange(ModeWeekly, model.NewDate(2024, time.November, 22), nil, nil)

	got, err := RenderHTML(entries, period)
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	if strings.Contains(got, "<lab>") {
		t.Errorf("project name not escaped:\n%s", got)
	}
	if !strings.Contains(got, "R&amp;D &lt;lab&gt;") {
		t.Errorf("expected escaped project name, got:\n%s", got)
	}
}

func TestRenderHTMLEmpty(t *testing.T) {
	period, _ := ComputeRange(ModeMonthly, model.NewDate(2024, time.February, 15), nil, nil)

	got, err := RenderHTML(nil, period)
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	if !strings.Contains(got, "02/01 - 02/29") {
		t.Errorf("expected leap-month period header, got:\n%s", got)
	}
	if !strings.Contains(got, noEntriesMarker) {
		t.Errorf("expected no-entries marker, got:\n%s", got)
	}
}
