package heatmap

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestGenerateSVGEmpty(t *testing.T) {
	if got := GenerateSVG(nil, nil); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestGenerateSVGContainsCells(t *testing.T) {
	cells := []Cell{
		{Date: day("2024-11-18"), Count: 2},
		{Date: day("2024-11-19"), Count: 0},
		{Date: day("2024-11-20"), Count: 5},
	}
	svg := GenerateSVG(cells, nil)

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("output is not an svg document: %q", svg)
	}
	for _, c := range cells {
		key := c.Date.Format("2006-01-02")
		want := fmt.Sprintf(`data-date="%s" data-count="%d"`, key, c.Count)
		if !strings.Contains(svg, want) {
			t.Errorf("missing cell %s", want)
		}
	}
	if !strings.Contains(svg, `<title>2024-11-20: 5</title>`) {
		t.Error("missing hover title for busiest day")
	}
}

func TestGenerateSVGMonthLabel(t *testing.T) {
	cells := []Cell{
		{Date: day("2024-10-30"), Count: 1},
		{Date: day("2024-11-05"), Count: 1},
	}
	svg := GenerateSVG(cells, nil)
	if !strings.Contains(svg, ">Nov</text>") {
		t.Error("expected a November month label")
	}
}

func TestGenerateSVGTitle(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "Activity"
	svg := GenerateSVG([]Cell{{Date: day("2024-11-18"), Count: 1}}, opts)
	if !strings.Contains(svg, ">Activity</text>") {
		t.Error("expected title text")
	}
}

func TestLevelScaling(t *testing.T) {
	cases := []struct {
		count, max, levels, want int
	}{
		{0, 10, 5, 0},
		{1, 1, 5, 1},
		{1, 10, 5, 1},
		{10, 10, 5, 4},
		{5, 10, 5, 2},
		{3, 3, 2, 1},
	}
	for _, c := range cases {
		if got := level(c.count, c.max, c.levels); got != c.want {
			t.Errorf("level(%d, %d, %d) = %d, want %d", c.count, c.max, c.levels, got, c.want)
		}
	}
}
