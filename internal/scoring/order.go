package scoring

import "github.com/abhisek/careerfit/internal/catalog"

// CategoryScore is one category percentage with its display title.
type CategoryScore struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Percent int    `json:"percent"`
}

// OrderedCategories returns the scored categories in catalog order.
func (s Scores) OrderedCategories(a *catalog.Assessment) []CategoryScore {
	var out []CategoryScore
	for _, c := range a.Categories {
		p, ok := s.Categories[c.ID]
		if !ok {
			continue
		}
		out = append(out, CategoryScore{ID: c.ID, Title: c.Title, Percent: p})
	}
	return out
}

// OrderedSections returns the scored sections in catalog order.
func (s Scores) OrderedSections(a *catalog.Assessment) []CategoryScore {
	var out []CategoryScore
	for _, sec := range a.Sections {
		p, ok := s.Sections[sec.ID]
		if !ok {
			continue
		}
		out = append(out, CategoryScore{ID: sec.ID, Title: sec.Title, Percent: p})
	}
	return out
}
