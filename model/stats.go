package model

// StatCategory is one scoring category from the league settings, like
// "Passing Yards" or "Interceptions".
type StatCategory struct {
	ID   int
	Name string
}

// StatCatalog resolves stat IDs to display names and back. It is built once
// from the league settings and never mutated; replacing the catalog wholesale
// is the only way to refresh it.
type StatCatalog struct {
	byID   map[int]string
	byName map[string]int
}

func NewStatCatalog(categories []StatCategory) *StatCatalog {
	c := &StatCatalog{
		byID:   make(map[int]string, len(categories)),
		byName: make(map[string]int, len(categories)),
	}
	for _, cat := range categories {
		c.byID[cat.ID] = cat.Name
		c.byName[cat.Name] = cat.ID
	}
	return c
}

func (c *StatCatalog) Name(id int) (string, bool) {
	name, ok := c.byID[id]
	return name, ok
}

func (c *StatCatalog) ID(name string) (int, bool) {
	id, ok := c.byName[name]
	return id, ok
}

func (c *StatCatalog) Len() int {
	return len(c.byID)
}

// Categories returns a copy of the catalog entries in no particular order.
func (c *StatCatalog) Categories() []StatCategory {
	result := make([]StatCategory, 0, len(c.byID))
	for id, name := range c.byID {
		result = append(result, StatCategory{ID: id, Name: name})
	}
	return result
}
