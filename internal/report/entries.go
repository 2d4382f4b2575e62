package report

import "github.com/tlsguqwn-ship-it/rising-report/internal/models"

// List entry operations. Adding at a maximum or removing at a minimum is
// refused as a silent no-op; the UI disables the control at the bound, so
// reaching here just means a stale click. Every accepted mutation is one
// ordinary, undoable history entry.

// AddSector appends a blank sector with a fresh id.
func (c *Controller) AddSector() {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.hist.Current().Clone()
	if len(doc.Sectors) >= models.MaxSectors {
		return
	}
	doc.Sectors = append(doc.Sectors, models.Sector{
		ID:        models.NewEntryID(),
		Sentiment: models.DefaultSentiment(c.mode),
	})
	c.apply(doc)
}

// RemoveSector removes the sector with the given id.
func (c *Controller) RemoveSector(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.hist.Current().Clone()
	if len(doc.Sectors) <= models.MinSectors {
		return
	}
	for i, s := range doc.Sectors {
		if s.ID == id {
			doc.Sectors = append(doc.Sectors[:i], doc.Sectors[i+1:]...)
			c.apply(doc)
			return
		}
	}
}

// AddTheme appends a featured-stock theme with one blank stock row.
func (c *Controller) AddTheme() {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.hist.Current().Clone()
	if len(doc.Themes) >= models.MaxThemes {
		return
	}
	doc.Themes = append(doc.Themes, models.ThemeGroup{
		ID:        models.NewEntryID(),
		Sentiment: models.DefaultSentiment(c.mode),
		Stocks:    []models.ThemeStock{{}},
	})
	c.apply(doc)
}

// RemoveTheme removes the theme with the given id.
func (c *Controller) RemoveTheme(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.hist.Current().Clone()
	if len(doc.Themes) <= models.MinThemes {
		return
	}
	for i, tg := range doc.Themes {
		if tg.ID == id {
			doc.Themes = append(doc.Themes[:i], doc.Themes[i+1:]...)
			c.apply(doc)
			return
		}
	}
}

// AddThemeStock appends a blank stock row to the theme with the given id.
func (c *Controller) AddThemeStock(themeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.hist.Current().Clone()
	for i := range doc.Themes {
		if doc.Themes[i].ID != themeID {
			continue
		}
		if len(doc.Themes[i].Stocks) >= models.MaxThemeStocks {
			return
		}
		doc.Themes[i].Stocks = append(doc.Themes[i].Stocks, models.ThemeStock{})
		c.apply(doc)
		return
	}
}

// RemoveThemeStock removes the stock row at position index from a theme.
func (c *Controller) RemoveThemeStock(themeID string, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.hist.Current().Clone()
	for i := range doc.Themes {
		if doc.Themes[i].ID != themeID {
			continue
		}
		stocks := doc.Themes[i].Stocks
		if len(stocks) <= models.MinThemeStocks || index < 0 || index >= len(stocks) {
			return
		}
		doc.Themes[i].Stocks = append(stocks[:index], stocks[index+1:]...)
		c.apply(doc)
		return
	}
}

// AddScheduleItem appends a blank schedule entry with a fresh id.
func (c *Controller) AddScheduleItem() {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.hist.Current().Clone()
	if len(doc.Schedule) >= models.MaxSchedule {
		return
	}
	doc.Schedule = append(doc.Schedule, models.ScheduleItem{ID: models.NewEntryID()})
	c.apply(doc)
}

// RemoveScheduleItem removes the schedule entry with the given id.
func (c *Controller) RemoveScheduleItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.hist.Current().Clone()
	if len(doc.Schedule) <= models.MinSchedule {
		return
	}
	for i, it := range doc.Schedule {
		if it.ID == id {
			doc.Schedule = append(doc.Schedule[:i], doc.Schedule[i+1:]...)
			c.apply(doc)
			return
		}
	}
}

// apply records doc as an ordinary history entry and pushes it to the
// renderer. Callers hold the mutex.
func (c *Controller) apply(doc models.Report) {
	c.hist.Set(doc)
	c.renderer.DocumentChanged(doc.Clone())
}
