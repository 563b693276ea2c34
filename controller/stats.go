package controller

import (
	"context"
	"fmt"

	"github.com/dsimpson1980/yff/model"
)

// LoadStatCategories fetches the stat id to display name catalog for the
// league. The catalog is replaced wholesale; there is no partial update.
func (c *controller) LoadStatCategories(ctx context.Context) error {
	httpClient, err := c.tokens.Client(ctx)
	if err != nil {
		return err
	}

	categories, err := c.yahoo.GetStatCategories(ctx, httpClient, c.settings.LeagueKey.String())
	if err != nil {
		return fmt.Errorf("error fetching stat categories: %w", err)
	}

	catalog := model.NewStatCatalog(categories)

	c.mu.Lock()
	c.catalog = catalog
	c.mu.Unlock()

	c.log.Info().Int("categories", catalog.Len()).Msg("stat categories loaded")
	return nil
}

// StatCatalog returns the most recently loaded catalog, or nil when
// LoadStatCategories has never succeeded.
func (c *controller) StatCatalog() *model.StatCatalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}
