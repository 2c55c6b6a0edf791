package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/tokenestate/internal/catalog"
	"github.com/jask/tokenestate/internal/database/repository"
)

// SeedCatalog makes the stored catalog match props: listings are upserted in
// order and stored listings missing from props are removed. It is idempotent
// and safe to run on every startup.
func SeedCatalog(ctx context.Context, db *sql.DB, props []catalog.Property) error {
	valid, err := catalog.New(props)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	props = valid.All()
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		repo := repository.NewPropertyRepo(tx)
		keep := make([]string, 0, len(props))
		for _, p := range props {
			keep = append(keep, p.ID)
		}
		if _, err := repo.Prune(ctx, keep); err != nil {
			return fmt.Errorf("prune properties: %w", err)
		}
		for idx, p := range props {
			row := repository.Property{
				ID:               p.ID,
				Title:            p.Title,
				Description:      p.Description,
				Location:         p.Location,
				Contact:          p.Contact,
				Price:            p.Price,
				ImageURL:         p.ImageURL,
				FundedPercentage: catalog.ClampFunded(p.FundedPercentage),
				SortOrder:        idx,
				Features:         p.Features,
			}
			if err := repo.Upsert(ctx, row); err != nil {
				return fmt.Errorf("seed property %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// LoadCatalog reads every stored listing into an in-memory catalog.
func LoadCatalog(ctx context.Context, db *sql.DB) (*catalog.Catalog, error) {
	rows, err := repository.NewPropertyRepo(db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	props := make([]catalog.Property, 0, len(rows))
	for _, r := range rows {
		props = append(props, catalog.Property{
			ID:               r.ID,
			Title:            r.Title,
			Description:      r.Description,
			Location:         r.Location,
			Contact:          r.Contact,
			Price:            r.Price,
			ImageURL:         r.ImageURL,
			Features:         r.Features,
			FundedPercentage: r.FundedPercentage,
		})
	}
	return catalog.New(props)
}
