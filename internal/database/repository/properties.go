package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// PropertyRepo handles property listings.
type PropertyRepo struct {
	db DBTX
}

func NewPropertyRepo(db DBTX) *PropertyRepo { return &PropertyRepo{db: db} }

// Upsert writes the row and replaces its features.
func (r *PropertyRepo) Upsert(ctx context.Context, p Property) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO properties(id, title, description, location, contact, price, image_url, funded_percentage, sort_order, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 description=excluded.description,
	 location=excluded.location,
	 contact=excluded.contact,
	 price=excluded.price,
	 image_url=excluded.image_url,
	 funded_percentage=excluded.funded_percentage,
	 sort_order=excluded.sort_order,
	 updated_at=CURRENT_TIMESTAMP;
	`, p.ID, p.Title, p.Description, p.Location, p.Contact, p.Price, p.ImageURL, p.FundedPercentage, p.SortOrder)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM property_features WHERE property_id = ?`, p.ID); err != nil {
		return err
	}
	for pos, f := range p.Features {
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("feature:"+p.ID+":"+strconv.Itoa(pos))).String()
		if _, err := r.db.ExecContext(ctx, `
		INSERT INTO property_features(id, property_id, position, feature) VALUES (?, ?, ?, ?)
		`, id, p.ID, pos, f); err != nil {
			return err
		}
	}
	return nil
}

// List returns all properties by sort order.
func (r *PropertyRepo) List(ctx context.Context) ([]Property, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, title, description, location, contact, price, image_url, funded_percentage, sort_order, updated_at
	FROM properties ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	var out []Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.Contact, &p.Price, &p.ImageURL, &p.FundedPercentage, &p.SortOrder, &p.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	features, err := r.features(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Features = features[out[i].ID]
	}
	return out, nil
}

// Prune deletes every property whose id is not in keep. Features go with
// them through the foreign key cascade.
func (r *PropertyRepo) Prune(ctx context.Context, keep []string) (int64, error) {
	query := `DELETE FROM properties`
	args := make([]any, 0, len(keep))
	if len(keep) > 0 {
		query += ` WHERE id NOT IN (?` + strings.Repeat(`, ?`, len(keep)-1) + `)`
		for _, id := range keep {
			args = append(args, id)
		}
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PropertyRepo) features(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT property_id, feature FROM property_features ORDER BY property_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string][]string{}
	for rows.Next() {
		var id, f string
		if err := rows.Scan(&id, &f); err != nil {
			return nil, err
		}
		out[id] = append(out[id], f)
	}
	return out, rows.Err()
}
