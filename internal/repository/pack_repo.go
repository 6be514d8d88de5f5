package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Benjafo/iconstore/internal/model"
)

const packColumns = `id, slug, name, description, price, icon_count, preview_url, created_at`

type PackRepository struct {
	pool PgxPool
}

func NewPackRepository(pool PgxPool) *PackRepository {
	return &PackRepository{pool: pool}
}

func (r *PackRepository) List(ctx context.Context, limit int, offset int) ([]model.IconPack, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM icon_packs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count icon packs: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+packColumns+` FROM icon_packs
		 ORDER BY created_at DESC, slug
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list icon packs: %w", err)
	}
	defer rows.Close()

	packs := make([]model.IconPack, 0)
	for rows.Next() {
		var p model.IconPack
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.Price,
			&p.IconCount, &p.PreviewURL, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan icon pack: %w", err)
		}
		packs = append(packs, p)
	}

	return packs, total, rows.Err()
}

// FindByIDOrSlug accepts either a pack UUID or its slug.
func (r *PackRepository) FindByIDOrSlug(ctx context.Context, key string) (model.IconPack, error) {
	var p model.IconPack
	err := r.pool.QueryRow(ctx,
		`SELECT `+packColumns+` FROM icon_packs
		 WHERE slug = $1 OR id::text = $1`, key).
		Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.Price,
			&p.IconCount, &p.PreviewURL, &p.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.IconPack{}, model.ErrPackNotFound
	}
	if err != nil {
		return model.IconPack{}, fmt.Errorf("find icon pack: %w", err)
	}
	return p, nil
}
