package service

import (
	"context"
	"strings"

	"github.com/Benjafo/iconstore/internal/model"
	"github.com/Benjafo/iconstore/pkg/apierror"
)

type PackStore interface {
	List(ctx context.Context, limit int, offset int) ([]model.IconPack, int, error)
	FindByIDOrSlug(ctx context.Context, key string) (model.IconPack, error)
}

// PackService serves the read-only icon pack catalog.
type PackService struct {
	packs PackStore
}

func NewPackService(packs PackStore) *PackService {
	return &PackService{packs: packs}
}

func (s *PackService) List(ctx context.Context, limit int, offset int) ([]model.IconPack, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	return s.packs.List(ctx, limit, offset)
}

func (s *PackService) Get(ctx context.Context, key string) (model.IconPack, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return model.IconPack{}, apierror.Validation(map[string]string{
			"pack": "pack id or slug is required",
		})
	}

	return s.packs.FindByIDOrSlug(ctx, key)
}
