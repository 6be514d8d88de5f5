package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benjafo/iconstore/internal/model"
	"github.com/Benjafo/iconstore/pkg/apierror"
)

type fakePackStore struct {
	packs     []model.IconPack
	lastLimit int
	lastOff   int
}

func (f *fakePackStore) List(_ context.Context, limit int, offset int) ([]model.IconPack, int, error) {
	f.lastLimit = limit
	f.lastOff = offset
	return f.packs, len(f.packs), nil
}

func (f *fakePackStore) FindByIDOrSlug(_ context.Context, key string) (model.IconPack, error) {
	for _, p := range f.packs {
		if p.Slug == key || p.ID.String() == key {
			return p, nil
		}
	}
	return model.IconPack{}, model.ErrPackNotFound
}

func TestPackListClampsPaging(t *testing.T) {
	store := &fakePackStore{}
	svc := NewPackService(store)

	_, _, err := svc.List(context.Background(), 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 20, store.lastLimit)
	assert.Equal(t, 0, store.lastOff)

	_, _, err = svc.List(context.Background(), 5000, 40)
	require.NoError(t, err)
	assert.Equal(t, 100, store.lastLimit)
	assert.Equal(t, 40, store.lastOff)
}

func TestPackGetBySlugAndID(t *testing.T) {
	pack := model.IconPack{ID: uuid.New(), Slug: "pixel-arcade", Name: "Pixel Arcade", CreatedAt: time.Now()}
	svc := NewPackService(&fakePackStore{packs: []model.IconPack{pack}})

	got, err := svc.Get(context.Background(), "pixel-arcade")
	require.NoError(t, err)
	assert.Equal(t, pack.ID, got.ID)

	got, err = svc.Get(context.Background(), pack.ID.String())
	require.NoError(t, err)
	assert.Equal(t, pack.Slug, got.Slug)
}

func TestPackGetRejectsBlankKey(t *testing.T) {
	svc := NewPackService(&fakePackStore{})

	_, err := svc.Get(context.Background(), "   ")

	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "validation_error", apiErr.Kind)
}

func TestPackGetUnknownKey(t *testing.T) {
	svc := NewPackService(&fakePackStore{})

	_, err := svc.Get(context.Background(), "no-such-pack")
	assert.ErrorIs(t, err, model.ErrPackNotFound)
}
