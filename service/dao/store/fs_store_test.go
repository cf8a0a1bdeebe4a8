package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/viant/ssmdoc/service/dao"
	"github.com/viant/ssmdoc/service/dao/criteria"
)

func newEntryFSStore(baseURL string) *FSStore[entry] {
	return NewFSStore[entry](afs.New(), baseURL, func(e *entry) string { return e.Name }).
		WithMatcher(func(e *entry, parameter *dao.Parameter) bool {
			return criteria.MatchField("Owner", e.Owner, parameter)
		})
}

func TestFSStore(t *testing.T) {
	ctx := context.Background()
	baseURL := "mem://localhost/ssmdoc/store/entries"
	store := newEntryFSStore(baseURL)

	listed, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)

	require.NoError(t, store.Save(ctx, &entry{Name: "b", Owner: "ops"}))
	require.NoError(t, store.Save(ctx, &entry{Name: "a", Owner: "dev"}))
	require.NoError(t, store.Save(ctx, &entry{Name: "c", Owner: "ops"}))
	require.NoError(t, store.Save(ctx, &entry{Name: "c", Owner: "qa"}))

	reopened := newEntryFSStore(baseURL + "/")
	loaded, err := reopened.Load(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, &entry{Name: "c", Owner: "qa"}, loaded)

	_, err = reopened.Load(ctx, "z")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	listed, err = reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*entry{{Name: "a", Owner: "dev"}, {Name: "b", Owner: "ops"}, {Name: "c", Owner: "qa"}}, listed)

	listed, err = reopened.List(ctx, dao.NewParameter("Owner", "ops"))
	require.NoError(t, err)
	assert.Equal(t, []*entry{{Name: "b", Owner: "ops"}}, listed)

	require.NoError(t, reopened.Delete(ctx, "b"))
	assert.ErrorIs(t, reopened.Delete(ctx, "b"), dao.ErrNotFound)
	_, err = store.Load(ctx, "b")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestFSStore_InvalidEntity(t *testing.T) {
	ctx := context.Background()
	store := newEntryFSStore("mem://localhost/ssmdoc/store/invalid")

	assert.ErrorIs(t, store.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, store.Save(ctx, &entry{}), dao.ErrInvalidID)
	assert.ErrorIs(t, store.Save(ctx, &entry{Name: "../escape"}), dao.ErrInvalidID)
	_, err := store.Load(ctx, "")
	assert.ErrorIs(t, err, dao.ErrInvalidID)
}
