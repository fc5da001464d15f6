package apikey

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	genai "google.golang.org/genai"

	"gogemini-wallpapers/internal/keystore"
	"gogemini-wallpapers/internal/logger"
	"gogemini-wallpapers/internal/mock"
	"gogemini-wallpapers/internal/wallpaper"
)

var errKeyRejected = genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key.", Status: "INVALID_ARGUMENT"}

func newTestResolver(t *testing.T, hostKey string) (*Resolver, *mock.MockStore, *mock.MockGenerator) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	prober := mock.NewMockGenerator(ctrl)
	return NewResolver(store, hostKey, prober, logger.Nop()), store, prober
}

func TestResolve_PrefersStoredKey(t *testing.T) {
	r, store, _ := newTestResolver(t, "host-key")
	store.EXPECT().Get(gomock.Any(), storeKey).Return(" stored-key ", nil)

	key, source, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored-key", key)
	assert.Equal(t, SourceStored, source)
}

func TestResolve_FallsBackToHostKey(t *testing.T) {
	r, store, _ := newTestResolver(t, "host-key")
	store.EXPECT().Get(gomock.Any(), storeKey).Return("", keystore.ErrNotFound)

	key, source, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "host-key", key)
	assert.Equal(t, SourceHost, source)
}

func TestResolve_NoKey(t *testing.T) {
	r, store, _ := newTestResolver(t, "  ")
	store.EXPECT().Get(gomock.Any(), storeKey).Return("", keystore.ErrNotFound)

	_, source, err := r.Resolve(context.Background())
	assert.ErrorIs(t, err, wallpaper.ErrNoAPIKey)
	assert.Equal(t, SourceNone, source)
}

func TestResolve_StoreError(t *testing.T) {
	r, store, _ := newTestResolver(t, "host-key")
	boom := errors.New("disk")
	store.EXPECT().Get(gomock.Any(), storeKey).Return("", boom)

	_, _, err := r.Resolve(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestResolve_NilStore(t *testing.T) {
	r := NewResolver(nil, "host-key", nil, logger.Nop())

	key, source, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "host-key", key)
	assert.Equal(t, SourceHost, source)
	assert.NoError(t, r.Clear(context.Background()))
}

func TestSave_ValidKeyIsStored(t *testing.T) {
	r, store, prober := newTestResolver(t, "")
	gomock.InOrder(
		prober.EXPECT().TestKey(gomock.Any(), "new-key").Return(nil),
		store.EXPECT().Set(gomock.Any(), storeKey, "new-key").Return(nil),
	)

	require.NoError(t, r.Save(context.Background(), "  new-key\n"))
}

func TestSave_InvalidKeyClearsStoredKey(t *testing.T) {
	r, store, prober := newTestResolver(t, "")
	gomock.InOrder(
		prober.EXPECT().TestKey(gomock.Any(), "bad-key").Return(errKeyRejected),
		store.EXPECT().Delete(gomock.Any(), storeKey).Return(nil),
	)

	err := r.Save(context.Background(), "bad-key")
	require.Error(t, err)
	assert.True(t, wallpaper.IsInvalidKeyError(err))
}

func TestSave_TransientFailureKeepsState(t *testing.T) {
	r, _, prober := newTestResolver(t, "")
	boom := errors.New("connection reset by peer")
	prober.EXPECT().TestKey(gomock.Any(), "key").Return(boom)

	assert.ErrorIs(t, r.Save(context.Background(), "key"), boom)
}

func TestSave_Empty(t *testing.T) {
	r, _, _ := newTestResolver(t, "")
	assert.ErrorIs(t, r.Save(context.Background(), "   "), wallpaper.ErrNoAPIKey)
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r, store, prober := newTestResolver(t, "host-key")
		store.EXPECT().Get(gomock.Any(), storeKey).Return("", keystore.ErrNotFound)
		prober.EXPECT().TestKey(gomock.Any(), "host-key").Return(nil)

		source, err := r.Validate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceHost, source)
	})

	t.Run("rejected stored key is cleared", func(t *testing.T) {
		r, store, prober := newTestResolver(t, "")
		store.EXPECT().Get(gomock.Any(), storeKey).Return("stale", nil)
		prober.EXPECT().TestKey(gomock.Any(), "stale").Return(errKeyRejected)
		store.EXPECT().Delete(gomock.Any(), storeKey).Return(nil)

		source, err := r.Validate(context.Background())
		require.Error(t, err)
		assert.Equal(t, SourceStored, source)
	})
}

func TestInvalidate(t *testing.T) {
	r, store, _ := newTestResolver(t, "")

	reset, err := r.Invalidate(context.Background(), errors.New("quota exceeded"))
	require.NoError(t, err)
	assert.False(t, reset)

	store.EXPECT().Delete(gomock.Any(), storeKey).Return(nil)
	reset, err = r.Invalidate(context.Background(), errKeyRejected)
	require.NoError(t, err)
	assert.True(t, reset)
}

func TestStatus(t *testing.T) {
	r, store, _ := newTestResolver(t, "host-key-1234")
	store.EXPECT().Get(gomock.Any(), storeKey).Return("", keystore.ErrNotFound)

	st, err := r.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Status{HasHostKey: true, Source: SourceHost, Masked: "*********1234"}, st)

	store.EXPECT().Get(gomock.Any(), storeKey).Return("abcdefgh", nil)
	st, err = r.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Status{HasStoredKey: true, HasHostKey: true, Source: SourceStored, Masked: "****efgh"}, st)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "***", Mask("abc"))
	assert.Equal(t, "**cdef", Mask("abcdef"))
}
