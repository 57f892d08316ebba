package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data    map[string]string
	ttls    map[string]time.Duration
	expires []string
	getErr  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) GetAndTouch(_ context.Context, key string, ttl time.Duration) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", goredis.Nil
	}
	f.expires = append(f.expires, key)
	f.ttls[key] = ttl
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeKV) CartKey(userID string) string {
	return "bm:cart:" + userID
}

func TestNewRedisSessionStoreValidates(t *testing.T) {
	_, err := NewRedisSessionStore(nil, time.Hour)
	assert.Error(t, err)
	_, err = NewRedisSessionStore(newFakeKV(), 0)
	assert.Error(t, err)
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store, err := NewRedisSessionStore(kv, 72*time.Hour)
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()

	missing, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	session := newSession(userID, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	session.Lines = append(session.Lines, Line{
		ProductID: uuid.New(),
		Name:      "Crate",
		Quantity:  12,
		UnitPrice: decimal.RequireFromString("4.25"),
	})
	session.CouponCodes = []string{"SAVE10", "OFF5"}
	require.NoError(t, store.Save(ctx, session))

	key := "bm:cart:" + userID.String()
	assert.Equal(t, 72*time.Hour, kv.ttls[key])

	loaded, err := store.Load(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []string{"SAVE10", "OFF5"}, loaded.CouponCodes)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, 12, loaded.Lines[0].Quantity)
	assert.True(t, loaded.Lines[0].UnitPrice.Equal(decimal.RequireFromString("4.25")))
	assert.Equal(t, []string{key}, kv.expires, "reads slide the ttl")

	require.NoError(t, store.Delete(ctx, userID))
	gone, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRedisSessionStoreErrors(t *testing.T) {
	kv := newFakeKV()
	store, err := NewRedisSessionStore(kv, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, &Session{}))

	userID := uuid.New()
	kv.data[kv.CartKey(userID.String())] = "{not json"
	_, err = store.Load(ctx, userID)
	assert.Error(t, err)

	kv.getErr = errors.New("connection refused")
	_, err = store.Load(ctx, userID)
	assert.Error(t, err)
}
