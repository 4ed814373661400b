package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
)

func newSession(id string) *domain.CheckoutSession {
	return &domain.CheckoutSession{
		ID:       id,
		Status:   domain.StatusIncomplete,
		Currency: "USD",
		LineItems: []domain.LineItem{
			{ID: "li-1", Item: domain.Item{ID: "p1", Price: 1000, Currency: "USD"}, Quantity: 1},
		},
		CreatedAt: time.Now(),
	}
}

func TestMemoryStore_InsertAndGet(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Insert(newSession("s-1")))

	got, err := store.Get("s-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", got.ID)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_InsertDuplicate(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Insert(newSession("s-1")))

	err := store.Insert(newSession("s-1"))
	assert.ErrorIs(t, err, ErrSessionExists)
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.Update("missing", func(*domain.CheckoutSession) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_SnapshotsDoNotAlias(t *testing.T) {
	store := NewMemoryStore()
	original := newSession("s-1")
	require.NoError(t, store.Insert(original))

	// Mutating the inserted value or a snapshot must not reach the store.
	original.LineItems[0].Quantity = 99
	snapshot, err := store.Get("s-1")
	require.NoError(t, err)
	snapshot.Status = domain.StatusCompleted

	again, err := store.Get("s-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.LineItems[0].Quantity)
	assert.Equal(t, domain.StatusIncomplete, again.Status)
}

func TestMemoryStore_UpdateCommitsOnSuccess(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Insert(newSession("s-1")))

	updated, err := store.Update("s-1", func(s *domain.CheckoutSession) error {
		s.Status = domain.StatusReadyForComplete
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReadyForComplete, updated.Status)

	got, _ := store.Get("s-1")
	assert.Equal(t, domain.StatusReadyForComplete, got.Status)
}

func TestMemoryStore_UpdateDiscardsOnError(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Insert(newSession("s-1")))
	boom := errors.New("boom")

	_, err := store.Update("s-1", func(s *domain.CheckoutSession) error {
		s.Status = domain.StatusCompleted
		s.LineItems = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := store.Get("s-1")
	assert.Equal(t, domain.StatusIncomplete, got.Status)
	assert.Len(t, got.LineItems, 1)
}

func TestMemoryStore_ConcurrentUpdatesAreSerialized(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Insert(newSession("s-1")))

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := store.Update("s-1", func(s *domain.CheckoutSession) error {
				s.LineItems[0].Quantity++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _ := store.Get("s-1")
	assert.Equal(t, int64(1+workers), got.LineItems[0].Quantity, "no update may be lost")
}

func TestMemoryStore_DifferentSessionsDoNotBlock(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Insert(newSession("slow")))
	require.NoError(t, store.Insert(newSession("fast")))

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = store.Update("slow", func(*domain.CheckoutSession) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	done := make(chan struct{})
	go func() {
		_, _ = store.Update("fast", func(*domain.CheckoutSession) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("update on a different session was blocked")
	}
	close(release)
}
