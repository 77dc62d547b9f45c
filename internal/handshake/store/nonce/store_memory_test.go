package nonce

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	tenant "shoplink/internal/tenant/models"
	"shoplink/pkg/testutil"
)

const shopA tenant.ShopDomain = "shop-a.myshopify.com"

type InMemoryNonceStoreSuite struct {
	suite.Suite
	store *InMemoryNonceStore
	now   time.Time
}

func (s *InMemoryNonceStoreSuite) SetupTest() {
	s.store = NewInMemoryNonceStore()
	s.now = time.Now()
}

func (s *InMemoryNonceStoreSuite) TestPutAndTake() {
	require.NoError(s.T(), s.store.Put(context.Background(), shopA, "n1", s.now, 10*time.Minute))

	nonce, err := s.store.Take(context.Background(), shopA, s.now.Add(time.Minute))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "n1", nonce)
}

func (s *InMemoryNonceStoreSuite) TestTakeIsSingleUse() {
	require.NoError(s.T(), s.store.Put(context.Background(), shopA, "n1", s.now, 10*time.Minute))

	_, err := s.store.Take(context.Background(), shopA, s.now)
	require.NoError(s.T(), err)

	_, err = s.store.Take(context.Background(), shopA, s.now)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *InMemoryNonceStoreSuite) TestPutOverwritesPriorHandshake() {
	require.NoError(s.T(), s.store.Put(context.Background(), shopA, "n1", s.now, 10*time.Minute))
	require.NoError(s.T(), s.store.Put(context.Background(), shopA, "n2", s.now, 10*time.Minute))

	nonce, err := s.store.Take(context.Background(), shopA, s.now)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "n2", nonce, "second put wins; first nonce is orphaned")
}

func (s *InMemoryNonceStoreSuite) TestTakeExpired() {
	require.NoError(s.T(), s.store.Put(context.Background(), shopA, "n1", s.now, 10*time.Minute))

	_, err := s.store.Take(context.Background(), shopA, s.now.Add(11*time.Minute))
	assert.ErrorIs(s.T(), err, ErrNotFound)

	// The expired entry was consumed, not left behind.
	_, err = s.store.Take(context.Background(), shopA, s.now)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *InMemoryNonceStoreSuite) TestTakeNeverSet() {
	_, err := s.store.Take(context.Background(), "missing.myshopify.com", s.now)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *InMemoryNonceStoreSuite) TestEmptyNonceRejected() {
	err := s.store.Put(context.Background(), shopA, "", s.now, time.Minute)
	assert.Error(s.T(), err)
}

func (s *InMemoryNonceStoreSuite) TestDeleteExpired() {
	require.NoError(s.T(), s.store.Put(context.Background(), "a.myshopify.com", "n1", s.now, time.Minute))
	require.NoError(s.T(), s.store.Put(context.Background(), "b.myshopify.com", "n2", s.now, time.Hour))

	deleted, err := s.store.DeleteExpired(context.Background(), s.now.Add(5*time.Minute))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, deleted)

	_, err = s.store.Take(context.Background(), "a.myshopify.com", s.now.Add(5*time.Minute))
	assert.ErrorIs(s.T(), err, ErrNotFound)

	nonce, err := s.store.Take(context.Background(), "b.myshopify.com", s.now.Add(5*time.Minute))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "n2", nonce)
}

func (s *InMemoryNonceStoreSuite) TestReset() {
	require.NoError(s.T(), s.store.Put(context.Background(), shopA, "n1", s.now, time.Hour))
	require.NoError(s.T(), s.store.Reset(context.Background()))

	_, err := s.store.Take(context.Background(), shopA, s.now)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *InMemoryNonceStoreSuite) TestConcurrentTenantsDoNotInterfere() {
	for i := 0; i < 32; i++ {
		domain := tenant.ShopDomain(fmt.Sprintf("shop-%d.myshopify.com", i))
		require.NoError(s.T(), s.store.Put(context.Background(), domain, fmt.Sprintf("n%d", i), s.now, time.Hour))
	}

	res := testutil.RunConcurrent(32, func(idx int) error {
		domain := tenant.ShopDomain(fmt.Sprintf("shop-%d.myshopify.com", idx))
		nonce, err := s.store.Take(context.Background(), domain, s.now)
		if err != nil {
			return err
		}
		if nonce != fmt.Sprintf("n%d", idx) {
			return fmt.Errorf("wrong nonce for %s: %s", domain, nonce)
		}
		return nil
	})
	assert.Equal(s.T(), int32(32), res.Successes)
}

func (s *InMemoryNonceStoreSuite) TestConcurrentTakeSingleWinner() {
	require.NoError(s.T(), s.store.Put(context.Background(), shopA, "n1", s.now, time.Hour))

	res := testutil.RunConcurrent(16, func(int) error {
		_, err := s.store.Take(context.Background(), shopA, s.now)
		return err
	})
	assert.Equal(s.T(), int32(1), res.Successes)
	assert.Equal(s.T(), int32(15), res.NotFounds)
}

func (s *InMemoryNonceStoreSuite) TestSweepDoesNotRaceTake() {
	require.NoError(s.T(), s.store.Put(context.Background(), shopA, "n1", s.now, time.Minute))

	late := s.now.Add(2 * time.Minute)
	res := testutil.RunConcurrent(8, func(idx int) error {
		if idx%2 == 0 {
			_, err := s.store.DeleteExpired(context.Background(), late)
			return err
		}
		_, err := s.store.Take(context.Background(), shopA, late)
		return err
	})
	// Sweeps succeed; every Take of the expired entry reports absent.
	assert.Equal(s.T(), int32(4), res.Successes)
	assert.Equal(s.T(), int32(4), res.NotFounds)
}

func TestInMemoryNonceStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryNonceStoreSuite))
}
