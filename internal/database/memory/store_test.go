package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/testing/storetest"
)

func newStores(*testing.T) storetest.Stores {
	s := New()
	return storetest.Stores{Players: s.Players(), Catalog: s.Catalog(), Progress: s.Progress()}
}

func TestStoreConformance(t *testing.T) {
	storetest.Run(t, newStores)
}

func TestTx_DoneAfterCommit(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := storetest.NewPlayer(t, s.Players(), "alice")

	tx, err := s.Progress().BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	assert.ErrorIs(t, tx.Commit(ctx), ErrTxDone)
	_, err = tx.GetPlayerForUpdate(ctx, p.ID)
	assert.ErrorIs(t, err, ErrTxDone)
	assert.ErrorIs(t, tx.UpdatePlayerProgress(ctx, p.ID, domain.PlayerProgress{}), ErrTxDone)
}

func TestBeginTx_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Progress().BeginTx(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBeginTx_WaitingWriterHonorsContext(t *testing.T) {
	s := New()
	bg := context.Background()

	held, err := s.Progress().BeginTx(bg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(bg, 20*time.Millisecond)
	defer cancel()

	_, err = s.Progress().BeginTx(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, s.Catalog().CreateBoss(ctx, &domain.Boss{Name: "Queued", Health: 1}), context.DeadlineExceeded)

	require.NoError(t, held.Rollback(bg))

	tx, err := s.Progress().BeginTx(bg)
	require.NoError(t, err, "a timed-out waiter must not keep the lock")
	require.NoError(t, tx.Rollback(bg))

	bosses, err := s.Catalog().ListBosses(bg)
	require.NoError(t, err)
	assert.Empty(t, bosses)
}

func TestFailedWriteLeavesStateUntouched(t *testing.T) {
	s := New()
	ctx := context.Background()
	missing := int64(99)

	err := s.Catalog().CreatePhase(ctx, &domain.Phase{Name: "Orphan", BossID: &missing})
	require.ErrorIs(t, err, domain.ErrBossNotFound)

	phases, err := s.Catalog().ListPhases(ctx)
	require.NoError(t, err)
	assert.Empty(t, phases)

	// The failed write did not consume an id
	phase := &domain.Phase{Name: "Gate"}
	require.NoError(t, s.Catalog().CreatePhase(ctx, phase))
	assert.Equal(t, int64(1), phase.ID)
}

// TestTx_Serialized checks that concurrent read-modify-write transactions do
// not lose updates.
func TestTx_Serialized(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := storetest.NewPlayer(t, s.Players(), "counter")

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := s.Progress().BeginTx(ctx)
			if !assert.NoError(t, err) {
				return
			}
			cur, err := tx.GetPlayerForUpdate(ctx, p.ID)
			if !assert.NoError(t, err) {
				_ = tx.Rollback(ctx)
				return
			}
			assert.NoError(t, tx.UpdatePlayerProgress(ctx, p.ID, domain.PlayerProgress{Coins: cur.Coins + 1}))
			assert.NoError(t, tx.Commit(ctx))
		}()
	}
	wg.Wait()

	got, err := s.Players().GetPlayerByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), got.Coins)
}

func TestReadsDoNotSeeOpenTransaction(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := storetest.NewPlayer(t, s.Players(), "reader")

	tx, err := s.Progress().BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpdatePlayerProgress(ctx, p.ID, domain.PlayerProgress{Experience: 50}))

	got, err := s.Players().GetPlayerByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Experience)

	require.NoError(t, tx.Commit(ctx))
	got, err = s.Players().GetPlayerByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), got.Experience)
}
