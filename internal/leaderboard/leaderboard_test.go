package leaderboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/event"
)

type MockBoard struct {
	mock.Mock
}

func (m *MockBoard) Update(ctx context.Context, playerID int64, username string, experience int64) error {
	return m.Called(ctx, playerID, username, experience).Error(0)
}

func (m *MockBoard) Top(ctx context.Context, limit int) ([]Entry, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]Entry)
	return entries, args.Error(1)
}

func (m *MockBoard) Rank(ctx context.Context, playerID int64) (*Entry, error) {
	args := m.Called(ctx, playerID)
	entry, _ := args.Get(0).(*Entry)
	return entry, args.Error(1)
}

func TestRegister_UpdatesOnProgressEvents(t *testing.T) {
	board := new(MockBoard)
	board.On("Update", mock.Anything, int64(7), "ana", int64(110)).Return(nil).Once()
	board.On("Update", mock.Anything, int64(7), "ana", int64(0)).Return(nil).Once()

	bus := event.NewMemoryBus()
	Register(bus, board)

	ctx := context.Background()
	payload := event.PlayerProgressPayloadV1{PlayerID: 7, Username: "ana", Experience: 110, Coins: 20, Level: 1}
	require.NoError(t, bus.Publish(ctx, event.New(event.PlayerProgressed, payload)))

	payload.Experience = 0
	require.NoError(t, bus.Publish(ctx, event.New(event.PlayerOverridden, payload)))

	// Events outside the progress set never reach the board
	require.NoError(t, bus.Publish(ctx, event.New(event.BattleRecorded, event.BattleRecordedPayloadV1{PlayerID: 7})))

	board.AssertExpectations(t)
}

func TestHandler_DecodesSerializedPayload(t *testing.T) {
	board := new(MockBoard)
	board.On("Update", mock.Anything, int64(3), "bia", int64(42)).Return(nil)

	evt := event.New(event.PlayerRegistered, map[string]any{
		"player_id":  3,
		"username":   "bia",
		"experience": 42,
	})
	require.NoError(t, Handler(board)(context.Background(), evt))
	board.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	board := new(MockBoard)
	h := Handler(board)

	err := h(context.Background(), event.New(event.PlayerProgressed, "not a payload"))
	assert.Error(t, err)

	board.On("Update", mock.Anything, int64(1), "", int64(5)).Return(errors.New("redis down"))
	err = h(context.Background(), event.New(event.PlayerProgressed, event.PlayerProgressPayloadV1{PlayerID: 1, Experience: 5}))
	assert.EqualError(t, err, "redis down")
}

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	var (
		container testcontainers.Container
		err       error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = errors.New("docker unavailable")
			}
		}()
		container, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			},
			Started: true,
		})
	}()
	if err != nil {
		t.Skipf("Skipping integration test: redis not available: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := Connect(ctx, Options{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisBoard(t *testing.T) {
	client := startRedis(t)
	board := NewRedisBoard(client)
	ctx := context.Background()

	empty, err := board.Top(ctx, DefaultLimit)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, board.Update(ctx, 1, "ana", 300))
	require.NoError(t, board.Update(ctx, 2, "bia", 900))
	require.NoError(t, board.Update(ctx, 3, "caio", 50))
	require.NoError(t, board.Update(ctx, 3, "", 1200))

	top, err := board.Top(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Rank: 1, PlayerID: 3, Username: "caio", Experience: 1200},
		{Rank: 2, PlayerID: 2, Username: "bia", Experience: 900},
	}, top)

	entry, err := board.Rank(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &Entry{Rank: 3, PlayerID: 1, Username: "ana", Experience: 300}, entry)

	_, err = board.Rank(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)

	for _, limit := range []int{0, -1, MaxLimit + 1} {
		_, err = board.Top(ctx, limit)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "limit %d", limit)
	}
}
