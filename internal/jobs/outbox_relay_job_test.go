package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"deliverytracking/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockOutboxRelayer struct {
	mock.Mock
}

func (m *MockOutboxRelayer) Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func TestOutboxRelayJob_RunsEverySecond(t *testing.T) {
	relayer := &MockOutboxRelayer{}
	called := make(chan struct{}, 1)
	relayer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RelayOutboxCommand) bool {
		return cmd.BatchSize() == 50
	})).Return(3, nil).Run(func(mock.Arguments) {
		select {
		case called <- struct{}{}:
		default:
		}
	})

	job := NewOutboxRelayJob(relayer, 50, zap.NewNop())
	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-called:
	case <-time.After(3 * time.Second):
		t.Fatal("relay was not triggered")
	}
}

func TestOutboxRelayJob_StartRejectsInvalidBatchSize(t *testing.T) {
	job := NewOutboxRelayJob(&MockOutboxRelayer{}, 0, zap.NewNop())

	require.ErrorIs(t, job.Start(), commands.ErrBatchSizeIsInvalid)
}

func TestOutboxRelayJob_RunLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	relayer := &MockOutboxRelayer{}
	relayer.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("broker down")).Once()

	job := NewOutboxRelayJob(relayer, 10, zap.New(core))
	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	job.run(cmd)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Outbox relay job failed", entry.Message)
	assert.Equal(t, "outbox_relay_job", entry.LoggerName)
	relayer.AssertExpectations(t)
}

func TestJobManager_StartAndStop(t *testing.T) {
	relayer := &MockOutboxRelayer{}
	relayer.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	jm := NewJobManager(relayer, 10, zap.NewNop())

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}

func TestJobManager_StartFailure(t *testing.T) {
	jm := NewJobManager(&MockOutboxRelayer{}, -1, zap.NewNop())

	require.ErrorContains(t, jm.StartAll(), "failed to start outbox relay job")
}
