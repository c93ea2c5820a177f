package job

import (
	"FeedSeeder/internal/api/config"
	"FeedSeeder/internal/pkg/consts"
	"FeedSeeder/internal/pkg/llm"
	"FeedSeeder/internal/pkg/redis"
	"FeedSeeder/internal/service"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSeedRunner struct {
	mock.Mock
}

func (m *MockSeedRunner) Run(ctx context.Context, opts service.SeedOptions) (*service.SeedReport, error) {
	args := m.Called(ctx, opts)
	report, _ := args.Get(0).(*service.SeedReport)
	return report, args.Error(1)
}

type runnerFunc func(ctx context.Context, opts service.SeedOptions) (*service.SeedReport, error)

func (f runnerFunc) Run(ctx context.Context, opts service.SeedOptions) (*service.SeedReport, error) {
	return f(ctx, opts)
}

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, prompt string, _ int, _ float64) (string, error) {
	return prompt, nil
}

func newRedisLocker(t *testing.T) (*redis.Locker, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.NewLocker(rdb), mr
}

func TestSeedJob_RunOnceWithoutLocker(t *testing.T) {
	runner := new(MockSeedRunner)
	opts := service.SeedOptions{NumUsers: 3, Seed: 1}
	runner.On("Run", mock.Anything, opts).Return(&service.SeedReport{Users: 3}, nil).Once()

	report, err := NewSeedJob(runner, nil, opts).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Users)
	runner.AssertExpectations(t)
}

func TestSeedJob_ReleasesLock(t *testing.T) {
	locker, mr := newRedisLocker(t)
	runner := new(MockSeedRunner)
	runner.On("Run", mock.Anything, mock.Anything).Return(&service.SeedReport{}, nil)

	_, err := NewSeedJob(runner, locker, service.SeedOptions{}).RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, mr.Exists(consts.SeedLockKey))
}

func TestSeedJob_SkipsWhenLocked(t *testing.T) {
	locker, mr := newRedisLocker(t)
	require.NoError(t, mr.Set(consts.SeedLockKey, "someone-else"))
	mr.SetTTL(consts.SeedLockKey, time.Hour)

	runner := new(MockSeedRunner)
	_, err := NewSeedJob(runner, locker, service.SeedOptions{}).RunOnce(context.Background())
	assert.ErrorIs(t, err, service.ErrSeedLocked)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)

	v, _ := mr.Get(consts.SeedLockKey)
	assert.Equal(t, "someone-else", v)
}

func TestSeedJob_PropagatesRunError(t *testing.T) {
	locker, mr := newRedisLocker(t)
	runner := new(MockSeedRunner)
	boom := errors.New("boom")
	runner.On("Run", mock.Anything, mock.Anything).Return(&service.SeedReport{Users: 2}, boom)

	report, err := NewSeedJob(runner, locker, service.SeedOptions{}).RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, report.Users)
	assert.False(t, mr.Exists(consts.SeedLockKey))
}

func TestSeedJob_RunDoesNotPanic(t *testing.T) {
	runner := new(MockSeedRunner)
	runner.On("Run", mock.Anything, mock.Anything).Return(nil, errors.New("store down"))

	assert.NotPanics(t, func() {
		NewSeedJob(runner, nil, service.SeedOptions{}).Run()
	})
}

func TestSeedJob_StopUnblocksPacedRun(t *testing.T) {
	client := llm.NewClient(echoGenerator{}, llm.NewIntervalPacer(time.Hour))
	started := make(chan struct{})
	runner := runnerFunc(func(ctx context.Context, _ service.SeedOptions) (*service.SeedReport, error) {
		if _, err := client.Generate(ctx, "first", 10, 0); err != nil {
			return nil, err
		}
		close(started)
		// 第二次调用要等一小时
		_, err := client.Generate(ctx, "second", 10, 0)
		return &service.SeedReport{Posts: 1}, err
	})

	seedJob := NewSeedJob(runner, nil, service.SeedOptions{})
	done := make(chan struct{})
	go func() {
		seedJob.Run()
		close(done)
	}()

	<-started
	seedJob.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run still blocked after Stop")
	}
	assert.Equal(t, 1, client.Stats().Calls)
}

func TestSeedJob_RepeatedRunsCarryClear(t *testing.T) {
	opts := service.SeedOptionsFromConfig(config.SeedConfig{NumUsers: 12, Clear: true}, config.LLMConfig{})
	runner := new(MockSeedRunner)
	runner.On("Run", mock.Anything, mock.MatchedBy(func(o service.SeedOptions) bool {
		return o.Clear && o.NumUsers == 12
	})).Return(&service.SeedReport{Users: 12}, nil).Twice()

	seedJob := NewSeedJob(runner, nil, opts)
	seedJob.Run()
	seedJob.Run()
	runner.AssertExpectations(t)
}

func TestSeedJob_RunWithHonorsLock(t *testing.T) {
	locker, mr := newRedisLocker(t)
	runner := new(MockSeedRunner)
	override := service.SeedOptions{NumUsers: 7, Clear: true}
	runner.On("Run", mock.Anything, override).Return(&service.SeedReport{Users: 7}, nil).Once()

	seedJob := NewSeedJob(runner, locker, service.SeedOptions{NumUsers: 1000})
	report, err := seedJob.RunWith(context.Background(), override)
	require.NoError(t, err)
	assert.Equal(t, 7, report.Users)
	assert.False(t, mr.Exists(consts.SeedLockKey))

	require.NoError(t, mr.Set(consts.SeedLockKey, "cron-worker"))
	mr.SetTTL(consts.SeedLockKey, time.Hour)
	_, err = seedJob.RunWith(context.Background(), override)
	assert.ErrorIs(t, err, service.ErrSeedLocked)
	runner.AssertExpectations(t)
}
