package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/directions-api/internal/domain"
	"github.com/phrazzld/directions-api/internal/engine"
	"github.com/phrazzld/directions-api/internal/platform/logger"
	"github.com/phrazzld/directions-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine is a configurable engine.Engine for service tests.
type fakeEngine struct {
	calls  atomic.Int32
	result *domain.RouteResult
	err    error
	// block waits for ctx to end before returning its error.
	block bool
}

func (f *fakeEngine) Route(ctx context.Context, _ *domain.RoutingRequest) (*domain.RouteResult, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.result, f.err
}

func oneRoute() *domain.RouteResult {
	return &domain.RouteResult{Routes: []domain.Route{{
		Points:    []domain.Point{{Lon: 8.68, Lat: 49.41}, {Lon: 8.69, Lat: 49.42}},
		WayPoints: []int{0, 1},
		Segments:  []domain.Segment{{Distance: 1500, Duration: 120}},
		Summary:   domain.RouteSummary{Distance: 1500, Duration: 120},
	}}}
}

func validBody(t *testing.T) validation.RawRequest {
	t.Helper()
	raw, err := validation.DecodeBody(strings.NewReader(
		`{"coordinates":[[8.680916,49.410973],[8.687782,49.424597]],"instructions":false}`))
	require.NoError(t, err)
	return raw
}

func newTestService(t *testing.T, eng engine.Engine, timeout time.Duration) (DirectionsService, *logger.TestLogBuffer) {
	t.Helper()
	l, buf := logger.NewTestLogger(t)
	return NewDirectionsService(eng, validation.DefaultLimits(), timeout, l), buf
}

func TestNewDirectionsService_RequiredDependencies(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger(t)
	assert.Panics(t, func() { NewDirectionsService(nil, validation.DefaultLimits(), 0, l) })
	assert.Panics(t, func() { NewDirectionsService(&fakeEngine{}, validation.DefaultLimits(), 0, nil) })
}

func TestDirections_Success(t *testing.T) {
	t.Parallel()

	eng := &fakeEngine{result: oneRoute()}
	svc, _ := newTestService(t, eng, time.Second)

	dir, err := svc.Directions(context.Background(), validBody(t), "driving-car", domain.ResponseJSON)
	require.NoError(t, err)
	assert.Equal(t, int32(1), eng.calls.Load())
	assert.Equal(t, domain.ProfileDrivingCar, dir.Request.Profile)
	assert.False(t, dir.Request.Instructions)
	assert.Same(t, eng.result, dir.Result)
}

func TestDirections_ValidationFailureSkipsEngine(t *testing.T) {
	t.Parallel()

	eng := &fakeEngine{result: oneRoute()}
	svc, buf := newTestService(t, eng, time.Second)

	_, err := svc.Directions(context.Background(), validBody(t), "driving-tractor", domain.ResponseJSON)
	require.Error(t, err)

	var rerr *domain.RoutingError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, domain.InvalidParameterValue, rerr.Category)
	assert.Equal(t, int32(0), eng.calls.Load())
	logger.AssertLogContains(t, buf, "directions request rejected")
}

func TestDirections_EngineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		eng      *fakeEngine
		timeout  time.Duration
		expected domain.ErrorCategory
	}{
		{
			name:     "limit exceeded",
			eng:      &fakeEngine{err: engine.ErrLimitExceeded},
			expected: domain.RequestExceedsServerLimit,
		},
		{
			name:     "wrapped limit exceeded",
			eng:      &fakeEngine{err: errors.Join(errors.New("graph"), engine.ErrLimitExceeded)},
			expected: domain.RequestExceedsServerLimit,
		},
		{
			name:     "point not found",
			eng:      &fakeEngine{err: engine.ErrPointNotFound},
			expected: domain.Unknown,
		},
		{
			name:     "arbitrary failure",
			eng:      &fakeEngine{err: errors.New("connection refused to 10.0.0.12:8082")},
			expected: domain.Unknown,
		},
		{
			name:     "empty result",
			eng:      &fakeEngine{result: &domain.RouteResult{}},
			expected: domain.Unknown,
		},
		{
			name:     "nil result",
			eng:      &fakeEngine{},
			expected: domain.Unknown,
		},
		{
			name:     "timeout",
			eng:      &fakeEngine{block: true},
			timeout:  10 * time.Millisecond,
			expected: domain.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, buf := newTestService(t, tt.eng, tt.timeout)
			dir, err := svc.Directions(context.Background(), validBody(t), "driving-car", domain.ResponseJSON)
			require.Error(t, err)
			assert.Nil(t, dir)

			var rerr *domain.RoutingError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, tt.expected, rerr.Category)
			assert.Equal(t, int32(1), tt.eng.calls.Load())
			logger.AssertLogContains(t, buf, "route engine call failed")
		})
	}
}

func TestDirections_EngineErrorIsRedacted(t *testing.T) {
	t.Parallel()

	eng := &fakeEngine{err: errors.New("dial tcp 10.0.0.12:8082: connection refused")}
	svc, buf := newTestService(t, eng, 0)

	_, err := svc.Directions(context.Background(), validBody(t), "driving-car", domain.ResponseJSON)
	require.Error(t, err)
	assert.NotContains(t, buf.String(), "10.0.0.12:8082")
}

func TestDirections_CallerCancellation(t *testing.T) {
	t.Parallel()

	eng := &fakeEngine{block: true}
	svc, _ := newTestService(t, eng, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Directions(ctx, validBody(t), "driving-car", domain.ResponseJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.Unknown, domain.AsRoutingError(err).Category)
}

func TestDirections_UsesContextLogger(t *testing.T) {
	t.Parallel()

	reqLogger, buf := logger.NewTestLogger(t)
	ctx := logger.WithLogger(context.Background(), reqLogger.With("trace_id", "abc"))

	svc, serviceBuf := newTestService(t, &fakeEngine{err: errors.New("boom")}, 0)
	_, err := svc.Directions(ctx, validBody(t), "driving-car", domain.ResponseJSON)
	require.Error(t, err)

	logger.AssertLogField(t, buf, "trace_id", "abc")
	assert.Empty(t, serviceBuf.String())
}

func TestEngineError(t *testing.T) {
	t.Parallel()

	err := &EngineError{Profile: domain.ProfileCyclingRegular, Err: engine.ErrPointNotFound}
	assert.Equal(t, "route engine failed for profile cycling-regular: waypoint not routable", err.Error())
	assert.ErrorIs(t, err, engine.ErrPointNotFound)
}
