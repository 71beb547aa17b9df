package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/image-studio/internal/api/metrics"
	"github.com/pixelforge/image-studio/internal/core/domain"
)

type recordingService struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
	fail   bool
	// gate, when set, blocks every Record until it is closed.
	gate chan struct{}
}

func (s *recordingService) Record(_ context.Context, event domain.ActivityEvent) error {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("boom")
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingService) snapshot() []domain.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ActivityEvent(nil), s.events...)
}

func TestDispatcher_PreservesOrderPerImage(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(3, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	const perImage = 20
	for i := 0; i < perImage; i++ {
		for _, img := range []string{"a", "b", "c"} {
			d.Publish(domain.ActivityEvent{Kind: domain.ActivityImageLiked, ImageID: img, Detail: fmt.Sprint(i)})
		}
	}

	require.Eventually(t, func() bool { return len(svc.snapshot()) == 3*perImage }, 2*time.Second, 5*time.Millisecond)
	cancel()
	d.Wait()

	next := map[string]int{}
	for _, e := range svc.snapshot() {
		assert.Equal(t, fmt.Sprint(next[e.ImageID]), e.Detail, "image %s out of order", e.ImageID)
		next[e.ImageID]++
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &recordingService{}, zerolog.Nop())
	assert.Len(t, d.workers, defaultWorkers)
	assert.Equal(t, d.shardIndex("img-1"), d.shardIndex("img-1"))

	user := domain.ActivityEvent{UserID: "u1"}
	assert.Equal(t, d.shardIndex("u1"), d.shardIndex(user.ShardKey()))
}

func TestDispatcher_RecordFailureDoesNotStopWorker(t *testing.T) {
	svc := &recordingService{fail: true}
	d := NewDispatcher(1, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Publish(domain.ActivityEvent{Kind: domain.ActivityImageCreated, ImageID: "x"})
	time.Sleep(20 * time.Millisecond)

	svc.mu.Lock()
	svc.fail = false
	svc.mu.Unlock()

	d.Publish(domain.ActivityEvent{Kind: domain.ActivityImageDeleted, ImageID: "x"})
	require.Eventually(t, func() bool { return len(svc.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, domain.ActivityImageDeleted, svc.snapshot()[0].Kind)

	cancel()
	d.Wait()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestDispatcher_PublishDropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, &recordingService{}, zerolog.Nop())
	depth := metrics.ActivityQueueDepth.WithLabelValues("0")
	before := gaugeValue(t, depth)

	// Not started: nothing drains the channel.
	for i := 0; i < channelBuffer+10; i++ {
		d.Publish(domain.ActivityEvent{ImageID: "same"})
	}
	assert.Len(t, d.workers[0], channelBuffer)
	assert.Equal(t, before+channelBuffer, gaugeValue(t, depth), "dropped events must not count as queued")
}

func TestDispatcher_DrainsQueueOnShutdown(t *testing.T) {
	gate := make(chan struct{})
	svc := &recordingService{gate: gate}
	d := NewDispatcher(1, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	const published = 20
	for i := 0; i < published; i++ {
		d.Publish(domain.ActivityEvent{Kind: domain.ActivityImageLiked, ImageID: "img", Detail: fmt.Sprint(i)})
	}
	cancel()
	close(gate)
	d.Wait()

	events := svc.snapshot()
	require.Len(t, events, published, "queued events must be recorded before the worker exits")
	for i, e := range events {
		assert.Equal(t, fmt.Sprint(i), e.Detail)
	}
}
