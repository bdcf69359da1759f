// Package stream - Test decode message, bỏ message hỏng và upsert idempotent.
package stream

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
)

// fakeSampleStore là store map-backed cho test, khóa theo (timestamp, metricName)
type fakeSampleStore struct {
	mu      sync.Mutex
	samples map[string]analyticsmodels.RealtimeSample
	upserts int
}

func newFakeSampleStore() *fakeSampleStore {
	return &fakeSampleStore{samples: make(map[string]analyticsmodels.RealtimeSample)}
}

func (f *fakeSampleStore) UpsertSample(ctx context.Context, sample analyticsmodels.RealtimeSample) (analyticsmodels.RealtimeSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%s|%s", sample.Timestamp, sample.MetricName)
	f.samples[key] = sample
	f.upserts++
	return sample, nil
}

func (f *fakeSampleStore) snapshot() (map[string]analyticsmodels.RealtimeSample, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]analyticsmodels.RealtimeSample, len(f.samples))
	for k, v := range f.samples {
		out[k] = v
	}
	return out, f.upserts
}

// drainApply chạy apply loop trên queue hiện có rồi chờ nó cạn
func drainApply(i *Ingestor) {
	close(i.queue)
	go i.applyLoop()
	<-i.done
}

func TestEnqueue_MessageHopLe(t *testing.T) {
	store := newFakeSampleStore()
	ingestor := NewIngestor(nil, "analytics:metrics", 16, store)

	ingestor.enqueue(`{"timestamp":"2026-08-28T12:00","metricName":"active_users","value":42}`)
	drainApply(ingestor)

	samples, upserts := store.snapshot()
	if upserts != 1 {
		t.Fatalf("muốn 1 lần upsert, nhận %d", upserts)
	}
	sample := samples["2026-08-28T12:00|active_users"]
	if sample.MetricName != "active_users" || sample.Value != 42 {
		t.Errorf("sample sai: %+v", sample)
	}

	processed, skipped, dropped, failed := ingestor.Counters()
	if processed != 1 || skipped != 0 || dropped != 0 || failed != 0 {
		t.Errorf("counters sai: processed=%d skipped=%d dropped=%d failed=%d", processed, skipped, dropped, failed)
	}
}

// Message hỏng: log + bỏ qua, tăng counter, không bao giờ làm chết consumer.
func TestEnqueue_MessageHongBiBoQua(t *testing.T) {
	store := newFakeSampleStore()
	ingestor := NewIngestor(nil, "analytics:metrics", 16, store)

	ingestor.enqueue(`{not json`)
	ingestor.enqueue(`{"metricName":"x","value":1}`)               // thiếu timestamp
	ingestor.enqueue(`{"timestamp":"2026-08-28T12:00","value":1}`) // thiếu metricName
	ingestor.enqueue(`{"timestamp":"2026-08-28T12:00","metricName":"ok","value":1}`)
	drainApply(ingestor)

	_, upserts := store.snapshot()
	if upserts != 1 {
		t.Errorf("chỉ message hợp lệ được upsert, nhận %d lần", upserts)
	}

	processed, skipped, _, _ := ingestor.Counters()
	if processed != 1 {
		t.Errorf("processed = %d, muốn 1", processed)
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, muốn 3", skipped)
	}
}

// Cùng identity (timestamp, metricName) gửi hai lần: upsert idempotent,
// store giữ một dòng với giá trị mới nhất.
func TestApply_UpsertIdempotent(t *testing.T) {
	store := newFakeSampleStore()
	ingestor := NewIngestor(nil, "analytics:metrics", 16, store)

	ingestor.enqueue(`{"timestamp":"2026-08-28T12:00","metricName":"active_users","value":10}`)
	ingestor.enqueue(`{"timestamp":"2026-08-28T12:00","metricName":"active_users","value":25}`)
	drainApply(ingestor)

	samples, _ := store.snapshot()
	if len(samples) != 1 {
		t.Fatalf("cùng identity phải cho 1 dòng, nhận %d", len(samples))
	}
	sample := samples["2026-08-28T12:00|active_users"]
	if sample.Value != 25 {
		t.Errorf("giá trị phải là của message mới nhất (25), nhận %v", sample.Value)
	}
}

// Queue đầy: message cũ nhất bị đẩy ra để nhận message mới, có đếm.
func TestEnqueue_QueueDayBoMessageCuNhat(t *testing.T) {
	store := newFakeSampleStore()
	ingestor := NewIngestor(nil, "analytics:metrics", 2, store)

	for i := 0; i < 5; i++ {
		ingestor.enqueue(fmt.Sprintf(`{"timestamp":"2026-08-28T12:0%d","metricName":"m","value":%d}`, i, i))
	}
	drainApply(ingestor)

	_, _, dropped, _ := ingestor.Counters()
	if dropped != 3 {
		t.Errorf("dropped = %d, muốn 3", dropped)
	}

	// Hai message mới nhất (value 3, 4) phải còn lại
	samples, _ := store.snapshot()
	if len(samples) != 2 {
		t.Fatalf("muốn 2 sample còn lại, nhận %d", len(samples))
	}
	if _, ok := samples["2026-08-28T12:04|m"]; !ok {
		t.Error("message mới nhất phải được giữ lại")
	}
}

func TestNextBackoff(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want time.Duration
	}{
		{500 * time.Millisecond, time.Second},
		{time.Second, 2 * time.Second},
		{20 * time.Second, 30 * time.Second}, // chặn trên
		{30 * time.Second, 30 * time.Second},
	}
	for _, tc := range cases {
		if got := nextBackoff(tc.in); got != tc.want {
			t.Errorf("nextBackoff(%v) = %v, muốn %v", tc.in, got, tc.want)
		}
	}
}

func TestState_String(t *testing.T) {
	cases := map[State]string{
		StateDisconnected: "disconnected",
		StateSubscribing:  "subscribing",
		StateConsuming:    "consuming",
		StateFailed:       "failed",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, muốn %q", state, got, want)
		}
	}
}

func TestIngestor_TrangThaiBanDau(t *testing.T) {
	ingestor := NewIngestor(nil, "analytics:metrics", 16, newFakeSampleStore())
	if ingestor.State() != StateDisconnected {
		t.Errorf("trạng thái ban đầu phải là disconnected, nhận %s", ingestor.State())
	}
}

// Stop() trước Start() phải trả về ngay: chưa có loop nào chạy
// nên không được chờ done (sẽ block vĩnh viễn).
func TestStop_TruocStartKhongBlock(t *testing.T) {
	ingestor := NewIngestor(nil, "analytics:metrics", 16, newFakeSampleStore())

	stopped := make(chan struct{})
	go func() {
		ingestor.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop() trước Start() bị block")
	}

	if ingestor.State() != StateDisconnected {
		t.Errorf("trạng thái phải là disconnected, nhận %s", ingestor.State())
	}
}
