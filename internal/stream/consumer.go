// Package stream chứa consumer nhận metric event real-time từ Redis pub/sub
// và fold vào store qua upsert idempotent theo identity (timestamp, metricName).
package stream

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
	"ecommerce_analytics/internal/logger"

	"github.com/redis/go-redis/v9"
)

// SampleStore là phần store mà ingestor cần: một phép upsert idempotent.
// AnalyticsService thỏa interface này; test dùng fake map-backed.
type SampleStore interface {
	UpsertSample(ctx context.Context, sample analyticsmodels.RealtimeSample) (analyticsmodels.RealtimeSample, error)
}

// State là trạng thái của ingestor
type State int32

const (
	StateDisconnected State = iota // Chưa kết nối hoặc đã dừng
	StateSubscribing               // Đang chờ ack subscription
	StateConsuming                 // Đang nhận message
	StateFailed                    // Mất kết nối transport, sẽ reconnect với backoff
)

// String trả về tên trạng thái
func (s State) String() string {
	switch s {
	case StateSubscribing:
		return "subscribing"
	case StateConsuming:
		return "consuming"
	case StateFailed:
		return "failed"
	}
	return "disconnected"
}

// Tham số backoff khi reconnect
const (
	reconnectBackoffMin = 500 * time.Millisecond
	reconnectBackoffMax = 30 * time.Second
)

// metricEvent là payload JSON của một message trên channel
type metricEvent struct {
	Timestamp  string  `json:"timestamp"`  // Thời điểm, cắt về phút
	MetricName string  `json:"metricName"` // Tên metric
	Value      float64 `json:"value"`      // Giá trị sample
}

// Ingestor consume một channel Redis pub/sub và upsert từng sample vào store.
// Receive loop và apply loop tách nhau bằng một queue có giới hạn: khi đầy,
// message cũ nhất bị bỏ (drop-oldest, có đếm) thay vì chặn receive loop.
// Redis subscription không replay lịch sử nên ingestor luôn bắt đầu từ hiện tại.
type Ingestor struct {
	client  *redis.Client
	channel string
	store   SampleStore

	queue chan metricEvent
	state atomic.Int32

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool // true sau khi Start() đã chạy các loop
	cancel    context.CancelFunc
	done      chan struct{} // Đóng khi apply loop xử lý xong message cuối

	// Counters theo dõi sức khỏe pipeline, log định kỳ
	processed atomic.Int64 // Sample đã upsert thành công
	skipped   atomic.Int64 // Message hỏng bị bỏ qua
	dropped   atomic.Int64 // Message bị đẩy khỏi queue khi quá tải
	failed    atomic.Int64 // Upsert lỗi (store không khả dụng)
}

// NewIngestor tạo ingestor cho một channel.
func NewIngestor(client *redis.Client, channel string, queueSize int, store SampleStore) *Ingestor {
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &Ingestor{
		client:  client,
		channel: channel,
		store:   store,
		queue:   make(chan metricEvent, queueSize),
		done:    make(chan struct{}),
	}
}

// State trả về trạng thái hiện tại
func (i *Ingestor) State() State {
	return State(i.state.Load())
}

func (i *Ingestor) setState(s State) {
	old := State(i.state.Swap(int32(s)))
	if old != s {
		logger.GetAppLogger().Infof("Ingestor chuyển trạng thái %s -> %s", old, s)
	}
}

// Counters trả về (processed, skipped, dropped, failed)
func (i *Ingestor) Counters() (int64, int64, int64, int64) {
	return i.processed.Load(), i.skipped.Load(), i.dropped.Load(), i.failed.Load()
}

// Start khởi động receive loop và apply loop. Gọi lặp lại không có tác dụng.
func (i *Ingestor) Start() {
	i.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		i.cancel = cancel
		i.started.Store(true)
		go i.receiveLoop(ctx)
		go i.applyLoop()
	})
}

// Stop dừng nhận message mới và chờ message đang xử lý hoàn tất.
// Gọi lặp lại không có tác dụng; gọi trước Start() cũng vậy —
// chưa có loop nào chạy thì không có gì để chờ.
func (i *Ingestor) Stop() {
	i.stopOnce.Do(func() {
		if !i.started.Load() {
			return
		}
		i.cancel()
		<-i.done
		i.setState(StateDisconnected)
		processed, skipped, dropped, failed := i.Counters()
		logger.GetAppLogger().Infof("Ingestor đã dừng: processed=%d skipped=%d dropped=%d failed=%d",
			processed, skipped, dropped, failed)
	})
}

// receiveLoop duy trì subscription: subscribe, nhận message, và khi transport
// đứt thì reconnect với exponential backoff. Chỉ thoát khi context bị hủy.
func (i *Ingestor) receiveLoop(ctx context.Context) {
	defer close(i.queue)

	backoff := reconnectBackoffMin
	for {
		if ctx.Err() != nil {
			return
		}

		i.setState(StateSubscribing)
		sub := i.client.Subscribe(ctx, i.channel)

		// Chờ ack subscription trước khi coi là đang consume
		if _, err := sub.Receive(ctx); err != nil {
			_ = sub.Close()
			if ctx.Err() != nil {
				return
			}
			i.setState(StateFailed)
			logger.GetErrorLogger().WithError(err).Warnf("Subscribe %s thất bại, thử lại sau %s", i.channel, backoff)
			if !sleepContext(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff)
			continue
		}

		i.setState(StateConsuming)
		backoff = reconnectBackoffMin
		messages := sub.Channel()

	consume:
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg, ok := <-messages:
				if !ok {
					// go-redis đóng channel khi mất kết nối
					break consume
				}
				i.enqueue(msg.Payload)
			}
		}

		_ = sub.Close()
		if ctx.Err() != nil {
			return
		}
		i.setState(StateFailed)
		logger.GetErrorLogger().Warnf("Mất kết nối channel %s, reconnect sau %s", i.channel, backoff)
		if !sleepContext(ctx, backoff) {
			return
		}
		backoff = nextBackoff(backoff)
	}
}

// enqueue decode payload và đưa vào queue. Payload hỏng: log + bỏ qua,
// không bao giờ làm chết consumer loop. Queue đầy: bỏ message cũ nhất.
func (i *Ingestor) enqueue(payload string) {
	var event metricEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		i.skipped.Add(1)
		logger.GetErrorLogger().WithError(err).Warn("Bỏ qua message không đúng định dạng JSON")
		return
	}
	if event.MetricName == "" || event.Timestamp == "" {
		i.skipped.Add(1)
		logger.GetErrorLogger().Warn("Bỏ qua message thiếu timestamp hoặc metricName")
		return
	}

	for {
		select {
		case i.queue <- event:
			return
		default:
		}
		// Queue đầy: nhường chỗ bằng cách bỏ message cũ nhất
		select {
		case <-i.queue:
			i.dropped.Add(1)
		default:
		}
	}
}

// applyLoop lấy event từ queue và upsert vào store. Chạy đến khi queue đóng
// và cạn — message đang xử lý khi Stop() luôn được hoàn tất.
func (i *Ingestor) applyLoop() {
	defer close(i.done)

	for event := range i.queue {
		sample := analyticsmodels.RealtimeSample{
			Timestamp:  event.Timestamp,
			MetricName: event.MetricName,
			Value:      event.Value,
		}

		// Context riêng: upsert của message cuối vẫn hoàn tất sau khi Stop()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err := i.store.UpsertSample(ctx, sample)
		cancel()

		if err != nil {
			i.failed.Add(1)
			logger.GetErrorLogger().WithError(err).Warnf("Upsert sample %s/%s thất bại", sample.MetricName, sample.Timestamp)
			continue
		}
		i.processed.Add(1)
	}
}

// nextBackoff nhân đôi khoảng chờ, chặn trên tại reconnectBackoffMax
func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > reconnectBackoffMax {
		next = reconnectBackoffMax
	}
	return next
}

// sleepContext chờ d hoặc đến khi context bị hủy; trả về false nếu bị hủy
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
