package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

var (
	_ ports.CartListener    = (*CartEventPublisher)(nil)
	_ ports.BackgroundWorker = (*CartEventPublisher)(nil)
)

// writer — минимальный контракт над kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// CartEventMessage — событие корзины в топике.
type CartEventMessage struct {
	EventID    string            `json:"event_id"`
	Op         domain.CartOp     `json:"op"`
	ProductID  int               `json:"product_id,omitempty"`
	ItemCount  int               `json:"item_count"`
	TotalPrice string            `json:"total_price"`
	Items      []domain.LineItem `json:"items"`
	Origin     string            `json:"origin,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NewCartEventMessage — сообщение из события CartStore.
func NewCartEventMessage(ctx context.Context, ev domain.CartEvent) CartEventMessage {
	origin, _ := ctxmeta.OriginFromContext(ctx)
	items := ev.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return CartEventMessage{
		EventID:    uuid.NewString(),
		Op:         ev.Op,
		ProductID:  ev.ProductID,
		ItemCount:  ev.Totals.TotalItemCount,
		TotalPrice: ev.Totals.TotalPrice.StringFixed(2),
		Items:      items,
		Origin:     origin,
		OccurredAt: ev.OccurredAt,
	}
}

// CartEventPublisher — подписчик CartStore: кладёт события в очередь,
// Run отправляет их в Kafka. CartChanged не блокирует мутацию корзины:
// при переполненной очереди событие отбрасывается с метрикой.
type CartEventPublisher struct {
	writer       writer
	topic        string
	key          []byte
	log          ports.Logger
	queue        chan kafka.Message
	writeTimeout time.Duration
	maxAttempts  int
	backoff      *backoff
	closeOnce    sync.Once
}

// NewCartEventPublisher — конструктор; slotKey становится ключом сообщений.
func NewCartEventPublisher(cfg *ProducerConfig, slotKey string, log ports.Logger) *CartEventPublisher {
	return newCartEventPublisher(cfg.Writer(), cfg, slotKey, log)
}

func newCartEventPublisher(w writer, cfg *ProducerConfig, slotKey string, log ports.Logger) *CartEventPublisher {
	qs := cfg.QueueSize
	if qs <= 0 {
		qs = 256
	}
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 5
	}
	return &CartEventPublisher{
		writer:       w,
		topic:        cfg.Topic,
		key:          []byte(slotKey),
		log:          log,
		queue:        make(chan kafka.Message, qs),
		writeTimeout: wt,
		maxAttempts:  attempts,
		backoff:      newBackoff(cfg.RetryInitial, cfg.RetryMax),
	}
}

// CartChanged — загрузка корзины не публикуется, только мутации.
func (p *CartEventPublisher) CartChanged(ctx context.Context, ev domain.CartEvent) {
	if ev.Op == domain.CartOpLoad {
		return
	}

	payload, err := json.Marshal(NewCartEventMessage(ctx, ev))
	if err != nil {
		metrics.KafkaMessagesDropped.WithLabelValues(p.topic, "encode").Inc()
		p.log.Errorf(ctx, "cart event encode failed: %v", err)
		return
	}

	msg := kafka.Message{
		Key:     p.key,
		Value:   payload,
		Headers: []kafka.Header{{Key: HeaderEventType, Value: []byte("cart." + string(ev.Op))}},
	}
	injectTrace(ctx, &msg)

	select {
	case p.queue <- msg:
	default:
		metrics.KafkaMessagesDropped.WithLabelValues(p.topic, "queue_full").Inc()
		p.log.Warnf(ctx, "cart event dropped op=%s: queue full", ev.Op)
	}
}

// Run — отправка очереди до отмены контекста; затем best-effort дослать остаток.
func (p *CartEventPublisher) Run(ctx context.Context) error {
	p.log.Infof(ctx, "cart event publisher started topic=%s", p.topic)
	for {
		select {
		case <-ctx.Done():
			p.log.Infof(ctx, "cart event publisher stopping topic=%s pending=%d", p.topic, p.pending())
			p.flush()
			return ctx.Err()
		case msg := <-p.queue:
			p.publish(ctx, msg)
		}
	}
}

// Close — закрывает writer (дожидается отправки текущего батча).
func (p *CartEventPublisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

func (p *CartEventPublisher) pending() int { return len(p.queue) }

// ------вспомогательные функции------

// publish — до maxAttempts попыток с backoff; затем сообщение отбрасывается.
func (p *CartEventPublisher) publish(ctx context.Context, msg kafka.Message) {
	retry := p.backoff.initial
	for attempt := 1; ; attempt++ {
		wctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
		err := p.writer.WriteMessages(wctx, msg)
		cancel()
		if err == nil {
			metrics.KafkaMessagesProduced.WithLabelValues(p.topic).Inc()
			return
		}

		if attempt >= p.maxAttempts {
			metrics.KafkaMessagesDropped.WithLabelValues(p.topic, "write_failed").Inc()
			p.log.Errorf(ctx, "cart event dropped after %d attempts: %v", attempt, err)
			return
		}

		sleep := p.backoff.withJitterEqual(retry)
		p.log.Warnf(ctx, "cart event write failed: %v (attempt %d, retry in %s)", err, attempt, sleep)
		if !sleepWithBackoff(ctx, sleep) {
			// остановка: сообщение вернётся в flush одной попыткой
			p.writeOnce(msg)
			return
		}
		retry = p.backoff.next(retry)
	}
}

// flush — одна попытка на каждое оставшееся сообщение, без ожидания.
func (p *CartEventPublisher) flush() {
	for {
		select {
		case msg := <-p.queue:
			p.writeOnce(msg)
		default:
			return
		}
	}
}

func (p *CartEventPublisher) writeOnce(msg kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.KafkaMessagesDropped.WithLabelValues(p.topic, "shutdown").Inc()
		p.log.Warnf(ctx, "cart event lost on shutdown: %v", err)
		return
	}
	metrics.KafkaMessagesProduced.WithLabelValues(p.topic).Inc()
}
