package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/kafka/mocks"
	portmocks "github.com/Gunvolt24/storefront/internal/ports/mocks"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
)

func newTestPublisher(w writer, queueSize int) *CartEventPublisher {
	p := newCartEventPublisher(w, &ProducerConfig{
		Topic:        "storefront.cart.events",
		QueueSize:    queueSize,
		WriteTimeout: 50 * time.Millisecond,
		MaxAttempts:  3,
		RetryInitial: time.Millisecond,
		RetryMax:     2 * time.Millisecond,
	}, "cart", ports.NopLogger{})
	p.backoff.jitterRand = rand.New(rand.NewSource(1))
	return p
}

func addEvent() domain.CartEvent {
	items := []domain.LineItem{{ID: 1, Title: "a", Price: 10, Quantity: 2}, {ID: 2, Title: "b", Price: 5.5, Quantity: 1}}
	return domain.CartEvent{
		Op:         domain.CartOpAdd,
		ProductID:  2,
		Items:      items,
		Totals:     domain.ComputeTotals(items),
		OccurredAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewCartEventMessage(t *testing.T) {
	ctx := ctxmeta.WithOrigin(context.Background(), ctxmeta.OriginHTTP)
	msg := NewCartEventMessage(ctx, addEvent())

	assert.NotEmpty(t, msg.EventID)
	assert.Equal(t, domain.CartOpAdd, msg.Op)
	assert.Equal(t, 2, msg.ProductID)
	assert.Equal(t, 3, msg.ItemCount)
	assert.Equal(t, "25.50", msg.TotalPrice)
	assert.Equal(t, "http", msg.Origin)
	assert.Len(t, msg.Items, 2)

	cleared := NewCartEventMessage(context.Background(), domain.CartEvent{Op: domain.CartOpClear})
	assert.NotNil(t, cleared.Items)
	assert.Equal(t, "0.00", cleared.TotalPrice)
}

func TestPublisher_PublishesQueuedEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)

	var mu sync.Mutex
	var got []kafka.Message
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
		mu.Lock()
		got = append(got, msgs...)
		mu.Unlock()
		return nil
	}).Times(2)

	p := newTestPublisher(w, 8)
	p.CartChanged(context.Background(), domain.CartEvent{Op: domain.CartOpLoad}) // не публикуется
	p.CartChanged(context.Background(), addEvent())
	p.CartChanged(context.Background(), domain.CartEvent{Op: domain.CartOpClear})
	require.Equal(t, 2, p.pending())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	assert.Equal(t, []byte("cart"), got[0].Key)
	assert.Equal(t, "cart.add", headerCarrier{headers: &got[0].Headers}.Get(HeaderEventType))

	var msg CartEventMessage
	require.NoError(t, json.Unmarshal(got[0].Value, &msg))
	assert.Equal(t, domain.CartOpAdd, msg.Op)
	assert.Equal(t, "25.50", msg.TotalPrice)
}

func TestPublisher_QueueFull_Drops(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)

	p := newTestPublisher(w, 1)
	p.CartChanged(context.Background(), addEvent())
	p.CartChanged(context.Background(), addEvent()) // не блокирует, отбрасывается
	assert.Equal(t, 1, p.pending())
}

func TestPublisher_RetriesThenDrops(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)

	// 3 попытки на первое сообщение, второе уходит с первого раза
	gomock.InOrder(
		w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down")).Times(3),
		w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil),
	)

	p := newTestPublisher(w, 4)
	p.CartChanged(context.Background(), addEvent())
	p.CartChanged(context.Background(), addEvent())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool { return p.pending() == 0 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done
}

func TestPublisher_FlushOnShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	p := newTestPublisher(w, 4)
	p.CartChanged(context.Background(), addEvent())
	p.CartChanged(context.Background(), addEvent())

	// контекст уже отменён: Run сразу уходит в flush
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Run(ctx), context.Canceled)
	assert.Equal(t, 0, p.pending())
}

func TestPublisher_LogsStopWithPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	log := portmocks.NewMockLogger(ctrl)
	log.EXPECT().Infof(gomock.Any(), "cart event publisher started topic=%s", "storefront.cart.events")
	// сколько событий осталось к моменту остановки, зависит от select
	log.EXPECT().Infof(gomock.Any(), "cart event publisher stopping topic=%s pending=%d", "storefront.cart.events", gomock.Any())

	p := newTestPublisher(w, 4)
	p.log = log
	p.CartChanged(context.Background(), addEvent())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Run(ctx), context.Canceled)
	assert.Zero(t, p.pending())
}

func TestPublisher_CloseOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	w.EXPECT().Close().Return(nil).Times(1)

	p := newTestPublisher(w, 1)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}
