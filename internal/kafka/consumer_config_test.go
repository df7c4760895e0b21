package kafka_test

import (
	"slices"
	"testing"
	"time"

	mykafka "github.com/Gunvolt24/storefront/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
)

func TestConsumerConfig_readerConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		startOffset string
		wantOffset  int64
	}{
		{"first lower", "first", kafkago.FirstOffset},
		{"first upper", "FIRST", kafkago.FirstOffset},
		{"first spaced", " FiRsT \n", kafkago.FirstOffset},
		{"first tabs", "\tFiRsT\t", kafkago.FirstOffset},
		{"empty -> last", "", kafkago.LastOffset},
		{"explicit last -> last", "last", kafkago.LastOffset},
		{"LAST -> last", "LAST", kafkago.LastOffset},
		{"unknown -> last", "unknown", kafkago.LastOffset},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := mykafka.ConsumerConfig{
				Brokers:     []string{"k1:9092", "k2:9092"},
				Topic:       "storefront.catalog.products",
				GroupID:     "group-1",
				StartOffset: tt.startOffset,

				// Эти поля не участвуют в ReaderConfig, но зададим любые значения
				ProcessTimeout: 3 * time.Second,
				RetryInitial:   1 * time.Second,
				RetryMax:       5 * time.Second,
			}

			rc := cfg.ReaderConfig()

			// 1) StartOffset нормализован
			if rc.StartOffset != tt.wantOffset {
				t.Fatalf("StartOffset: want %d, got %d", tt.wantOffset, rc.StartOffset)
			}

			// 2) Прокинулись базовые поля
			if !slices.Equal(rc.Brokers, cfg.Brokers) {
				t.Fatalf("Brokers: want %v, got %v", cfg.Brokers, rc.Brokers)
			}
			if rc.Topic != cfg.Topic {
				t.Fatalf("Topic: want %s, got %s", cfg.Topic, rc.Topic)
			}
			if rc.GroupID != cfg.GroupID {
				t.Fatalf("GroupID: want %s, got %s", cfg.GroupID, rc.GroupID)
			}
			// 3) Ручной коммит
			if rc.CommitInterval != 0 {
				t.Fatalf("CommitInterval: want 0, got %v", rc.CommitInterval)

			}
		})
	}

}

func TestProducerConfig_Writer(t *testing.T) {
	t.Parallel()

	cfg := mykafka.ProducerConfig{Brokers: []string{"k1:9092"}, Topic: "storefront.cart.events"}
	w := cfg.Writer()

	if w.Topic != cfg.Topic {
		t.Fatalf("Topic: want %s, got %s", cfg.Topic, w.Topic)
	}
	if w.Addr.String() != "k1:9092" {
		t.Fatalf("Addr: want k1:9092, got %s", w.Addr.String())
	}
	if w.RequiredAcks != kafkago.RequireAll {
		t.Fatalf("RequiredAcks: want RequireAll, got %v", w.RequiredAcks)
	}
	if w.BatchTimeout != 50*time.Millisecond {
		t.Fatalf("BatchTimeout default: want 50ms, got %v", w.BatchTimeout)
	}
	if _, ok := w.Balancer.(*kafkago.Hash); !ok {
		t.Fatalf("Balancer: want *kafka.Hash, got %T", w.Balancer)
	}
}
