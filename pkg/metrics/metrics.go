package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	CartOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Cart mutations by operation and result",
		},
		[]string{"op", "result"}, // op: add|remove|clear; result: ok|fetch_error
	)
	CartLines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_lines",
			Help: "Number of distinct line items in the cart",
		},
	)
	CartItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_items",
			Help: "Sum of quantities in the cart",
		},
	)
	CartPersistFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_persist_failures_total",
			Help: "Failed cart slot reads/writes",
		},
		[]string{"op"}, // load|save|decode
	)
)

var (
	CatalogFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_fetches_total",
			Help: "Requests to the remote catalog API",
		},
		[]string{"endpoint", "result"}, // endpoint: list|product; result: ok|not_found|error
	)
	CatalogFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_fetch_duration_seconds",
			Help:    "Remote catalog request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	ProductCacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_product_cache_operations_total",
			Help: "Product cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	ProductCacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_product_cache_size",
			Help: "Number of products currently in cache",
		},
	)
)

var (
	KafkaMessagesProduced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_produced_total",
			Help: "Number of messages written to Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_dropped_total",
			Help: "Number of messages dropped before reaching Kafka",
		},
		[]string{"topic", "reason"}, // reason: queue_full|write_failed
	)
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

func all() []prometheus.Collector {
	return []prometheus.Collector{
		CartOps, CartLines, CartItems, CartPersistFailures,
		CatalogFetches, CatalogFetchDuration, ProductCacheOps, ProductCacheSize,
		KafkaMessagesProduced, KafkaMessagesDropped,
		KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
	}
}

// MustRegister — регистрирует метрики в default registry; повторный вызов безопасен.
func MustRegister() {
	for _, c := range all() {
		if err := prometheus.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			panic(err)
		}
	}
}
