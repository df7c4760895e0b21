package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// HeaderEventType — тип события корзины в заголовках сообщения.
const HeaderEventType = "event-type"

// headerCarrier — заголовки kafka.Message как носитель контекста трассировки.
type headerCarrier struct {
	headers *[]kafka.Header
}

var _ propagation.TextMapCarrier = headerCarrier{}

func (hc headerCarrier) Get(key string) string {
	for _, h := range *hc.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (hc headerCarrier) Set(key, value string) {
	for i := range *hc.headers {
		if (*hc.headers)[i].Key == key {
			(*hc.headers)[i].Value = []byte(value)
			return
		}
	}
	*hc.headers = append(*hc.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (hc headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*hc.headers))
	for _, h := range *hc.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

// injectTrace — traceparent/baggage текущего спана в заголовки сообщения.
func injectTrace(ctx context.Context, msg *kafka.Message) {
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{headers: &msg.Headers})
}

// extractTrace — контекст с удалённым родительским спаном из заголовков.
func extractTrace(ctx context.Context, msg *kafka.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, headerCarrier{headers: &msg.Headers})
}
