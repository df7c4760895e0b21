package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// ProducerConfig — параметры публикации событий корзины.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration // сколько копить батч перед отправкой
	WriteTimeout time.Duration // таймаут одной попытки записи
	QueueSize    int           // буфер событий между CartStore и брокером
	MaxAttempts  int           // попыток на сообщение до отбрасывания

	RetryInitial time.Duration
	RetryMax     time.Duration
}

// Writer — kafka.Writer: ключ сообщения (слот корзины) определяет партицию.
func (c *ProducerConfig) Writer() *kafka.Writer {
	bt := c.BatchTimeout
	if bt <= 0 {
		bt = 50 * time.Millisecond
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           bt,
		AllowAutoTopicCreation: true,
	}
}
