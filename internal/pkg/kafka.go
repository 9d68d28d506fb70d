package pkg

import (
	"context"
	"errors"
	"strconv"
	"time"

	"HobbyHop/internal/model"

	"github.com/segmentio/kafka-go"
)

const eventTypeHeader = "event-type"

var ErrKafkaConfig = errors.New("kafka: brokers and topic are required")

// KafkaProducer 社团事件生产者，同一社团的事件按社团 id 分区
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewKafkaProducer(cfg KafkaConfig) (*KafkaProducer, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, ErrKafkaConfig
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 5 * time.Second,
	}
	return &KafkaProducer{writer: w, topic: cfg.Topic}, nil
}

func (p *KafkaProducer) Topic() string { return p.topic }

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// SendClubEvent 投递一条发件箱事件，同步等待 broker 确认
func (p *KafkaProducer) SendClubEvent(ctx context.Context, ev *model.ClubOutbox) error {
	return p.writer.WriteMessages(ctx, ClubEventMessage(ev))
}

// ClubEventMessage key 为社团 id，事件类型放在 header 里方便消费端过滤
func ClubEventMessage(ev *model.ClubOutbox) kafka.Message {
	return kafka.Message{
		Key:   []byte(MakeKeyFromID(ev.ClubID)),
		Value: []byte(ev.Payload),
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(ev.EventType)},
		},
	}
}

func MakeKeyFromID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
