// Package messaging 提供理赔通知事件的 Kafka 发布实现。
package messaging

import (
	"context"
	"strconv"

	"github.com/wyfcoding/claimsmanagement/internal/claim/domain"
	"github.com/wyfcoding/claimsmanagement/pkg/mq"
)

// KafkaEventPublisher 将理赔事件发送到 Kafka 主题，消息键为 claimId，
// 保证同一理赔单的事件落在同一分区。
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaEventPublisher 创建 Kafka 事件发布者
func NewKafkaEventPublisher(producer *mq.KafkaProducer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		topic:    topic,
	}
}

// PublishClaimSubmitted 实现 domain.EventPublisher
func (p *KafkaEventPublisher) PublishClaimSubmitted(ctx context.Context, event domain.ClaimSubmittedEvent) error {
	return p.producer.SendMessage(ctx, p.topic, strconv.FormatInt(event.ClaimID, 10), envelope{
		Type:    "ClaimSubmitted",
		Payload: event,
	})
}

// PublishClaimStatusChanged 实现 domain.EventPublisher
func (p *KafkaEventPublisher) PublishClaimStatusChanged(ctx context.Context, event domain.ClaimStatusChangedEvent) error {
	return p.producer.SendMessage(ctx, p.topic, strconv.FormatInt(event.ClaimID, 10), envelope{
		Type:    "ClaimStatusChanged",
		Payload: event,
	})
}

type envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// NoopEventPublisher 事件发布者的空实现，未配置 Kafka 时使用
type NoopEventPublisher struct{}

// PublishClaimSubmitted 实现 domain.EventPublisher
func (NoopEventPublisher) PublishClaimSubmitted(ctx context.Context, event domain.ClaimSubmittedEvent) error {
	return nil
}

// PublishClaimStatusChanged 实现 domain.EventPublisher
func (NoopEventPublisher) PublishClaimStatusChanged(ctx context.Context, event domain.ClaimStatusChangedEvent) error {
	return nil
}
