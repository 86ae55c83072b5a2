// Package event 用发布/订阅解耦商品写路径与模型重训练。
//
// 商品创建方发布 catalog.changed 事件后立即返回；Worker 异步消费并触发
// 全量训练，训练耗时与失败都不会回传到创建商品的请求。
package event

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicCatalogChanged 是目录变更事件主题。
const TopicCatalogChanged = "catalog.changed"

// CatalogChanged 是目录变更事件载荷。
type CatalogChanged struct {
	ProductID int64 `json:"product_id"`
}

// Bus 是进程内事件总线（Watermill gochannel 实现）。
// 单进程部署够用；换成 NATS/Kafka 只需替换 Publisher/Subscriber。
type Bus struct {
	pubSub *gochannel.GoChannel
}

// NewBus 创建事件总线。
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewSlogLogger(logger),
		),
	}
}

// PublishCatalogChanged 发布目录变更事件（非阻塞于训练）。
func (b *Bus) PublishCatalogChanged(productID int64) error {
	payload, err := json.Marshal(CatalogChanged{ProductID: productID})
	if err != nil {
		return err
	}
	return b.pubSub.Publish(TopicCatalogChanged, message.NewMessage(watermill.NewUUID(), payload))
}

// Subscribe 订阅目录变更事件。
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, TopicCatalogChanged)
}

// Close 关闭总线，释放订阅通道。
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
