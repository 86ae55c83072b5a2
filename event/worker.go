package event

import (
	"context"
	"log/slog"
	"time"
)

// Trainer 是 Worker 依赖的训练入口，由 engine.Engine 实现。
type Trainer interface {
	Train(ctx context.Context) error
}

// Worker 在后台消费目录变更事件并触发全量重训练；可选地按固定间隔周期重训。
//
// 训练失败只记录日志，永不向事件发布方（商品创建请求）传播。
// 并发触发不做互斥：训练产物原子落盘，最后写完者胜出。
type Worker struct {
	// Bus 事件总线（必需）
	Bus *Bus

	// Trainer 训练入口（必需）
	Trainer Trainer

	// Interval 周期重训间隔，0 表示只按事件触发
	Interval time.Duration

	// Logger 结构化日志器，缺省 slog.Default()
	Logger *slog.Logger
}

// Run 阻塞运行直到 ctx 取消。通常在独立 goroutine 中启动：
//
//	go worker.Run(ctx)
func (w *Worker) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	msgs, err := w.Bus.Subscribe(ctx)
	if err != nil {
		return err
	}

	var tick <-chan time.Time
	if w.Interval > 0 {
		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			// 先 Ack 再训练：发布方不等训练结果
			msg.Ack()
			w.train(ctx, logger, "catalog_changed")

		case <-tick:
			w.train(ctx, logger, "interval")
		}
	}
}

func (w *Worker) train(ctx context.Context, logger *slog.Logger, trigger string) {
	logger.Info("retraining model", "trigger", trigger)
	if err := w.Trainer.Train(ctx); err != nil {
		logger.Error("background training failed", "trigger", trigger, "err", err)
	}
}
