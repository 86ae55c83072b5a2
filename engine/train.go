package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/interaction"
	"github.com/rushteam/shoprec/pkg/matrix"
	"github.com/rushteam/shoprec/profile"
	"github.com/rushteam/shoprec/snapshot"
)

// Train 从外部数据源全量重建模型：特征矩阵、相似度矩阵、交互矩阵、偏好画像，
// 打包成一个快照原子落盘并换入内存。没有增量路径，没有部分成功状态。
//
// 错误处理：目录为空返回 EMPTY_DATA；特征抽取失败内部降级为单位特征，
// 训练仍然完成；任何 panic 被捕获转为错误，不向调用方扩散。
func (e *Engine) Train(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = core.NewDomainError(core.ModuleEngine, core.ErrorCodeInternalError,
				fmt.Sprintf("train: panic recovered: %v", r))
		}
	}()

	start := time.Now()

	products, err := e.catalog.ListProducts(ctx)
	if err != nil {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInternalError, "train: list products: "+err.Error())
	}
	if len(products) == 0 {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeEmptyData, "train: no products in catalog")
	}

	productIDs := make([]int64, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}

	// 1. 商品特征 + 商品相似度
	feats, degraded := e.extractor.Extract(ctx, products)
	if degraded {
		e.logger.Warn("feature extraction degraded to identity features", "engine", e.name)
	}
	productSim := matrix.CosineRows(feats)

	// 2. 行为日志 → 用户-商品矩阵
	var inters []core.Interaction
	if e.inters != nil {
		inters, err = e.inters.ListInteractions(ctx)
		if err != nil {
			return core.NewDomainError(core.ModuleInteraction, core.ErrorCodeInternalError, "train: list interactions: "+err.Error())
		}
	}
	userItem, userIDs := interaction.BuildUserItemMatrix(inters, productIDs)

	// 3. 用户相似度：单用户的自相似没有意义，至少 2 个活跃用户才计算
	var userSim [][]float64
	if len(userItem) >= 2 {
		userSim = matrix.CosineRows(userItem)
	}

	// 4. 偏好画像与最近历史
	profiles := profile.Build(products, inters)
	history := interaction.BuildHistory(inters)

	snap := &snapshot.Snapshot{
		Engine:     e.name,
		Version:    snapshot.Version,
		TrainedAt:  time.Now(),
		ProductIDs: productIDs,
		UserIDs:    userIDs,
		Features:   feats,
		ProductSim: productSim,
		UserItem:   userItem,
		UserSim:    userSim,
		Profiles:   profiles,
		History:    history,
		Products:   products,
	}

	// 5. 原子落盘后换入内存（并发训练时最后写完者胜出）
	if e.files != nil {
		if err := e.files.Save(snap); err != nil {
			return err
		}
	}
	e.snap.Store(snap)

	e.logger.Info("model trained",
		"engine", e.name,
		"products", len(products),
		"users", len(userIDs),
		"interactions", len(inters),
		"degraded_features", degraded,
		"elapsed", time.Since(start))
	return nil
}

// Track 追加一条行为记录（fire-and-forget 写路径）。
// 权重按行为类型自动赋值；只返回创建成功/失败，不触发训练。
func (e *Engine) Track(ctx context.Context, in *core.Interaction) error {
	if e.inters == nil {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: interaction store not configured")
	}
	return e.inters.AppendInteraction(ctx, in)
}
