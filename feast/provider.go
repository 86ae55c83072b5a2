package feast

import (
	"context"

	"github.com/rushteam/shoprec/pkg/conv"
)

// ProductFeatureProvider 把 Feast 在线特征适配成 feature.Provider 接口，
// 供特征抽取器在训练前为商品追加实时统计类特征列。
type ProductFeatureProvider struct {
	Client Client

	// EntityKey 实体键名，缺省 "product_id"
	EntityKey string
}

// NewProductFeatureProvider 创建商品特征提供方。
func NewProductFeatureProvider(client Client, entityKey string) *ProductFeatureProvider {
	if entityKey == "" {
		entityKey = "product_id"
	}
	return &ProductFeatureProvider{Client: client, EntityKey: entityKey}
}

func (p *ProductFeatureProvider) Name() string { return "feast" }

// ProductFeatures 按商品批量拉取在线特征，无法转为数值的特征值被跳过。
func (p *ProductFeatureProvider) ProductFeatures(ctx context.Context, productIDs []int64, featureNames []string) (map[int64]map[string]float64, error) {
	if p.Client == nil || len(productIDs) == 0 || len(featureNames) == 0 {
		return nil, nil
	}

	entityRows := make([]map[string]interface{}, len(productIDs))
	for i, id := range productIDs {
		entityRows[i] = map[string]interface{}{p.EntityKey: id}
	}

	resp, err := p.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   featureNames,
		EntityRows: entityRows,
	})
	if err != nil {
		return nil, err
	}

	out := make(map[int64]map[string]float64, len(productIDs))
	for i, fv := range resp.FeatureVectors {
		if i >= len(productIDs) {
			break
		}
		vals := make(map[string]float64, len(fv.Values))
		for name, raw := range fv.Values {
			if f, ok := conv.ToFloat64(raw); ok {
				vals[name] = f
			}
		}
		out[productIDs[i]] = vals
	}
	return out, nil
}
