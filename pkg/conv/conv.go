// Package conv 提供类型转换等泛型工具，用于简化各模块中的重复逻辑。
package conv

// ToFloat64 将 any 转为 float64。
// 支持 float64、float32、int、int64、int32；bool 视为 1.0/0.0。
func ToFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case bool:
		if val {
			return 1.0, true
		}
		return 0.0, true
	default:
		return 0, false
	}
}

// ConfigGet 从 map 配置中取 T 类型的值，缺失或类型不符时返回默认值。
func ConfigGet[T any](m map[string]any, key string, def T) T {
	if m == nil {
		return def
	}
	if v, ok := m[key]; ok {
		if t, ok := v.(T); ok {
			return t
		}
	}
	return def
}
