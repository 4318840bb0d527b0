// 包 locate：定位与地址解析编排（取坐标 → 查缓存 → 逆地理 → 回写缓存）
package locate

import (
	"context"
	"errors"
	"time"

	"dine-api/internal/amap"
	"dine-api/internal/geocache"
	"dine-api/internal/logger"
	"dine-api/internal/metrics"
)

// 链路各阶段的兜底失败文案：定位能力/高德均未给出消息时使用
const (
	msgPositionFailed = "定位失败"
	msgGeocodeFailed  = "地址解析失败"
	msgSearchFailed   = "查询失败"
	msgNetworkFailed  = "网络请求失败"
)

// Positioner：宿主定位能力抽象
// 背景：小程序端由宿主回调给坐标；服务端场景下由实现方决定来源（静态配置、
// IP 近似定位等）。恰好两种结果：坐标或失败。
type Positioner interface {
	Position(ctx context.Context) (lng float64, lat float64, err error)
}

// Result：地址解析统一返回
// 约束：任何失败都收敛为 Success=false + Error 文案，调用方不会看到未处理故障；
// 成功时地址字段内联展开并附 fromCache 与原始坐标。
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	amap.AddressRecord
	FromCache bool    `json:"fromCache"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Resolver：地址解析编排器
// 背景：缓存实例显式持有并注入，不做进程级单例；两个并发未命中会各发一次
// 逆地理请求，后写者覆盖，属已知且可接受的重复开销。
type Resolver struct {
	pos   Positioner
	cache *geocache.Cache
	cli   *amap.Client
}

func NewResolver(pos Positioner, cache *geocache.Cache, cli *amap.Client) *Resolver {
	return &Resolver{pos: pos, cache: cache, cli: cli}
}

// 文档注释：解析当前位置的详细地址（带缓存）
// 流程：1) 向定位能力取坐标；2) 查量化坐标缓存，命中直接返回；3) 未命中调逆
// 地理编码；4) 成功后回写缓存。失败消息按优先级取第一个可用的：定位能力自带
// 消息 → 高德 info → 各阶段兜底文案。
func (r *Resolver) ResolveCurrent(ctx context.Context) Result {
	t0 := time.Now()
	metrics.PositionRequestsTotal.Inc()
	lng, lat, err := r.pos.Position(ctx)
	if err != nil {
		metrics.PositionFailTotal.Inc()
		logger.L().Debug("position_error", "err", err)
		return Result{Success: false, Error: failMessage(err, msgPositionFailed)}
	}
	if rec, ok := r.cache.Get(lng, lat); ok {
		logger.L().Debug("address_cache_hit", "lng", lng, "lat", lat)
		return Result{Success: true, AddressRecord: rec, FromCache: true, Longitude: lng, Latitude: lat}
	}
	rec, err := r.cli.ReGeo(ctx, lng, lat)
	if err != nil {
		return Result{Success: false, Error: remoteMessage(err, msgGeocodeFailed)}
	}
	r.cache.Set(lng, lat, *rec)
	logger.L().Debug("address_resolved", "lng", lng, "lat", lat,
		"address", rec.FormattedAddress, "duration_ms", time.Since(t0).Milliseconds())
	return Result{Success: true, AddressRecord: *rec, FromCache: false, Longitude: lng, Latitude: lat}
}

// ResolveAt：按给定坐标解析地址（跳过定位能力，同样走缓存）
func (r *Resolver) ResolveAt(ctx context.Context, lng, lat float64) Result {
	if rec, ok := r.cache.Get(lng, lat); ok {
		return Result{Success: true, AddressRecord: rec, FromCache: true, Longitude: lng, Latitude: lat}
	}
	rec, err := r.cli.ReGeo(ctx, lng, lat)
	if err != nil {
		return Result{Success: false, Error: remoteMessage(err, msgGeocodeFailed)}
	}
	r.cache.Set(lng, lat, *rec)
	return Result{Success: true, AddressRecord: *rec, FromCache: false, Longitude: lng, Latitude: lat}
}

// failMessage：定位能力失败取其自带消息，为空时用兜底文案
func failMessage(err error, fallback string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// RemoteFailure：周边搜索失败文案（供 api 层拼装响应）
func RemoteFailure(err error) string {
	return remoteMessage(err, msgSearchFailed)
}

// remoteMessage：区分高德服务级失败与传输失败
// 服务级失败优先透传 info；传输失败统一归为网络文案，不暴露底层细节
func remoteMessage(err error, fallback string) string {
	var se *amap.ServiceError
	if errors.As(err, &se) {
		if se.Info != "" {
			return se.Info
		}
		return fallback
	}
	return msgNetworkFailed
}
