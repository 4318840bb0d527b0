package locate

import (
	"context"
	"errors"

	"dine-api/internal/amap"
	"dine-api/internal/logger"
)

// StaticPositioner：固定坐标定位
// 背景：部署在固定场所（门店一体机等）或探针/测试场景下，坐标来自配置。
type StaticPositioner struct {
	Lng float64
	Lat float64
}

func (p *StaticPositioner) Position(ctx context.Context) (float64, float64, error) {
	return p.Lng, p.Lat, nil
}

// AMapIPPositioner：IP 近似定位
// 背景：无宿主定位能力时的兜底，调高德 /v3/ip 拿城市矩形并取中心点。
// 约束：精度为城市级；IP 为空时由高德按请求来源判定。
type AMapIPPositioner struct {
	Cli *amap.Client
	IP  string
}

func (p *AMapIPPositioner) Position(ctx context.Context) (float64, float64, error) {
	r, err := p.Cli.LocateIP(ctx, p.IP)
	if err != nil {
		return 0, 0, err
	}
	lng, lat, ok := amap.RectCenter(r.Rectangle.String())
	if !ok {
		logger.L().Debug("ip_locate_no_rectangle", "ip", p.IP, "province", r.Province, "city", r.City)
		return 0, 0, errors.New(msgPositionFailed)
	}
	return lng, lat, nil
}
