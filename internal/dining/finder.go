package dining

import (
	"context"
	"time"

	"dine-api/internal/amap"
	"dine-api/internal/logger"
)

// Restaurant：对外返回的餐厅结构
// 背景：拍平高德 POI 并附加派生的营业状态；字段名与前端约定一致。
type Restaurant struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Type           string       `json:"type"`
	Address        string       `json:"address"`
	Location       string       `json:"location"`
	Tel            string       `json:"tel"`
	Distance       string       `json:"distance"`
	PName          string       `json:"pname"`
	CityName       string       `json:"cityname"`
	AdName         string       `json:"adname"`
	Rating         string       `json:"rating"`
	Cost           string       `json:"cost"`
	OpenTime       string       `json:"opentime"`
	Photos         []amap.Photo `json:"photos"`
	BusinessStatus string       `json:"businessStatus"`
}

// SearchResult：周边搜索结果集
type SearchResult struct {
	Data  []Restaurant `json:"data"`
	Count string       `json:"count"`
}

// Finder：附近餐厅查询
// 约束：服务级失败与网络失败要能区分于"结果为空"，因此失败走 error 而非空列表。
type Finder struct {
	cli *amap.Client
	now func() time.Time
}

func NewFinder(cli *amap.Client) *Finder {
	return &Finder{cli: cli, now: time.Now}
}

// NewFinderWithClock：注入时钟，测试营业状态派生用
func NewFinderWithClock(cli *amap.Client, now func() time.Time) *Finder {
	return &Finder{cli: cli, now: now}
}

// 文档注释：搜索附近餐厅
// 背景：调用高德周边搜索并逐条归一化；每个 POI 按当日营业时间文本派生营业状态。
// 返回：归一化列表与高德 count；高德失败返回 ServiceError(ErrSearchFailed)，
// 传输失败原样返回。
func (f *Finder) FindNearby(ctx context.Context, lng, lat float64, opts amap.AroundOptions) (*SearchResult, error) {
	pois, count, err := f.cli.PlaceAround(ctx, lng, lat, opts)
	if err != nil {
		return nil, err
	}
	now := f.now()
	out := &SearchResult{Count: count, Data: make([]Restaurant, 0, len(pois))}
	for _, p := range pois {
		photos := []amap.Photo(p.Photos)
		if photos == nil {
			photos = []amap.Photo{}
		}
		out.Data = append(out.Data, Restaurant{
			ID:             p.ID.String(),
			Name:           p.Name.String(),
			Type:           p.Type.String(),
			Address:        p.Address.String(),
			Location:       p.Location.String(),
			Tel:            p.Tel.String(),
			Distance:       p.Distance.String(),
			PName:          p.PName.String(),
			CityName:       p.CityName.String(),
			AdName:         p.AdName.String(),
			Rating:         p.Business.Rating.String(),
			Cost:           p.Business.Cost.String(),
			OpenTime:       p.Business.OpentimeNow.String(),
			Photos:         photos,
			BusinessStatus: Status(p.Business.OpentimeNow.String(), now),
		})
	}
	logger.L().Debug("find_nearby_done", "lng", lng, "lat", lat, "count", count, "returned", len(out.Data))
	return out, nil
}
