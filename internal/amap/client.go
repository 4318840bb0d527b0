// 包 amap：高德 REST API 客户端，覆盖逆地理编码、周边搜索与 IP 定位三个在线数据源
package amap

import (
	"context"
	"dine-api/internal/logger"
	"dine-api/internal/metrics"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBase = "https://restapi.amap.com"

// 服务级错误哨兵：区分高德返回失败（status!="1"）与传输层失败
var (
	ErrGeocodeFailed = errors.New("regeo failed")
	ErrSearchFailed  = errors.New("place search failed")
	ErrLocateFailed  = errors.New("ip locate failed")
)

// ServiceError：高德服务级失败
// 背景：status!="1" 时需要把响应里的 info 透传给上层拼装失败消息；
// 用 Unwrap 对接 errors.Is 以区分失败类别。
type ServiceError struct {
	Kind error
	Info string
}

func (e *ServiceError) Error() string {
	if e.Info != "" {
		return e.Info
	}
	return e.Kind.Error()
}

func (e *ServiceError) Unwrap() error { return e.Kind }

// Client：高德 Web 服务客户端
// 背景：集中持有密钥与 HTTP 客户端，避免在各调用点重复组装；Base 可替换用于测试。
// 约束：密钥为服务端 Web 服务 key；调用方控制超时（传入带 Timeout 的 http.Client）。
type Client struct {
	Base string
	key  string
	hc   *http.Client
}

// New：构造客户端；client 为空时使用 5s 超时的默认客户端
func New(key string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{Base: defaultBase, key: key, hc: client}
}

// get：统一发起 GET 请求并解码 JSON 响应
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

// 文档注释：逆地理编码（坐标转地址）
// 为什么：定位链路的核心外呼；缓存未命中时调用，结果由上层写回缓存。
// 参数：lng/lat 为 gcj02 坐标；location 参数固定 "lng,lat" 顺序。
// 返回：归一化 AddressRecord；status!="1" 或缺少 regeocode 时返回 ServiceError，
// 传输失败原样返回以便上层归类为网络错误。
func (c *Client) ReGeo(ctx context.Context, lng, lat float64) (*AddressRecord, error) {
	if c.key == "" {
		return nil, &ServiceError{Kind: ErrGeocodeFailed, Info: "missing key"}
	}
	q := url.Values{}
	q.Set("key", c.key)
	q.Set("location", fmt.Sprintf("%v,%v", lng, lat))
	q.Set("extensions", "all")
	q.Set("output", "json")
	t0 := time.Now()
	metrics.ReGeoRequestsTotal.Inc()
	logger.L().Debug("regeo_req", "lng", lng, "lat", lat)
	var e regeoEnvelope
	if err := c.get(ctx, "/v3/geocode/regeo", q, &e); err != nil {
		logger.L().Error("regeo_http_error", "err", err)
		metrics.ReGeoFailTotal.Inc()
		return nil, err
	}
	dur := time.Since(t0).Milliseconds()
	metrics.ReGeoDurationMs.Observe(float64(dur))
	if e.Status != "1" || e.Regeocode == nil {
		logger.L().Debug("regeo_resp_error", "status", e.Status, "info", e.Info, "infocode", e.Infocode)
		metrics.ReGeoFailTotal.Inc()
		return nil, &ServiceError{Kind: ErrGeocodeFailed, Info: e.Info}
	}
	rec := normalizeAddress(&e)
	logger.L().Debug("regeo_resp", "lng", lng, "lat", lat, "address", rec.FormattedAddress, "duration_ms", dur)
	metrics.ReGeoSuccessTotal.Inc()
	return &rec, nil
}

// AroundOptions：周边搜索可调参数
// 约束：零值字段取缺省；Extra 中的键值原样透传给高德，不做合法性校验。
type AroundOptions struct {
	Keywords   string
	Types      string
	Radius     int
	SortRule   string
	PageSize   int
	PageNum    int
	ShowFields string
	Extra      map[string]string
}

// 周边搜索缺省参数：与小程序端约定保持一致
const (
	defaultKeywords   = "美食"
	defaultTypes      = "050000"
	defaultRadius     = 5000
	defaultSortRule   = "distance"
	defaultPageSize   = 20
	defaultPageNum    = 1
	defaultShowFields = "business,photos"
)

// 文档注释：周边 POI 搜索
// 背景：按坐标搜索附近餐饮 POI；business/photos 字段需要 show_fields 显式请求。
// 返回：POI 列表与高德 count；status!="1" 返回 ServiceError（区别于空结果）。
func (c *Client) PlaceAround(ctx context.Context, lng, lat float64, opts AroundOptions) ([]POI, string, error) {
	if opts.Keywords == "" {
		opts.Keywords = defaultKeywords
	}
	if opts.Types == "" {
		opts.Types = defaultTypes
	}
	if opts.Radius <= 0 {
		opts.Radius = defaultRadius
	}
	if opts.SortRule == "" {
		opts.SortRule = defaultSortRule
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.PageNum <= 0 {
		opts.PageNum = defaultPageNum
	}
	if opts.ShowFields == "" {
		opts.ShowFields = defaultShowFields
	}
	q := url.Values{}
	q.Set("key", c.key)
	q.Set("location", fmt.Sprintf("%v,%v", lng, lat))
	q.Set("keywords", opts.Keywords)
	q.Set("types", opts.Types)
	q.Set("radius", strconv.Itoa(opts.Radius))
	q.Set("sortrule", opts.SortRule)
	q.Set("page_size", strconv.Itoa(opts.PageSize))
	q.Set("page_num", strconv.Itoa(opts.PageNum))
	q.Set("show_fields", opts.ShowFields)
	for k, v := range opts.Extra {
		q.Set(k, v)
	}
	t0 := time.Now()
	metrics.PlaceRequestsTotal.Inc()
	logger.L().Debug("place_req", "lng", lng, "lat", lat, "keywords", opts.Keywords, "radius", opts.Radius)
	var e aroundEnvelope
	if err := c.get(ctx, "/v5/place/around", q, &e); err != nil {
		logger.L().Error("place_http_error", "err", err)
		metrics.PlaceFailTotal.Inc()
		return nil, "", err
	}
	dur := time.Since(t0).Milliseconds()
	metrics.PlaceDurationMs.Observe(float64(dur))
	if e.Status != "1" {
		logger.L().Debug("place_resp_error", "status", e.Status, "info", e.Info, "infocode", e.Infocode)
		metrics.PlaceFailTotal.Inc()
		return nil, "", &ServiceError{Kind: ErrSearchFailed, Info: e.Info}
	}
	logger.L().Debug("place_resp", "count", e.Count, "pois", len(e.POIs), "duration_ms", dur)
	metrics.PlaceSuccessTotal.Inc()
	return e.POIs, e.Count, nil
}

// 文档注释：IP 定位（REST）
// 背景：宿主定位能力不可用时的近似来源；为空 IP 时由高德按请求来源定位。
// 约束：仅支持国内 IPv4；返回城市矩形，坐标精度有限，仅用于兜底。
func (c *Client) LocateIP(ctx context.Context, ip string) (*IPResponse, error) {
	if c.key == "" {
		return nil, &ServiceError{Kind: ErrLocateFailed, Info: "missing key"}
	}
	q := url.Values{}
	q.Set("key", c.key)
	if ip != "" {
		q.Set("ip", ip)
	}
	logger.L().Debug("ip_locate_req", "ip", ip)
	var r IPResponse
	if err := c.get(ctx, "/v3/ip", q, &r); err != nil {
		logger.L().Error("ip_locate_http_error", "err", err)
		return nil, err
	}
	if r.Status != "1" {
		logger.L().Debug("ip_locate_resp_error", "status", r.Status, "info", r.Info)
		return &r, &ServiceError{Kind: ErrLocateFailed, Info: r.Info}
	}
	logger.L().Debug("ip_locate_resp", "province", r.Province, "city", r.City, "rectangle", r.Rectangle)
	return &r, nil
}
