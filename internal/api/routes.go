// 包 api：集中注册 HTTP API 路由以解耦主入口，便于后续扩展与替换
package api

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"dine-api/internal/amap"
	"dine-api/internal/dining"
	"dine-api/internal/geo"
	"dine-api/internal/geocache"
	"dine-api/internal/locate"
	"dine-api/internal/logger"
	"dine-api/internal/metrics"
	"dine-api/internal/store"
	"dine-api/internal/timeutil"

	"github.com/redis/go-redis/v9"
)

// 地址响应：在统一解析结果上附加按风格拼装的展示文案
type addressResponse struct {
	locate.Result
	Display string `json:"display,omitempty"`
}

// writeJSON：统一响应头与编码
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	_ = json.NewEncoder(w).Encode(v)
}

// writeBadRequest：参数错误响应；先置头再写状态码
func writeBadRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}

// parseFloat：查询参数转浮点，带成功标记
func parseFloat(r *http.Request, name string) (float64, bool) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	return v, err == nil
}

// redisTTL：地址热缓存的过期时间，与进程内缓存同口径
func redisTTL() time.Duration {
	if s := os.Getenv("CACHE_TTL_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Hour
}

// 构建并返回 API 路由：独立 ServeMux 便于在主入口挂载到 /api 前缀
// 背景：st/rc 允许为 nil（未配置 PG/Redis 时跳过统计与热缓存），不影响主链路
func BuildRoutes(st *store.Store, rc *redis.Client, pos locate.Positioner, rv *locate.Resolver, fd *dining.Finder, foods []string) *http.ServeMux {
	ttl := redisTTL()
	apiMux := http.NewServeMux()

	// 当前位置 → 详细地址（完整链路：定位 + 缓存 + 逆地理）
	apiMux.HandleFunc("/address", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		t0 := time.Now()
		metrics.RequestsTotal.Inc()
		res := rv.ResolveCurrent(ctx)
		if res.Success && st != nil {
			_ = st.IncrStats(ctx, res.FromCache)
			_ = st.RecordResolution(ctx, geocache.Key(res.Longitude, res.Latitude),
				res.Longitude, res.Latitude, res.FormattedAddress, res.FromCache)
		}
		out := addressResponse{Result: res}
		if style := r.URL.Query().Get("style"); style != "" && res.Success {
			out.Display = locate.FormatAddress(&res.AddressRecord, style)
		}
		writeJSON(w, out)
		metrics.RequestDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	})

	// 指定坐标 → 详细地址（带 Redis 热缓存层）
	apiMux.HandleFunc("/regeo", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		t0 := time.Now()
		metrics.RequestsTotal.Inc()
		lng, ok1 := parseFloat(r, "lng")
		lat, ok2 := parseFloat(r, "lat")
		if !ok1 || !ok2 {
			writeBadRequest(w, "invalid lng/lat")
			return
		}
		key := "addr:" + geocache.Key(lng, lat)
		if rc != nil {
			if s, _ := rc.Get(ctx, key).Result(); s != "" {
				metrics.RedisHitsTotal.Inc()
				var rec amap.AddressRecord
				_ = json.Unmarshal([]byte(s), &rec)
				res := locate.Result{Success: true, AddressRecord: rec, FromCache: true, Longitude: lng, Latitude: lat}
				out := addressResponse{Result: res}
				if style := r.URL.Query().Get("style"); style != "" {
					out.Display = locate.FormatAddress(&rec, style)
				}
				writeJSON(w, out)
				metrics.RequestDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
				return
			}
			metrics.RedisMissesTotal.Inc()
		}
		res := rv.ResolveAt(ctx, lng, lat)
		if res.Success && rc != nil {
			b, _ := json.Marshal(res.AddressRecord)
			_ = rc.Set(ctx, key, string(b), ttl).Err()
		}
		if res.Success && st != nil {
			_ = st.IncrStats(ctx, res.FromCache)
		}
		out := addressResponse{Result: res}
		if style := r.URL.Query().Get("style"); style != "" && res.Success {
			out.Display = locate.FormatAddress(&res.AddressRecord, style)
		}
		writeJSON(w, out)
		metrics.RequestDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	})

	// 仅定位：返回当前坐标
	apiMux.HandleFunc("/position", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		metrics.PositionRequestsTotal.Inc()
		lng, lat, err := pos.Position(r.Context())
		if err != nil {
			metrics.PositionFailTotal.Inc()
			writeJSON(w, map[string]any{"success": false, "error": err.Error()})
			return
		}
		writeJSON(w, map[string]any{"success": true, "longitude": lng, "latitude": lat})
	})

	// 附近餐厅搜索
	apiMux.HandleFunc("/restaurants", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		t0 := time.Now()
		metrics.RequestsTotal.Inc()
		lng, ok1 := parseFloat(r, "lng")
		lat, ok2 := parseFloat(r, "lat")
		if !ok1 || !ok2 {
			writeBadRequest(w, "invalid lng/lat")
			return
		}
		q := r.URL.Query()
		opts := amap.AroundOptions{
			Keywords:   q.Get("keywords"),
			Types:      q.Get("types"),
			SortRule:   q.Get("sortrule"),
			ShowFields: q.Get("show_fields"),
		}
		if n, err := strconv.Atoi(q.Get("radius")); err == nil {
			opts.Radius = n
		}
		if n, err := strconv.Atoi(q.Get("page_size")); err == nil {
			opts.PageSize = n
		}
		if n, err := strconv.Atoi(q.Get("page_num")); err == nil {
			opts.PageNum = n
		}
		res, err := fd.FindNearby(ctx, lng, lat, opts)
		if err != nil {
			writeJSON(w, map[string]any{"success": false, "error": locate.RemoteFailure(err)})
			return
		}
		writeJSON(w, map[string]any{"success": true, "data": res.Data, "count": res.Count})
		metrics.RequestDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	})

	// 两点距离（米）
	apiMux.HandleFunc("/distance", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		lat1, ok1 := parseFloat(r, "lat1")
		lng1, ok2 := parseFloat(r, "lng1")
		lat2, ok3 := parseFloat(r, "lat2")
		lng2, ok4 := parseFloat(r, "lng2")
		if !ok1 || !ok2 || !ok3 || !ok4 {
			writeBadRequest(w, "invalid coordinates")
			return
		}
		writeJSON(w, map[string]any{"success": true, "distance": geo.Distance(lat1, lng1, lat2, lng2)})
	})

	// 当前用餐时段与时间展示
	apiMux.HandleFunc("/meal", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		now := time.Now()
		p := timeutil.CurrentMealPeriod(now)
		writeJSON(w, map[string]any{"key": p.Key, "name": p.Name, "time": timeutil.FormatClock(now)})
	})

	// 随机选菜：候选来自配置，exclude 为逗号分隔的排除项
	apiMux.HandleFunc("/food/random", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		var exclude []string
		if s := r.URL.Query().Get("exclude"); s != "" {
			exclude = strings.Split(s, ",")
		}
		food, ok := timeutil.RandomFood(foods, exclude)
		if !ok {
			writeJSON(w, map[string]any{"success": false, "food": nil})
			return
		}
		writeJSON(w, map[string]any{"success": true, "food": food})
	})

	// 解析统计
	apiMux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			writeJSON(w, map[string]any{"total": 0, "today": 0})
			return
		}
		t, _ := st.GetTotals(r.Context())
		writeJSON(w, map[string]any{"total": t.Total, "today": t.Today})
	})

	// 最近解析的地址（运营面板）
	apiMux.HandleFunc("/recent", func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			writeJSON(w, []any{})
			return
		}
		limit := 0
		if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
			limit = n
		}
		rs, err := st.RecentResolutions(r.Context(), limit)
		if err != nil {
			logger.L().Error("recent_query_error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		out := make([]map[string]any, 0, len(rs))
		for _, x := range rs {
			out = append(out, map[string]any{
				"key": x.Key, "lng": x.Lng, "lat": x.Lat,
				"address": x.Address, "queries": x.Queries,
			})
		}
		writeJSON(w, out)
	})

	return apiMux
}
