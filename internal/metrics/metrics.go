package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_requests_total",
		Help: "Total number of API requests",
	})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dineapi_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	GeoCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_geocache_hits_total",
		Help: "Total quantized-coordinate cache hits",
	})
	GeoCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_geocache_misses_total",
		Help: "Total quantized-coordinate cache misses",
	})
	RedisHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_redis_hits_total",
		Help: "Total redis cache hits",
	})
	RedisMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_redis_misses_total",
		Help: "Total redis cache misses",
	})
	ReGeoRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_regeo_requests_total",
		Help: "Total amap reverse-geocode REST requests",
	})
	ReGeoSuccessTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_regeo_success_total",
		Help: "Total amap reverse-geocode successes",
	})
	ReGeoFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_regeo_fail_total",
		Help: "Total amap reverse-geocode failures",
	})
	ReGeoDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dineapi_regeo_duration_ms",
		Help:    "AMap reverse-geocode call duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	PlaceRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_place_requests_total",
		Help: "Total amap place-around REST requests",
	})
	PlaceSuccessTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_place_success_total",
		Help: "Total amap place-around successes",
	})
	PlaceFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_place_fail_total",
		Help: "Total amap place-around failures",
	})
	PlaceDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dineapi_place_duration_ms",
		Help:    "AMap place-around call duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	PositionRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_position_requests_total",
		Help: "Total positioning attempts",
	})
	PositionFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dineapi_position_fail_total",
		Help: "Total positioning failures",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(GeoCacheHitsTotal)
	prometheus.MustRegister(GeoCacheMissesTotal)
	prometheus.MustRegister(RedisHitsTotal)
	prometheus.MustRegister(RedisMissesTotal)
	prometheus.MustRegister(ReGeoRequestsTotal)
	prometheus.MustRegister(ReGeoSuccessTotal)
	prometheus.MustRegister(ReGeoFailTotal)
	prometheus.MustRegister(ReGeoDurationMs)
	prometheus.MustRegister(PlaceRequestsTotal)
	prometheus.MustRegister(PlaceSuccessTotal)
	prometheus.MustRegister(PlaceFailTotal)
	prometheus.MustRegister(PlaceDurationMs)
	prometheus.MustRegister(PositionRequestsTotal)
	prometheus.MustRegister(PositionFailTotal)
}

// 文档注释：返回 Prometheus 指标监听器
// 背景：统一暴露注册指标到 /metrics 路径，供 Prometheus 抓取；在主入口挂载。
func Handler() http.Handler { return promhttp.Handler() }
