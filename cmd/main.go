// 程序入口：仅负责读取配置、初始化依赖并启动服务；API 注册在 internal/api 以便扩展
package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dine-api/internal/amap"
	"dine-api/internal/api"
	"dine-api/internal/dining"
	"dine-api/internal/geocache"
	"dine-api/internal/locate"
	"dine-api/internal/logger"
	"dine-api/internal/metrics"
	"dine-api/internal/middleware"
	"dine-api/internal/migrate"
	"dine-api/internal/store"
	"dine-api/internal/utils"
	"dine-api/internal/version"

	"github.com/joho/godotenv"
)

// 候选菜品缺省清单：未配置 FOOD_LIST 时使用
var defaultFoods = []string{"火锅", "烧烤", "麻辣烫", "饺子", "面条", "盖浇饭", "炸鸡", "寿司", "汉堡", "粥"}

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	// 日志初始化
	l := logger.Setup()
	l.Debug("log_init_ok")
	l.Info("starting", "commit", version.Commit)
	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = "/api"
	}
	l.Debug("config_api_base", "base", apiBase)

	key := os.Getenv("AMAP_KEY")
	if key == "" {
		l.Error("amap_key_missing")
		os.Exit(1)
	}
	cli := amap.New(key, &http.Client{Timeout: 5 * time.Second})

	// 可选 PostgreSQL：仅用于解析统计与流水，未开启不影响主链路
	var st *store.Store
	if os.Getenv("PG_ENABLE") == "true" {
		db, err := utils.OpenPostgresFromEnv()
		if err != nil {
			l.Error("db_open_error", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		l.Info("db_open_ok")
		if err := db.Ping(); err != nil {
			l.Error("db_ping_error", "err", err)
		} else {
			l.Info("db_ping_ok")
		}
		if err := migrate.EnsureSchema(db); err != nil {
			l.Error("schema_error", "err", err)
			os.Exit(1)
		}
		st = store.AttachDB(db)
	} else {
		l.Info("pg_disabled")
	}

	// 可选 Redis：跨进程地址热缓存
	rc := utils.OpenRedisFromEnv()
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		if err := rc.Ping(context.Background()).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
	}

	// 进程内地址缓存：量化坐标键 + TTL
	ttl := time.Hour
	if s := os.Getenv("CACHE_TTL_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			ttl = time.Duration(n) * time.Second
		}
	}
	cache := geocache.New(ttl)
	l.Debug("config_cache_ttl", "ttl", ttl.String())

	// 定位能力选择：配置了静态坐标用静态，否则按出口 IP 近似定位
	var pos locate.Positioner
	if sl, sa := os.Getenv("STATIC_LNG"), os.Getenv("STATIC_LAT"); sl != "" && sa != "" {
		lng, err1 := strconv.ParseFloat(sl, 64)
		lat, err2 := strconv.ParseFloat(sa, 64)
		if err1 != nil || err2 != nil {
			l.Error("static_position_invalid", "lng", sl, "lat", sa)
			os.Exit(1)
		}
		pos = &locate.StaticPositioner{Lng: lng, Lat: lat}
		l.Info("positioner_static", "lng", lng, "lat", lat)
	} else {
		pos = &locate.AMapIPPositioner{Cli: cli}
		l.Info("positioner_amap_ip")
	}

	rv := locate.NewResolver(pos, cache, cli)
	fd := dining.NewFinder(cli)

	foods := defaultFoods
	if s := os.Getenv("FOOD_LIST"); s != "" {
		foods = strings.Split(s, ",")
	}
	l.Debug("config_foods", "count", len(foods))

	mux := http.NewServeMux()
	apiMux := api.BuildRoutes(st, rc, pos, rv, fd, foods)
	mux.Handle(apiBase+"/", http.StripPrefix(apiBase, apiMux))
	mux.Handle(apiBase+"/metrics", metrics.Handler())

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	handler := logger.AccessMiddleware(l)(mux)
	handler = middleware.Wrap(handler)
	s := &http.Server{Addr: addr, Handler: handler}
	if os.Getenv("TLS_ENABLE") == "true" {
		certPath := os.Getenv("TLS_CERT_PATH")
		keyPath := os.Getenv("TLS_KEY_PATH")
		if certPath == "" {
			certPath = filepath.Join("data", "certs", "server.crt")
		}
		if keyPath == "" {
			keyPath = filepath.Join("data", "certs", "server.key")
		}
		_ = utils.EnsureSelfSignedCert(certPath, keyPath, "dine-api.local")
		l.Info("listening_tls", "addr", addr, "cert", certPath)
		_ = s.ListenAndServeTLS(certPath, keyPath)
		return
	}
	l.Info("listening", "addr", addr)
	_ = s.ListenAndServe()
}
