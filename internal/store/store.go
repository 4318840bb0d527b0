// 包 store: 提供与 PostgreSQL 的数据访问层，包含解析流水与统计读写
package store

import (
	"context"
	"database/sql"

	"dine-api/internal/logger"

	_ "github.com/lib/pq"
)

// Store: 数据库访问入口，持有连接池并提供统计/流水接口
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

// Open: 使用 DSN 打开数据库连接并配置连接池参数
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	return &Store{db: db}, nil
}

// Close: 关闭数据库连接
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// IncrStats: 成功解析后递增累计与当日计数；缓存命中时递增命中计数
func (s *Store) IncrStats(ctx context.Context, fromCache bool) error {
	_, _ = s.db.ExecContext(ctx, "UPDATE _dine_stats_total SET total_queries=total_queries+1 WHERE id=1")
	_, _ = s.db.ExecContext(ctx, "INSERT INTO _dine_stats_daily(day, queries) VALUES(current_date, 1) ON CONFLICT (day) DO UPDATE SET queries=_dine_stats_daily.queries+1")
	if fromCache {
		_, _ = s.db.ExecContext(ctx, "UPDATE _dine_stats_total SET total_cache_hits=total_cache_hits+1 WHERE id=1")
		_, _ = s.db.ExecContext(ctx, "INSERT INTO _dine_stats_daily(day, cache_hits) VALUES(current_date, 1) ON CONFLICT (day) DO UPDATE SET cache_hits=_dine_stats_daily.cache_hits+1")
	}
	logger.L().Debug("stats_incr", "from_cache", fromCache)
	return nil
}

// Totals: 统计返回结构，包含累计与当日解析次数
type Totals struct {
	Total int64
	Today int64
}

// GetTotals: 读取累计与当日解析次数，用于接口返回
func (s *Store) GetTotals(ctx context.Context) (*Totals, error) {
	var t Totals
	row := s.db.QueryRowContext(ctx, "SELECT total_queries FROM _dine_stats_total WHERE id=1")
	_ = row.Scan(&t.Total)
	row2 := s.db.QueryRowContext(ctx, "SELECT queries FROM _dine_stats_daily WHERE day=current_date")
	_ = row2.Scan(&t.Today)
	logger.L().Debug("stats_totals", "total", t.Total, "today", t.Today)
	return &t, nil
}

// 文档注释：记录最近一次成功解析的地址流水
// 背景：保留最近解析的坐标与地址文本，供运营面板展示热点区域；不影响主链路。
// 约束：写失败静默忽略；量化键与进程内缓存同构（4 位小数）。
func (s *Store) RecordResolution(ctx context.Context, key string, lng, lat float64, address string, fromCache bool) error {
	_, _ = s.db.ExecContext(ctx, `INSERT INTO _dine_resolutions(coord_key, lng, lat, formatted_address, from_cache, resolved_at)
        VALUES($1, $2, $3, $4, $5, now())
        ON CONFLICT (coord_key) DO UPDATE SET formatted_address=$4, from_cache=$5, resolved_at=now(), queries=_dine_resolutions.queries+1`,
		key, lng, lat, address, fromCache)
	return nil
}

// Resolution：最近解析条目
type Resolution struct {
	Key     string
	Lng     float64
	Lat     float64
	Address string
	Queries int64
}

// 文档注释：获取最近解析的地址列表
// 参数：limit 为最大返回数量，非法值回退 100。
func (s *Store) RecentResolutions(ctx context.Context, limit int) ([]Resolution, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT coord_key, lng, lat, formatted_address, queries
        FROM _dine_resolutions
        ORDER BY resolved_at DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Resolution
	for rows.Next() {
		var r Resolution
		if err := rows.Scan(&r.Key, &r.Lng, &r.Lat, &r.Address, &r.Queries); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
