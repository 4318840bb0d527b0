package migrate

import (
	"database/sql"

	"dine-api/internal/logger"
)

// 背景：首次运行自动创建所需表与索引，保障后续统计与流水写入
// 约束：使用 IF NOT EXISTS 避免与既有结构冲突；仅创建最小必需结构
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS _dine_stats_total (
            id INT PRIMARY KEY,
            total_queries BIGINT NOT NULL DEFAULT 0,
            total_cache_hits BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS _dine_stats_daily (
            day DATE PRIMARY KEY,
            queries BIGINT NOT NULL DEFAULT 0,
            cache_hits BIGINT NOT NULL DEFAULT 0
        )`,
		`INSERT INTO _dine_stats_total(id, total_queries, total_cache_hits)
         VALUES(1, 0, 0)
         ON CONFLICT (id) DO NOTHING`,
		`CREATE TABLE IF NOT EXISTS _dine_resolutions (
            coord_key TEXT PRIMARY KEY,
            lng DOUBLE PRECISION NOT NULL,
            lat DOUBLE PRECISION NOT NULL,
            formatted_address TEXT NOT NULL,
            from_cache BOOLEAN NOT NULL DEFAULT FALSE,
            queries BIGINT NOT NULL DEFAULT 1,
            resolved_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_dine_resolutions_at ON _dine_resolutions(resolved_at DESC)`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
