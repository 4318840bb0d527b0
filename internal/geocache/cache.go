// 包 geocache：量化坐标到地址的进程内 TTL 缓存
package geocache

import (
	"fmt"
	"sync"
	"time"

	"dine-api/internal/amap"
	"dine-api/internal/metrics"
)

// 缓存有效期：与小程序端约定一致，整点一小时
const DefaultTTL = time.Hour

// 文档注释：地址缓存（量化坐标为键）
// 背景：同一地点短周期内反复解析地址，进程内缓存可省掉绝大多数逆地理外呼；
// 键按经纬度各自四舍五入到 4 位小数拼接，赤道附近约 11 米内的坐标共享一个键，
// 这是命中率与精度的折中而非缺陷。
// 约束：仅按读判定过期，过期条目不主动清理，直到被同键覆盖；单会话客户端
// 规模下不做容量上限。两个并发未命中可能各自外呼一次，后写者覆盖，可接受。
type Cache struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	dict map[string]entry
}

type entry struct {
	rec amap.AddressRecord
	at  time.Time
}

// New：按 TTL 构造缓存
func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock：注入时钟的构造方式，测试用
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl, now: now, dict: make(map[string]entry)}
}

// Key：经纬度各自量化到 4 位小数后拼接
func Key(lng, lat float64) string {
	return fmt.Sprintf("%.4f,%.4f", lng, lat)
}

// Get：命中且未过期时返回缓存地址
// 约束：过期条目仅被忽略，不删除；重复读到过期键仍是 O(1)
func (c *Cache) Get(lng, lat float64) (amap.AddressRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.dict[Key(lng, lat)]
	if ok && c.now().Sub(e.at) < c.ttl {
		metrics.GeoCacheHitsTotal.Inc()
		return e.rec, true
	}
	metrics.GeoCacheMissesTotal.Inc()
	return amap.AddressRecord{}, false
}

// Set：无条件覆盖同键条目，时间戳取当前时钟
func (c *Cache) Set(lng, lat float64, rec amap.AddressRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dict[Key(lng, lat)] = entry{rec: rec, at: c.now()}
}

// Len：当前条目数（含已过期未覆盖的），仅用于观测
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.dict)
}
