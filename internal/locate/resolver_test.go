package locate_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"dine-api/internal/amap"
	"dine-api/internal/geocache"
	"dine-api/internal/locate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const regeoBody = `{
  "status": "1",
  "info": "OK",
  "infocode": "10000",
  "regeocode": {
    "formatted_address": "北京市东城区东华门街道",
    "addressComponent": {
      "province": "北京市",
      "city": "北京市",
      "district": "东城区",
      "township": "东华门街道",
      "towncode": "110101001000",
      "neighborhood": {"name": []},
      "building": {"name": []},
      "streetNumber": []
    }
  }
}`

type failingPositioner struct{ err error }

func (p *failingPositioner) Position(ctx context.Context) (float64, float64, error) {
	return 0, 0, p.err
}

func newBackend(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		_, _ = w.Write([]byte(regeoBody))
	}))
}

func TestResolveCurrentPositionFailure(t *testing.T) {
	rv := locate.NewResolver(
		&failingPositioner{err: errors.New("getLocation:fail auth deny")},
		geocache.New(time.Hour),
		amap.New("k", nil),
	)
	res := rv.ResolveCurrent(context.Background())
	assert.False(t, res.Success)
	// 定位能力自带消息优先
	assert.Equal(t, "getLocation:fail auth deny", res.Error)
	assert.False(t, res.FromCache)
}

func TestResolveCurrentCachePath(t *testing.T) {
	var calls int32
	srv := newBackend(t, &calls)
	defer srv.Close()

	cli := amap.New("test-key", srv.Client())
	cli.Base = srv.URL
	cache := geocache.New(time.Hour)
	rv := locate.NewResolver(&locate.StaticPositioner{Lng: 116.3975, Lat: 39.9087}, cache, cli)

	// 首次解析走网络并回写缓存
	res := rv.ResolveCurrent(context.Background())
	require.True(t, res.Success)
	assert.False(t, res.FromCache)
	assert.Equal(t, "北京市东城区东华门街道", res.FormattedAddress)
	assert.Equal(t, 116.3975, res.Longitude)
	assert.Equal(t, 39.9087, res.Latitude)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	// 二次解析命中缓存，不再外呼
	res = rv.ResolveCurrent(context.Background())
	require.True(t, res.Success)
	assert.True(t, res.FromCache)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestResolveCurrentServiceFailureMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"0","info":"DAILY_QUERY_OVER_LIMIT","infocode":"10003"}`))
	}))
	defer srv.Close()

	cli := amap.New("test-key", srv.Client())
	cli.Base = srv.URL
	rv := locate.NewResolver(&locate.StaticPositioner{Lng: 116.3975, Lat: 39.9087}, geocache.New(time.Hour), cli)

	res := rv.ResolveCurrent(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, "DAILY_QUERY_OVER_LIMIT", res.Error)
}

func TestResolveCurrentServiceFailureFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"0"}`))
	}))
	defer srv.Close()

	cli := amap.New("test-key", srv.Client())
	cli.Base = srv.URL
	rv := locate.NewResolver(&locate.StaticPositioner{Lng: 116.3975, Lat: 39.9087}, geocache.New(time.Hour), cli)

	res := rv.ResolveCurrent(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, "地址解析失败", res.Error)
}

func TestResolveCurrentNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cli := amap.New("test-key", nil)
	cli.Base = srv.URL
	rv := locate.NewResolver(&locate.StaticPositioner{Lng: 116.3975, Lat: 39.9087}, geocache.New(time.Hour), cli)

	res := rv.ResolveCurrent(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, "网络请求失败", res.Error)
}

func TestResolveAtUsesCache(t *testing.T) {
	var calls int32
	srv := newBackend(t, &calls)
	defer srv.Close()

	cli := amap.New("test-key", srv.Client())
	cli.Base = srv.URL
	rv := locate.NewResolver(&failingPositioner{err: errors.New("unused")}, geocache.New(time.Hour), cli)

	res := rv.ResolveAt(context.Background(), 116.3975, 39.9087)
	require.True(t, res.Success)
	assert.False(t, res.FromCache)

	// 同键第二次命中缓存
	res = rv.ResolveAt(context.Background(), 116.39748, 39.90869)
	require.True(t, res.Success)
	assert.True(t, res.FromCache)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestFormatAddress(t *testing.T) {
	rec := &amap.AddressRecord{
		FormattedAddress: "X",
		ShortAddress:     "Y",
		Province:         "P",
		District:         "D",
		Township:         "T",
		Building:         "B",
	}
	assert.Equal(t, "X", locate.FormatAddress(rec, "full"))
	assert.Equal(t, "Y", locate.FormatAddress(rec, "short"))
	assert.Equal(t, "DTB", locate.FormatAddress(rec, "medium"))
	assert.Equal(t, "PD", locate.FormatAddress(rec, "province-city"))
	assert.Equal(t, "X", locate.FormatAddress(rec, "whatever"))
	assert.Equal(t, "未知位置", locate.FormatAddress(nil, "full"))
}
