package dining_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"dine-api/internal/amap"
	"dine-api/internal/dining"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aroundBody = `{
  "status": "1",
  "info": "OK",
  "infocode": "10000",
  "count": "2",
  "pois": [
    {
      "id": "B0FFG7RD3L",
      "name": "老王烧烤",
      "type": "餐饮服务;中餐厅;特色/地方风味餐厅",
      "address": "幸福路12号",
      "location": "116.398,39.909",
      "tel": "010-12345678",
      "distance": "230",
      "pname": "北京市",
      "cityname": "北京市",
      "adname": "东城区",
      "business": {"rating": "4.6", "cost": "58.00", "opentime_today": "10:00-22:00"},
      "photos": [{"title": "门脸", "url": "https://example.com/1.jpg"}]
    },
    {
      "id": "B0FFH2K9QX",
      "name": "无名小店",
      "type": "餐饮服务;快餐厅",
      "address": [],
      "location": "116.399,39.910",
      "tel": [],
      "distance": "410",
      "pname": "北京市",
      "cityname": "北京市",
      "adname": "东城区",
      "business": {}
    }
  ]
}`

func TestFindNearbyMapsPOIs(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v5/place/around", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(aroundBody))
	}))
	defer srv.Close()

	cli := amap.New("test-key", srv.Client())
	cli.Base = srv.URL
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.Local)
	fd := dining.NewFinderWithClock(cli, func() time.Time { return at })

	res, err := fd.FindNearby(context.Background(), 116.3975, 39.9087, amap.AroundOptions{})
	require.NoError(t, err)
	assert.Equal(t, "2", res.Count)
	require.Len(t, res.Data, 2)

	// 缺省查询参数
	assert.Equal(t, "美食", gotQuery.Get("keywords"))
	assert.Equal(t, "050000", gotQuery.Get("types"))
	assert.Equal(t, "5000", gotQuery.Get("radius"))
	assert.Equal(t, "distance", gotQuery.Get("sortrule"))
	assert.Equal(t, "20", gotQuery.Get("page_size"))
	assert.Equal(t, "1", gotQuery.Get("page_num"))
	assert.Equal(t, "business,photos", gotQuery.Get("show_fields"))
	assert.Equal(t, "116.3975,39.9087", gotQuery.Get("location"))

	first := res.Data[0]
	assert.Equal(t, "老王烧烤", first.Name)
	assert.Equal(t, "4.6", first.Rating)
	assert.Equal(t, "58.00", first.Cost)
	assert.Equal(t, "10:00-22:00", first.OpenTime)
	assert.Equal(t, dining.StatusOpen, first.BusinessStatus)
	require.Len(t, first.Photos, 1)
	assert.Equal(t, "https://example.com/1.jpg", first.Photos[0].URL.String())

	// 缺省字段容错：tel/address 为空数组，business 缺省
	second := res.Data[1]
	assert.Equal(t, "", second.Tel)
	assert.Equal(t, "", second.Address)
	assert.Equal(t, "", second.Rating)
	assert.Equal(t, "", second.Cost)
	assert.Equal(t, dining.StatusUnknown, second.BusinessStatus)
	assert.NotNil(t, second.Photos)
	assert.Len(t, second.Photos, 0)
}

func TestFindNearbyOptionOverridesAndPassthrough(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"status":"1","info":"OK","count":"0","pois":[]}`))
	}))
	defer srv.Close()

	cli := amap.New("test-key", srv.Client())
	cli.Base = srv.URL
	fd := dining.NewFinder(cli)

	_, err := fd.FindNearby(context.Background(), 116.3975, 39.9087, amap.AroundOptions{
		Keywords: "川菜",
		Radius:   800,
		PageSize: 5,
		Extra:    map[string]string{"city_limit": "true"},
	})
	require.NoError(t, err)
	assert.Equal(t, "川菜", gotQuery.Get("keywords"))
	assert.Equal(t, "800", gotQuery.Get("radius"))
	assert.Equal(t, "5", gotQuery.Get("page_size"))
	// 未识别字段原样透传
	assert.Equal(t, "true", gotQuery.Get("city_limit"))
}

func TestFindNearbyServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"0","info":"USERKEY_PLAT_NOMATCH","infocode":"10009"}`))
	}))
	defer srv.Close()

	cli := amap.New("test-key", srv.Client())
	cli.Base = srv.URL
	fd := dining.NewFinder(cli)

	res, err := fd.FindNearby(context.Background(), 116.3975, 39.9087, amap.AroundOptions{})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, amap.ErrSearchFailed)
	assert.Equal(t, "USERKEY_PLAT_NOMATCH", err.Error())
}

func TestFindNearbyTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cli := amap.New("test-key", nil)
	cli.Base = srv.URL
	fd := dining.NewFinder(cli)

	_, err := fd.FindNearby(context.Background(), 116.3975, 39.9087, amap.AroundOptions{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, amap.ErrSearchFailed)
}
