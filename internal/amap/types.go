package amap

import (
	"encoding/json"
	"strconv"
	"strings"
)

// 文档注释：容错字符串类型
// 背景：高德在字段缺省时经常返回空数组（[]）而非空字符串，直接按 string 解码会失败；
// 统一在解码层吞掉非字符串取值，缺省一律视为空串。
// 约束：仅用于高德响应模型；不改变非空字符串的取值。
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		*s = ""
		return nil
	}
	*s = looseString(v)
	return nil
}

func (s looseString) String() string { return string(s) }

// namedField：name 子对象；整体缺省时高德返回 []，按零值处理
type namedField struct {
	Name looseString `json:"name"`
}

func (n *namedField) UnmarshalJSON(b []byte) error {
	type alias namedField
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		*n = namedField{}
		return nil
	}
	*n = namedField(a)
	return nil
}

// streetField：street+number 子对象，同样容错空数组
type streetField struct {
	Street looseString `json:"street"`
	Number looseString `json:"number"`
}

func (s *streetField) UnmarshalJSON(b []byte) error {
	type alias streetField
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		*s = streetField{}
		return nil
	}
	*s = streetField(a)
	return nil
}

// 文档注释：逆地理编码响应结构
// 背景：对齐高德 /v3/geocode/regeo 的返回字段，仅解析本服务需要的行政区与门牌信息。
// 约束：status/info 用于错误判定；不在此处扩展对外响应模型。
type regeoEnvelope struct {
	Status    string `json:"status"`
	Info      string `json:"info"`
	Infocode  string `json:"infocode"`
	Regeocode *struct {
		FormattedAddress looseString `json:"formatted_address"`
		AddressComponent struct {
			Province     looseString `json:"province"`
			City         looseString `json:"city"`
			District     looseString `json:"district"`
			Township     looseString `json:"township"`
			Towncode     looseString `json:"towncode"`
			Neighborhood namedField  `json:"neighborhood"`
			Building     namedField  `json:"building"`
			StreetNumber streetField `json:"streetNumber"`
		} `json:"addressComponent"`
	} `json:"regeocode"`
}

// AddressRecord：归一化后的地址结构（对外）
// 背景：统一对外序列化模型，字段名与前端约定保持一致；便于缓存与统计一致化处理。
// 约束：city 缺省回退 province；neighborhood/building/streetNumber 缺省为空串。
type AddressRecord struct {
	FormattedAddress string `json:"formattedAddress"`
	Province         string `json:"province"`
	City             string `json:"city"`
	District         string `json:"district"`
	Township         string `json:"township"`
	Towncode         string `json:"towncode"`
	Neighborhood     string `json:"neighborhood"`
	Building         string `json:"building"`
	StreetNumber     string `json:"streetNumber"`
	ShortAddress     string `json:"shortAddress"`
}

// normalizeAddress：将高德响应拍平为 AddressRecord
func normalizeAddress(e *regeoEnvelope) AddressRecord {
	ac := e.Regeocode.AddressComponent
	city := ac.City.String()
	if city == "" {
		city = ac.Province.String()
	}
	street := ""
	if ac.StreetNumber.Street != "" || ac.StreetNumber.Number != "" {
		street = ac.StreetNumber.Street.String() + ac.StreetNumber.Number.String()
	}
	return AddressRecord{
		FormattedAddress: e.Regeocode.FormattedAddress.String(),
		Province:         ac.Province.String(),
		City:             city,
		District:         ac.District.String(),
		Township:         ac.Township.String(),
		Towncode:         ac.Towncode.String(),
		Neighborhood:     ac.Neighborhood.Name.String(),
		Building:         ac.Building.Name.String(),
		StreetNumber:     street,
		ShortAddress:     ac.District.String() + ac.Township.String(),
	}
}

// 文档注释：周边搜索响应结构（/v5/place/around）
type aroundEnvelope struct {
	Status   string `json:"status"`
	Info     string `json:"info"`
	Infocode string `json:"infocode"`
	Count    string `json:"count"`
	POIs     []POI  `json:"pois"`
}

// POI：高德周边搜索返回的单个兴趣点
// 约束：business/photos 仅在请求 show_fields 时返回；缺省字段按空值处理。
type POI struct {
	ID       looseString `json:"id"`
	Name     looseString `json:"name"`
	Type     looseString `json:"type"`
	Address  looseString `json:"address"`
	Location looseString `json:"location"`
	Tel      looseString `json:"tel"`
	Distance looseString `json:"distance"`
	PName    looseString `json:"pname"`
	CityName looseString `json:"cityname"`
	AdName   looseString `json:"adname"`
	Business businessField `json:"business"`
	Photos   photoList     `json:"photos"`
}

// photoList：photos 列表；缺省时可能是空串，容错为 nil
type photoList []Photo

func (p *photoList) UnmarshalJSON(b []byte) error {
	var v []Photo
	if err := json.Unmarshal(b, &v); err != nil {
		*p = nil
		return nil
	}
	*p = v
	return nil
}

// businessField：business 子对象；未请求 show_fields 时整体缺省
type businessField struct {
	Rating       looseString `json:"rating"`
	Cost         looseString `json:"cost"`
	OpentimeWeek looseString `json:"opentime_week"`
	OpentimeNow  looseString `json:"opentime_today"`
}

func (f *businessField) UnmarshalJSON(b []byte) error {
	type alias businessField
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		*f = businessField{}
		return nil
	}
	*f = businessField(a)
	return nil
}

// Photo：POI 图片条目
type Photo struct {
	Title looseString `json:"title"`
	URL   looseString `json:"url"`
}

// 文档注释：IP 定位响应结构（/v3/ip）
// 背景：作为无宿主定位能力时的近似定位来源；rectangle 为所在城市的经纬度矩形。
type IPResponse struct {
	Status    string      `json:"status"`
	Info      string      `json:"info"`
	Infocode  string      `json:"infocode"`
	Province  looseString `json:"province"`
	City      looseString `json:"city"`
	Adcode    looseString `json:"adcode"`
	Rectangle looseString `json:"rectangle"`
}

// RectCenter：求高德矩形串的中心点
// 背景：/v3/ip 只给出城市矩形，取对角线中点作为近似坐标。
// 返回：经度、纬度与解析是否成功；格式为 "lng1,lat1;lng2,lat2"。
func RectCenter(rect string) (float64, float64, bool) {
	parts := strings.Split(rect, ";")
	if len(parts) != 2 {
		return 0, 0, false
	}
	p1 := strings.Split(parts[0], ",")
	p2 := strings.Split(parts[1], ",")
	if len(p1) != 2 || len(p2) != 2 {
		return 0, 0, false
	}
	lng1, err1 := strconv.ParseFloat(strings.TrimSpace(p1[0]), 64)
	lat1, err2 := strconv.ParseFloat(strings.TrimSpace(p1[1]), 64)
	lng2, err3 := strconv.ParseFloat(strings.TrimSpace(p2[0]), 64)
	lat2, err4 := strconv.ParseFloat(strings.TrimSpace(p2[1]), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return 0, 0, false
	}
	return (lng1 + lng2) / 2, (lat1 + lat2) / 2, true
}
