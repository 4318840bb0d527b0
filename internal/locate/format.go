package locate

import "dine-api/internal/amap"

// 地址为空时的展示兜底
const unknownPlace = "未知位置"

// 文档注释：按展示风格拼装地址文案
// 取值：full 完整地址；short 区+街道；medium 区+街道+楼宇；province-city 省+区。
// 未知风格回退 full；记录缺失时返回固定兜底文案而非报错。
func FormatAddress(rec *amap.AddressRecord, style string) string {
	if rec == nil {
		return unknownPlace
	}
	switch style {
	case "full":
		return rec.FormattedAddress
	case "short":
		return rec.ShortAddress
	case "medium":
		return rec.District + rec.Township + rec.Building
	case "province-city":
		return rec.Province + rec.District
	default:
		return rec.FormattedAddress
	}
}
