// 包 geo：球面几何计算
package geo

import "math"

// 地球半径（米），与高德端计算口径一致
const earthRadius = 6378137.0

// 文档注释：两点间大圆距离（米）
// 背景：用于在列表中展示与排序"距我多远"；纯计算，无 I/O。
// 约束：输入为十进制度；先按万分位截断再取整米，保持与前端历史取值一致；
// 非法输入（NaN/Inf）按浮点规则传播。
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	radLat1 := lat1 * math.Pi / 180.0
	radLat2 := lat2 * math.Pi / 180.0
	a := radLat1 - radLat2
	b := lng1*math.Pi/180.0 - lng2*math.Pi/180.0
	s := 2 * math.Asin(math.Sqrt(
		math.Pow(math.Sin(a/2), 2)+
			math.Cos(radLat1)*math.Cos(radLat2)*math.Pow(math.Sin(b/2), 2)))
	s = s * earthRadius
	s = math.Round(s*10000) / 10000
	return math.Round(s)
}
