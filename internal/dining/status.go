// 包 dining：附近餐饮搜索与营业状态判定
package dining

import (
	"regexp"
	"strconv"
	"time"
)

// 营业状态取值集合：固定四种，对外直接展示
const (
	StatusUnknown     = "营业时间未知"
	StatusOpen        = "营业中"
	StatusClosingSoon = "即将打烊"
	StatusClosed      = "已打烊"
)

// 打烊前提醒窗口（分钟）
const closingSoonWindow = 60

// 营业时间串中的首个 H:MM-H:MM 区间
var hoursPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})`)

// 文档注释：按营业时间文本与当前时刻判定营业状态
// 背景：高德 business.opentime_today 为自由文本（如 "10:00-22:00"），取其中第一个
// 时间区间做判定；解析失败一律归为"营业时间未知"，不报错。
// 约束：跨零点区间（close < open）按普通数值比较落入"已打烊"，与小程序端行为
// 保持一致，暂不修正。
func Status(opentime string, now time.Time) string {
	if opentime == "" {
		return StatusUnknown
	}
	m := hoursPattern.FindStringSubmatch(opentime)
	if m == nil {
		return StatusUnknown
	}
	openHour, _ := strconv.Atoi(m[1])
	openMinute, _ := strconv.Atoi(m[2])
	closeHour, _ := strconv.Atoi(m[3])
	closeMinute, _ := strconv.Atoi(m[4])

	openTime := openHour*60 + openMinute
	closeTime := closeHour*60 + closeMinute
	currentTime := now.Hour()*60 + now.Minute()

	if currentTime >= openTime && currentTime < closeTime {
		if currentTime >= closeTime-closingSoonWindow {
			return StatusClosingSoon
		}
		return StatusOpen
	}
	return StatusClosed
}
