// 包 timeutil：用餐时段划分、随机选菜与时间展示
package timeutil

import (
	"fmt"
	"math/rand"
	"time"
)

// MealPeriod：用餐时段，key 供程序分支，name 供展示
type MealPeriod struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// 文档注释：按小时划分用餐时段
// 约束：分支顺序即语义——17 点同时落在午餐上界与晚餐下界，
// 午餐在前故 17 点恒为午餐；调整顺序会改变行为。
func CurrentMealPeriod(now time.Time) MealPeriod {
	hour := now.Hour()
	if hour >= 6 && hour < 10 {
		return MealPeriod{Key: "breakfast", Name: "早餐时间"}
	} else if hour >= 10 && hour <= 17 {
		return MealPeriod{Key: "lunch", Name: "午餐时间"}
	} else if hour >= 17 && hour < 21 {
		return MealPeriod{Key: "dinner", Name: "晚餐时间"}
	}
	return MealPeriod{Key: "supper", Name: "夜宵时间"}
}

// 文档注释：从候选里随机挑一个菜（排除指定项）
// 背景：按内容排除，不按下标；过滤后为空时返回未选中而非报错。
func RandomFood(foodList, excludeList []string) (string, bool) {
	excluded := make(map[string]struct{}, len(excludeList))
	for _, f := range excludeList {
		excluded[f] = struct{}{}
	}
	available := make([]string, 0, len(foodList))
	for _, f := range foodList {
		if _, ok := excluded[f]; !ok {
			available = append(available, f)
		}
	}
	if len(available) == 0 {
		return "", false
	}
	return available[rand.Intn(len(available))], true
}

// FormatClock：格式化为 HH:MM，两位补零
func FormatClock(now time.Time) string {
	return fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute())
}
