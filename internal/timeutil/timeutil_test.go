package timeutil_test

import (
	"testing"
	"time"

	"dine-api/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hour(h int) time.Time {
	return time.Date(2026, 5, 1, h, 30, 0, 0, time.Local)
}

func TestCurrentMealPeriod(t *testing.T) {
	tests := []struct {
		hour int
		key  string
	}{
		{5, "supper"},
		{6, "breakfast"},
		{9, "breakfast"},
		{10, "lunch"},
		{16, "lunch"},
		{17, "lunch"}, // 午餐分支在前，17 点恒为午餐
		{18, "dinner"},
		{20, "dinner"},
		{21, "supper"},
		{23, "supper"},
		{0, "supper"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, timeutil.CurrentMealPeriod(hour(tt.hour)).Key, "hour=%d", tt.hour)
	}
	assert.Equal(t, "早餐时间", timeutil.CurrentMealPeriod(hour(7)).Name)
	assert.Equal(t, "夜宵时间", timeutil.CurrentMealPeriod(hour(22)).Name)
}

func TestRandomFood(t *testing.T) {
	// 只剩一个候选时必然选中它
	food, ok := timeutil.RandomFood([]string{"a", "b", "c"}, []string{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, "c", food)

	// 全部排除后无可选
	_, ok = timeutil.RandomFood([]string{"a"}, []string{"a"})
	assert.False(t, ok)

	_, ok = timeutil.RandomFood(nil, nil)
	assert.False(t, ok)

	// 选中项一定来自候选且不在排除表
	for i := 0; i < 20; i++ {
		food, ok := timeutil.RandomFood([]string{"火锅", "烧烤", "面条"}, []string{"烧烤"})
		require.True(t, ok)
		assert.Contains(t, []string{"火锅", "面条"}, food)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", timeutil.FormatClock(time.Date(2026, 5, 1, 9, 5, 0, 0, time.Local)))
	assert.Equal(t, "23:59", timeutil.FormatClock(time.Date(2026, 5, 1, 23, 59, 0, 0, time.Local)))
	assert.Equal(t, "00:00", timeutil.FormatClock(time.Date(2026, 5, 1, 0, 0, 0, 0, time.Local)))
}
