package dining_test

import (
	"testing"
	"time"

	"dine-api/internal/dining"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 5, 1, hour, minute, 0, 0, time.Local)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		opentime string
		now      time.Time
		want     string
	}{
		{"open mid-day", "10:00-22:00", at(10, 30), dining.StatusOpen},
		{"open at opening minute", "10:00-22:00", at(10, 0), dining.StatusOpen},
		{"closing soon", "10:00-22:00", at(21, 30), dining.StatusClosingSoon},
		{"closing soon boundary", "10:00-22:00", at(21, 0), dining.StatusClosingSoon},
		{"closed after hours", "10:00-22:00", at(23, 0), dining.StatusClosed},
		{"closed at closing minute", "10:00-22:00", at(22, 0), dining.StatusClosed},
		{"closed before opening", "10:00-22:00", at(9, 59), dining.StatusClosed},
		{"empty text", "", at(12, 0), dining.StatusUnknown},
		{"garbage text", "garbage", at(12, 0), dining.StatusUnknown},
		{"text around range", "周一至周日 9:30-21:00", at(12, 0), dining.StatusOpen},
		{"single digit hour", "9:00-21:00", at(9, 30), dining.StatusOpen},
		// 跨零点区间按普通数值比较处理，白天一律判为已打烊
		{"overnight range daytime", "22:00-02:00", at(23, 0), dining.StatusClosed},
		{"overnight range after midnight", "22:00-02:00", at(1, 0), dining.StatusClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dining.Status(tt.opentime, tt.now))
		})
	}
}
