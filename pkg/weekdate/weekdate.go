// Package weekdate 提供工作周（周一至周五）边界与 ISO 日期字符串运算。
//
// 所有日期以 "2006-01-02" 文本形式在存储层流转，运算统一在 UTC 零点进行，
// 避免夏令时切换导致的日差偏移。
package weekdate

import (
	"fmt"
	"time"
)

// Layout 存储与接口使用的日期格式
const Layout = "2006-01-02"

// WorkDays 每周的工作日数量（周一至周五）
const WorkDays = 5

// Bounds 一个工作周的起止日期
type Bounds struct {
	Start string // 周一
	End   string // 周五
}

// isoWeekday 将 time.Weekday (0=Sunday) 转为 ISO 8601 (1=Monday … 7=Sunday)
func isoWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// dateOnly 取参考时间在其自身时区下的日历日期，并落到 UTC 零点
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekBounds 计算包含参考日期的 ISO 周的周一与周五
// 周六、周日归属于其之前的周一所在周
func WeekBounds(ref time.Time) Bounds {
	day := dateOnly(ref)
	monday := day.AddDate(0, 0, -(isoWeekday(day.Weekday()) - 1))
	friday := monday.AddDate(0, 0, WorkDays-1)
	return Bounds{Start: monday.Format(Layout), End: friday.Format(Layout)}
}

// Parse 解析 "2006-01-02" 日期；兼容带时间部分的 RFC3339 输入
func Parse(s string) (time.Time, error) {
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("日期格式无效 %q: %w", s, err)
	}
	return dateOnly(t), nil
}

// Format 格式化为存储日期
func Format(t time.Time) string {
	return dateOnly(t).Format(Layout)
}

// Valid 判断字符串是否为合法的存储日期
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}

// AddDays 对存储日期做整日偏移
func AddDays(date string, days int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(Layout), nil
}

// DiffDays 返回 to - from 的整日差
func DiffDays(from, to string) (int, error) {
	f, err := Parse(from)
	if err != nil {
		return 0, err
	}
	t, err := Parse(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// Days 返回从周一开始的五个工作日
func Days(start string) ([]string, error) {
	t, err := Parse(start)
	if err != nil {
		return nil, err
	}
	days := make([]string, 0, WorkDays)
	for i := 0; i < WorkDays; i++ {
		days = append(days, t.AddDate(0, 0, i).Format(Layout))
	}
	return days, nil
}
