package view

import (
	"fmt"
	"time"
)

const (
	// DateTimeLocalFormat is the value format of an HTML datetime-local input.
	DateTimeLocalFormat = "2006-01-02T15:04"
	// DisplayDateTimeFormat 列表/详情页展示格式
	DisplayDateTimeFormat = "02/01/06 15:04"
)

// DateTimeFromServer 服务端时间 -> 表单值；nil 为空串
func DateTimeFromServer(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(orLocal(loc)).Format(DateTimeLocalFormat)
}

// DateTimeToServer 表单值 -> UTC 时间；空串为 nil
func DateTimeToServer(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateTimeLocalFormat, s, orLocal(loc))
	if err != nil {
		return nil, fmt.Errorf("invalid date/time %q: %w", s, err)
	}
	t = t.UTC()
	return &t, nil
}

// DefaultDateTime 新建表单的默认值：当天 00:00
func DefaultDateTime(now time.Time, loc *time.Location) string {
	now = now.In(orLocal(loc))
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Format(DateTimeLocalFormat)
}

func displayDateTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(orLocal(loc)).Format(DisplayDateTimeFormat)
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
