package service

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"jr-escala/backend/pkg/dateutil"
)

// ── ICS 假期导入 ──────────────────────────────────────────────
//
// 每个 VEVENT 对应一段假期：
//   - DTSTART 的日期为开始日
//   - 全天事件的 DTEND 为次日（不含），结束日取 DTEND 前一天
//   - 带时间的事件取 DTEND 所在日期；恰为零点时同样视为不含
//   - 缺少 DTEND 时按单日处理
//   - SUMMARY 作为备注
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
)

// vacationEvent ICS 解析结果
type vacationEvent struct {
	Start dateutil.Date
	End   dateutil.Date
	Note  string
}

// FetchICSContent 从 URL 获取 ICS 内容（webcal:// 按 https 处理）
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("获取 ICS 失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
	}
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// parseVacationEvents 解析 ICS；返回可用事件与无法解析而跳过的数量
func parseVacationEvents(reader io.Reader, loc *time.Location) ([]vacationEvent, int, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(reader, icsMaxFileSize))
	if err != nil {
		return nil, 0, fmt.Errorf("ICS 格式解析失败: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	var (
		events  []vacationEvent
		skipped int
	)
	for _, comp := range cal.Events() {
		evt, ok := parseVacationEvent(comp, loc)
		if !ok {
			skipped++
			continue
		}
		events = append(events, evt)
	}
	return events, skipped, nil
}

func parseVacationEvent(evt *ics.VEvent, loc *time.Location) (vacationEvent, bool) {
	startTime, _, err := parseICSDate(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return vacationEvent{}, false
	}
	start := dateutil.FromTime(startTime)

	end := start
	endTime, allDay, err := parseICSDate(evt, ics.ComponentPropertyDtEnd, loc)
	if err == nil {
		endDate := dateutil.FromTime(endTime)
		if allDay || (endTime.Hour() == 0 && endTime.Minute() == 0 && endTime.Second() == 0) {
			endDate = endDate.AddDays(-1)
		}
		if !endDate.Before(start) {
			end = endDate
		}
	}

	note := ""
	if summary := evt.GetProperty(ics.ComponentPropertySummary); summary != nil {
		note = strings.TrimSpace(summary.Value)
	}
	return vacationEvent{Start: start, End: end, Note: note}, true
}

// parseICSDate 返回属性对应的时间以及是否为全天格式
func parseICSDate(evt *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (time.Time, bool, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, false, fmt.Errorf("missing property %s", propName)
	}
	val := strings.TrimSpace(prop.Value)

	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	if t, err := time.Parse("20060102", val); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse("20060102T150405Z", val); err == nil {
		return t.In(loc), false, nil
	}
	if t, err := time.Parse("20060102T150405", val); err == nil {
		zone := loc
		if tzid != "" {
			if tzLoc, err := time.LoadLocation(tzid); err == nil {
				zone = tzLoc
			}
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, zone).In(loc), false, nil
	}
	return time.Time{}, false, fmt.Errorf("无法解析日期: %s", val)
}
