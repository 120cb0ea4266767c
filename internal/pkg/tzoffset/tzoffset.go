// Package tzoffset переводит IANA-зону и локальные дату/время в десятичное смещение от UTC.
package tzoffset

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// DefaultOffset IST, используется когда зону определить не удалось
const DefaultOffset = 5.5

var (
	ErrEmptyZone       = errors.New("timezone name is empty")
	ErrUnknownZone     = errors.New("unknown timezone")
	ErrBadDateTime     = errors.New("unparseable local date/time")
	ErrBadOffsetString = errors.New("offset string does not match GMT±H[:MM]")
)

var gmtOffsetRe = regexp.MustCompile(`^GMT([+-])(\d{1,2})(?::?(\d{2}))?$`)

var localLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// Resolve возвращает смещение зоны в часах на указанный локальный момент (учитывает DST).
// Всё, что начинается с "GMT", разбирается как строка смещения "GMT+5:30", без базы зон,
// но дата и время проверяются в любом случае.
func Resolve(zone, date, clock string) (float64, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return 0, ErrEmptyZone
	}

	if strings.HasPrefix(zone, "GMT") {
		if _, err := ParseLocal(date, clock, time.UTC); err != nil {
			return 0, err
		}
		return ParseGMTOffset(zone)
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownZone, zone)
	}

	local, err := ParseLocal(date, clock, loc)
	if err != nil {
		return 0, err
	}

	_, seconds := local.Zone()
	return float64(seconds) / 3600, nil
}

// ResolveOrDefault никогда не возвращает ошибку: при любой проблеме отдаёт DefaultOffset и ok=false
func ResolveOrDefault(zone, date, clock string) (offset float64, ok bool) {
	offset, err := Resolve(zone, date, clock)
	if err != nil {
		return DefaultOffset, false
	}
	return offset, true
}

// ParseLocal собирает момент времени из "YYYY-MM-DD" и "HH:MM" в зоне loc
func ParseLocal(date, clock string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDateTime, value)
}

// ParseGMTOffset разбирает строки "GMT+5", "GMT+5:30", "GMT-03:00", "GMT+0530"
func ParseGMTOffset(s string) (float64, error) {
	m := gmtOffsetRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadOffsetString, s)
	}

	hours, err := strconv.Atoi(m[2])
	if err != nil || hours > 14 {
		return 0, fmt.Errorf("%w: %q", ErrBadOffsetString, s)
	}

	minutes := 0
	if m[3] != "" {
		minutes, err = strconv.Atoi(m[3])
		if err != nil || minutes >= 60 {
			return 0, fmt.Errorf("%w: %q", ErrBadOffsetString, s)
		}
	}

	offset := float64(hours) + float64(minutes)/60
	if m[1] == "-" {
		offset = -offset
	}
	return offset, nil
}

// Valid проверяет, что смещение конечное и в пределах реальных зон (-12..+14)
func Valid(offset float64) bool {
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return false
	}
	return offset >= -12 && offset <= 14
}
