// Package week содержит чистые функции календарной арифметики для недель
// по ISO-8601: идентификаторы недель вида "2026-W08", раскладка недели
// по датам и определение дня недели. Неделя начинается с понедельника.
package week

import (
	"fmt"
	"time"
)

// DayName имя дня недели, с понедельника по воскресенье.
type DayName string

// Дни недели в порядке ISO (понедельник — первый).
const (
	Monday    DayName = "Monday"
	Tuesday   DayName = "Tuesday"
	Wednesday DayName = "Wednesday"
	Thursday  DayName = "Thursday"
	Friday    DayName = "Friday"
	Saturday  DayName = "Saturday"
	Sunday    DayName = "Sunday"
)

// Days список дней недели в порядке ISO.
var Days = [7]DayName{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ISODate формат даты для ключей документов меню и посещаемости.
const ISODate = "2006-01-02"

// WeekID возвращает идентификатор ISO-недели для даты, например "2026-W08".
// Дата сдвигается на четверг своей недели, номер недели — порядковый номер
// этого четверга с начала года, делённый на 7 с округлением вверх.
func WeekID(date time.Time) string {
	d := truncate(date)
	thursday := d.AddDate(0, 0, 4-isoWeekday(d))
	weekNo := (thursday.YearDay() + 6) / 7
	return fmt.Sprintf("%d-W%02d", thursday.Year(), weekNo)
}

// ParseWeekID разбирает идентификатор недели вида "YYYY-Www".
// Возвращает ошибку для любого отклонения от формата.
func ParseWeekID(weekID string) (year int, weekNum int, err error) {
	if _, err := fmt.Sscanf(weekID, "%4d-W%2d", &year, &weekNum); err != nil {
		return 0, 0, fmt.Errorf("invalid week id %q: %w", weekID, err)
	}
	if len(weekID) != 8 || weekNum < 1 || weekNum > 53 {
		return 0, 0, fmt.Errorf("invalid week id %q", weekID)
	}
	return year, weekNum, nil
}

// DatesForWeek возвращает семь дат недели с понедельника по воскресенье.
// Понедельник первой недели находится через 4 января, которое по ISO
// гарантированно попадает в неделю 1.
func DatesForWeek(weekID string) ([7]time.Time, error) {
	var dates [7]time.Time
	year, weekNum, err := ParseWeekID(weekID)
	if err != nil {
		return dates, err
	}
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1Monday := jan4.AddDate(0, 0, 1-isoWeekday(jan4))
	for i := range dates {
		dates[i] = week1Monday.AddDate(0, 0, (weekNum-1)*7+i)
	}
	return dates, nil
}

// DateForDayName возвращает дату указанного дня внутри недели.
func DateForDayName(day DayName, weekID string) (time.Time, error) {
	idx := -1
	for i, d := range Days {
		if d == day {
			idx = i
			break
		}
	}
	if idx < 0 {
		return time.Time{}, fmt.Errorf("unknown day name %q", day)
	}
	dates, err := DatesForWeek(weekID)
	if err != nil {
		return time.Time{}, err
	}
	return dates[idx], nil
}

// PrevWeekID возвращает идентификатор предыдущей недели.
// При переходе через границу года всегда берётся неделя 52 предыдущего
// года; годы с 53 ISO-неделями не учитываются. Это осознанное упрощение.
func PrevWeekID(weekID string) (string, error) {
	year, weekNum, err := ParseWeekID(weekID)
	if err != nil {
		return "", err
	}
	weekNum--
	if weekNum < 1 {
		year--
		weekNum = 52
	}
	return fmt.Sprintf("%d-W%02d", year, weekNum), nil
}

// DayNameFor возвращает имя дня недели для даты.
func DayNameFor(date time.Time) DayName {
	return Days[isoWeekday(date)-1]
}

// TodayName возвращает имя сегодняшнего дня недели.
func TodayName() DayName {
	return DayNameFor(time.Now())
}

// FormatISO форматирует дату как "YYYY-MM-DD" — ключ документов хранилища.
func FormatISO(date time.Time) string {
	return date.Format(ISODate)
}

// ShortDay возвращает короткую подпись дня: "Mon", "Tue" и т.д.
func ShortDay(day DayName) string {
	return string(day)[:3]
}

// isoWeekday возвращает день недели в нумерации ISO: понедельник 1, воскресенье 7.
func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}

func truncate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
