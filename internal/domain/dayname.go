package domain

import (
	"fmt"
	"time"
)

var dayNames = map[time.Weekday]string{
	time.Monday:    "понедельник",
	time.Tuesday:   "вторник",
	time.Wednesday: "среда",
	time.Thursday:  "четверг",
	time.Friday:    "пятница",
	time.Saturday:  "суббота",
	time.Sunday:    "воскресенье",
}

var dayNamesShort = map[time.Weekday]string{
	time.Monday:    "пн",
	time.Tuesday:   "вт",
	time.Wednesday: "ср",
	time.Thursday:  "чт",
	time.Friday:    "пт",
	time.Saturday:  "сб",
	time.Sunday:    "вс",
}

// DayName возвращает полное название дня недели
func DayName(date time.Time) string {
	return dayNames[date.Weekday()]
}

// FormatDayDisplay возвращает короткое отображаемое название дня ("пн. 10")
func FormatDayDisplay(date time.Time) string {
	return fmt.Sprintf("%s. %d", dayNamesShort[date.Weekday()], date.Day())
}
