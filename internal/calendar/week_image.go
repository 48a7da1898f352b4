package calendar

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/tutor-crm/backend/internal/model"
)

// Константы размеров и отступов
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 90
	leftLabelsWidth = 80
	dayPaddingX     = 6
	minBlockHeight  = 10.0
	blockRadius     = 6.0
	totalDaysInWeek = 7
	hourPaddingTop  = 1
	hourPaddingBot  = 1
	defaultMinHour  = 8
	defaultMaxHour  = 21
)

// Цветовая схема
var (
	canvasColor    = color.RGBA{245, 246, 248, 255}
	headerColor    = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}
	todayColor     = color.NRGBA{255, 99, 71, 90}
	blockTextColor = color.RGBA{20, 24, 28, 230}
)

var weekdayNamesRussian = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

type weekBounds struct {
	start time.Time
	end   time.Time
}

type hourRange struct {
	start int
	end   int
	total int
}

// RenderWeekImage рисует расписание недели, в которую попадает date,
// по событиям календаря. Возвращает PNG.
func RenderWeekImage(date time.Time, events []model.CalendarEvent) ([]byte, error) {
	week := normalizeToWeekBounds(date)
	today := normalizeToDay(time.Now())

	byDay := groupEventsByDay(events)
	hours := calculateHourRange(events)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(canvasColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, week)
	drawHourLabels(dc, hours, cellHeight)

	day := week.start
	for dayIndex := 0; dayIndex < totalDaysInWeek; dayIndex++ {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)

		// Фон дня: чередуем оттенки, сегодня подсвечиваем
		bg := evenDayColor
		if dayIndex%2 == 1 {
			bg = oddDayColor
		}
		if day.Equal(today) {
			bg = todayColor
		}
		dc.SetColor(bg)
		dc.DrawRectangle(x, headerHeight, float64(dayWidth), float64(dayHeight))
		dc.Fill()

		// Подпись дня
		dc.SetColor(headerColor)
		label := fmt.Sprintf("%s %02d", weekdayNamesRussian[dayIndex], day.Day())
		dc.DrawStringAnchored(label, x+float64(dayWidth)/2, float64(headerHeight)-14, 0.5, 0.5)

		// Горизонтальные линии часов
		dc.SetColor(hourLineColor)
		for h := 0; h < hours.total; h++ {
			y := float64(headerHeight) + float64(h)*cellHeight
			dc.DrawLine(x, y, x+float64(dayWidth), y)
			dc.Stroke()
		}

		for _, event := range byDay[day.Format(model.DateLayout)] {
			drawEventBlock(dc, event, x, float64(dayWidth), hours, cellHeight)
		}

		day = day.AddDate(0, 0, 1)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

// normalizeToWeekBounds нормализует дату к границам недели (Пн-Вс)
func normalizeToWeekBounds(date time.Time) weekBounds {
	normalized := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start := normalized.AddDate(0, 0, -daysSinceMonday)
	return weekBounds{start: start, end: start.AddDate(0, 0, 6)}
}

func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func groupEventsByDay(events []model.CalendarEvent) map[string][]model.CalendarEvent {
	byDay := make(map[string][]model.CalendarEvent)
	for _, event := range events {
		date, _, _ := strings.Cut(event.Start, "T")
		byDay[date] = append(byDay[date], event)
	}
	return byDay
}

// calculateHourRange подбирает диапазон часов так, чтобы все события
// влезли, с небольшим запасом сверху и снизу
func calculateHourRange(events []model.CalendarEvent) hourRange {
	minHour := 24
	maxHour := 0

	for _, event := range events {
		startH, _, ok1 := eventClock(event.Start)
		endH, endM, ok2 := eventClock(event.End)
		if !ok1 || !ok2 {
			continue
		}
		if endM > 0 {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{start: startHour, end: endHour, total: endHour - startHour + 1}
}

func drawHeader(dc *gg.Context, week weekBounds) {
	title := fmt.Sprintf("%s — %s",
		week.start.Format("02.01.2006"),
		week.end.Format("02.01.2006"))
	dc.SetColor(headerColor)
	dc.DrawStringAnchored(title, imageWidth/2, headerHeight/3, 0.5, 0.5)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for h := 0; h < hours.total; h++ {
		y := float64(headerHeight) + float64(h)*cellHeight
		label := fmt.Sprintf("%02d:00", hours.start+h)
		dc.DrawStringAnchored(label, leftLabelsWidth-10, y, 1, 0.5)
	}
}

func drawEventBlock(dc *gg.Context, event model.CalendarEvent, x, dayWidth float64, hours hourRange, cellHeight float64) {
	startH, startM, ok1 := eventClock(event.Start)
	endH, endM, ok2 := eventClock(event.End)
	if !ok1 || !ok2 {
		return
	}

	top := float64(headerHeight) + (float64(startH-hours.start)+float64(startM)/60)*cellHeight
	bottom := float64(headerHeight) + (float64(endH-hours.start)+float64(endM)/60)*cellHeight
	if bottom-top < minBlockHeight {
		bottom = top + minBlockHeight
	}

	dc.SetColor(parseHexColor(event.BackgroundColor))
	dc.DrawRoundedRectangle(x+dayPaddingX, top, dayWidth-2*dayPaddingX, bottom-top, blockRadius)
	dc.Fill()

	dc.SetColor(blockTextColor)
	timeLabel := fmt.Sprintf("%02d:%02d %s", startH, startM, event.Title)
	dc.DrawStringAnchored(truncate(timeLabel, 24), x+dayWidth/2, top+(bottom-top)/2, 0.5, 0.5)
}

// eventClock извлекает часы и минуты из "YYYY-MM-DDTHH:MM"
func eventClock(dt string) (hours, minutes int, ok bool) {
	_, clock, found := strings.Cut(dt, "T")
	if !found {
		return 0, 0, false
	}
	return splitTimeOrZero(clock)
}

func splitTimeOrZero(hhmm string) (int, int, bool) {
	h, m, ok := splitTime(cutSeconds(hhmm))
	return h, m, ok
}

func parseHexColor(hex string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return oddDayColor
	}
	return color.NRGBA{r, g, b, 255}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
