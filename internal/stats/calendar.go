package stats

import (
	"fmt"
	"time"

	"github.com/julianstephens/routinely/internal/utils"
)

// HeatmapCell is one day of the trailing heatmap.
type HeatmapCell struct {
	Completion
	Level int `json:"level"`
}

// IntensityLevel buckets a rate into five shades: 0 for nothing completed,
// then (0,0.3], (0.3,0.6], (0.6,0.9] and above 0.9.
func IntensityLevel(rate float64) int {
	switch {
	case rate <= 0:
		return 0
	case rate <= 0.3:
		return 1
	case rate <= 0.6:
		return 2
	case rate <= 0.9:
		return 3
	default:
		return 4
	}
}

// Heatmap returns the `days` days ending at end, oldest first.
func Heatmap(idx *Index, end string, days int) ([]HeatmapCell, error) {
	if days <= 0 {
		return []HeatmapCell{}, nil
	}
	start, err := utils.AddDays(end, -(days - 1))
	if err != nil {
		return nil, err
	}
	keys, err := utils.DateRange(start, end)
	if err != nil {
		return nil, err
	}
	cells := make([]HeatmapCell, 0, len(keys))
	for _, k := range keys {
		c := idx.Completion(k)
		cells = append(cells, HeatmapCell{Completion: c, Level: IntensityLevel(c.Rate)})
	}
	return cells, nil
}

// MonthDay is one cell of a month grid. Padding cells have an empty Date.
type MonthDay struct {
	Completion
	Day     int  `json:"day"`
	IsToday bool `json:"isToday"`
	AllDone bool `json:"allDone"`
}

// MonthGrid is a month laid out in Monday-first weeks.
type MonthGrid struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Leading int        `json:"leading"`
	Days    []MonthDay `json:"days"`
}

// Weeks splits the grid into rows of seven, padding the last row.
func (g MonthGrid) Weeks() [][]MonthDay {
	cells := make([]MonthDay, g.Leading, g.Leading+len(g.Days)+6)
	cells = append(cells, g.Days...)
	for len(cells)%7 != 0 {
		cells = append(cells, MonthDay{})
	}
	rows := make([][]MonthDay, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		rows = append(rows, cells[i:i+7])
	}
	return rows
}

// BuildMonthGrid computes every day of the given month. today marks the
// current day when it falls inside the month.
func BuildMonthGrid(idx *Index, year int, month time.Month, today string) (MonthGrid, error) {
	if month < time.January || month > time.December {
		return MonthGrid{}, fmt.Errorf("invalid month %d", month)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	leading := (int(first.Weekday()) + 6) % 7
	last := first.AddDate(0, 1, -1)

	grid := MonthGrid{Year: year, Month: month, Leading: leading}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := utils.ToDateKey(d)
		c := idx.Completion(key)
		grid.Days = append(grid.Days, MonthDay{
			Completion: c,
			Day:        d.Day(),
			IsToday:    key == today,
			AllDone:    c.AllDone(),
		})
	}
	return grid, nil
}

// Streak counts consecutive all-done days ending at end. A day with nothing
// due breaks the streak.
func Streak(idx *Index, end string) int {
	n := 0
	day := end
	for {
		if !idx.Completion(day).AllDone() {
			return n
		}
		n++
		prev, err := utils.AddDays(day, -1)
		if err != nil {
			return n
		}
		day = prev
	}
}
