package variables

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"sse-journal/model"
)

// NotAvailable is rendered whenever the game clock cannot be read.
const NotAvailable = "(n/a)"

// GameClock reports the in-game time as days since the start of the game.
// The integer part is the day, the fraction the time of day.
type GameClock interface {
	GameDays() (float32, bool)
}

type ClockFunc func() (float32, bool)

func (f ClockFunc) GameDays() (float32, bool) { return f() }

// StaticClock always reports the same reading.
type StaticClock float32

func (c StaticClock) GameDays() (float32, bool) { return float32(c), true }

var (
	monthNames = [12]string{
		"Morning Star", "Sun's Dawn", "First Seed", "Rain's Hand", "Second Seed", "Midyear",
		"Sun's Height", "Last Seed", "Hearthfire", "Frostfall", "Sun's Dusk", "Evening Star",
	}
	birthSigns = [12]string{
		"The Ritual", "The Lover", "The Lord", "The Mage", "The Shadow", "The Steed",
		"The Apprentice", "The Warrior", "The Lady", "The Tower", "The Atronach", "The Thief",
	}
	argonianMonths = [12]string{
		"Vakka (Sun)", "Xeech (Nut)", "Sisei (Sprout)", "Hist-Deek (Hist Sapling)",
		"Hist-Dooka (Mature Hist)", "Hist-Tsoko (Elder Hist)", "Thtithil-Gah (Egg-Basket)",
		"Thtithil (Egg)", "Nushmeeko (Lizard)", "Shaja-Nushmeeko (Semi-Humanoid Lizard)",
		"Saxhleel (Argonian)", "Xulomaht (The Deceased)",
	}
	weekdayNames = [7]string{"Sundas", "Morndas", "Tirdas", "Middas", "Turdas", "Fredas", "Loredas"}
	weekdayShort = [7]string{"Sun", "Mor", "Tir", "Mid", "Tur", "Fre", "Lor"}

	// cumulative days at the end of each month
	monthEnds = [12]int{31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
)

const (
	startYear    = 201
	startYearDay = 228 // 17th of Last Seed, zero based
	minNormal32  = 0x1p-126
)

// Readings from maxDays on do not fit the calendar arithmetic on 32 bit ints.
const maxDays = 1 << 30

// GameDate is a point of the Tamrielic calendar. Day one of the game is
// Morndas, the 17th of Last Seed, 4E201.
type GameDate struct {
	Year    int
	Month   int // 0 based
	Day     int // 1 based
	YearDay int // 0 based
	Weekday int // 0 is Sundas
	Hour    int
	Minute  int
	Second  int
}

// NewGameDate converts a clock reading. Zero, negative, non-normal and
// implausibly large readings are rejected.
func NewGameDate(days float32) (GameDate, error) {
	if math.IsNaN(float64(days)) || math.IsInf(float64(days), 0) || days < minNormal32 || days >= maxDays {
		return GameDate{}, fmt.Errorf("%w: game clock reads %v", model.ErrResourceUnavailable, days)
	}

	whole := math.Floor(float64(days))
	secs := int((float64(days) - whole) * 86400)
	d := int(whole)

	abs := d - 1 + startYearDay
	g := GameDate{
		Year:    startYear + abs/365,
		YearDay: abs % 365,
		Weekday: d % 7,
		Hour:    secs / 3600,
		Minute:  secs / 60 % 60,
		Second:  secs % 60,
	}
	for g.Month = 0; monthEnds[g.Month] <= g.YearDay; g.Month++ {
	}
	g.Day = g.YearDay + 1
	if g.Month > 0 {
		g.Day -= monthEnds[g.Month-1]
	}
	return g, nil
}

// Time maps the date onto a time.Time for the conversions the calendar does
// not override (hours, minutes, day of month...).
func (g GameDate) Time() time.Time {
	return time.Date(g.Year, time.Month(g.Month+1), g.Day, g.Hour, g.Minute, g.Second, 0, time.UTC)
}

// Tokens is the conversion table of the game calendar.
func (g GameDate) Tokens() map[string]string {
	era := "4E" + strconv.Itoa(g.Year)
	iso := g.Weekday
	if iso == 0 {
		iso = 7
	}
	return map[string]string{
		"EY": era, "Ey": era, "EC": era, "G": era, "g": era,
		"Y": strconv.Itoa(g.Year),
		"y": fmt.Sprintf("%02d", g.Year%100),
		"C": fmt.Sprintf("%02d", g.Year/100),

		"b": monthNames[g.Month], "lm": monthNames[g.Month],
		"B": birthSigns[g.Month], "bm": birthSigns[g.Month],
		"h": argonianMonths[g.Month], "am": argonianMonths[g.Month],

		"a": weekdayShort[g.Weekday],
		"A": weekdayNames[g.Weekday], "wd": weekdayNames[g.Weekday],
		"u": strconv.Itoa(iso),
		"w": strconv.Itoa(g.Weekday),
		"j": fmt.Sprintf("%03d", g.YearDay+1),

		"c": "", "Ec": "", "x": "", "Ex": "", "X": "", "EX": "",
	}
}

// FormatGameTime renders format for the clock reading, or NotAvailable.
func FormatGameTime(format string, clock GameClock) string {
	if clock == nil {
		return NotAvailable
	}
	days, ok := clock.GameDays()
	if !ok {
		return NotAvailable
	}
	g, err := NewGameDate(days)
	if err != nil {
		return NotAvailable
	}
	return Format(format, g.Time(), g.Tokens())
}
