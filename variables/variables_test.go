package variables

import (
	"errors"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sse-journal/model"
)

func TestNewGameDate(t *testing.T) {
	tests := []struct {
		days    float32
		year    int
		month   string
		day     int
		weekday string
		hms     [3]int
	}{
		{1.5, 201, "Last Seed", 17, "Morndas", [3]int{12, 0, 0}},
		{1.25, 201, "Last Seed", 17, "Morndas", [3]int{6, 0, 0}},
		{16, 201, "Hearthfire", 1, "Tirdas", [3]int{0, 0, 0}},
		{138.75, 202, "Morning Star", 1, "Fredas", [3]int{18, 0, 0}},
	}
	for _, tt := range tests {
		g, err := NewGameDate(tt.days)
		if err != nil {
			t.Fatalf("NewGameDate(%v): %v", tt.days, err)
		}
		if g.Year != tt.year || monthNames[g.Month] != tt.month || g.Day != tt.day || weekdayNames[g.Weekday] != tt.weekday {
			t.Errorf("NewGameDate(%v) = %+v", tt.days, g)
		}
		if g.Hour != tt.hms[0] || g.Minute != tt.hms[1] || g.Second != tt.hms[2] {
			t.Errorf("NewGameDate(%v) time = %02d:%02d:%02d", tt.days, g.Hour, g.Minute, g.Second)
		}
	}
}

func TestNewGameDate_Rejects(t *testing.T) {
	for _, days := range []float32{0, -2, float32(math.NaN()), float32(math.Inf(1)), 1e-40, 1e30, math.MaxFloat32, 1 << 30} {
		if _, err := NewGameDate(days); !errors.Is(err, model.ErrResourceUnavailable) {
			t.Errorf("NewGameDate(%v) err = %v", days, err)
		}
	}
}

func TestFormatGameTime(t *testing.T) {
	clock := StaticClock(1.5)
	tests := []struct {
		format string
		want   string
	}{
		{"%A, %d %b %EY", "Morndas, 17 Last Seed 4E201"},
		{"%H:%M:%S", "12:00:00"},
		{"%lm|%bm|%am|%wd", "Last Seed|The Warrior|Thtithil (Egg)|Morndas"},
		{"%a %g %G %Ey %EC", "Mor 4E201 4E201 4E201 4E201"},
		{"[%c%Ec%x%Ex%X%EX]", "[]"},
		{"%Od.%m", "17.08"},
		{"day %j, %Y", "day 229, 201"},
		{"50%", "50%"},
	}
	for _, tt := range tests {
		if got := FormatGameTime(tt.format, clock); got != tt.want {
			t.Errorf("FormatGameTime(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestNewGameDate_LargestReading(t *testing.T) {
	g, err := NewGameDate(1<<30 - 64)
	if err != nil {
		t.Fatalf("NewGameDate: %v", err)
	}
	if g.Weekday < 0 || g.Weekday > 6 || g.Month < 0 || g.Month > 11 {
		t.Fatalf("date out of range: %+v", g)
	}
	if got := FormatGameTime("%A %b %g", StaticClock(1<<30-64)); got == NotAvailable {
		t.Fatalf("FormatGameTime = %q", got)
	}
}

func TestFormatGameTime_NotAvailable(t *testing.T) {
	clocks := []GameClock{
		nil,
		ClockFunc(func() (float32, bool) { return 3, false }),
		StaticClock(0),
		StaticClock(-1),
		StaticClock(float32(math.NaN())),
		StaticClock(float32(math.Inf(1))),
		StaticClock(1e-40),
		StaticClock(1e30),
		StaticClock(math.MaxFloat32),
	}
	for i, c := range clocks {
		if got := FormatGameTime("%H", c); got != NotAvailable {
			t.Errorf("clock %d: got %q, want %q", i, got, NotAvailable)
		}
	}
}

func TestFormat_LocalTime(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	if got := Format("%Y-%m-%d %H:%M:%S", now, nil); got != "2024-03-05 14:07:09" {
		t.Errorf("Format = %q", got)
	}
	if got := Format("%Ey|%OH", now, nil); got != "24|14" {
		t.Errorf("modifiers not dropped: %q", got)
	}
}

func TestFormat_LongestTokenWins(t *testing.T) {
	custom := map[string]string{"l": "short", "lm": "long"}
	if got := Format("%lm %l", time.Time{}, custom); got != "long short" {
		t.Errorf("Format = %q", got)
	}
	// Expanded values are never rescanned.
	custom = map[string]string{"b": "%a", "a": "X"}
	if got := Format("%b", time.Time{}, custom); got != "%a" {
		t.Errorf("Format = %q", got)
	}
}

func TestSet(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) }
	set := NewSet(StaticClock(1.5), now)

	if len(set.List()) != 2 {
		t.Fatalf("expected 2 built-ins, got %d", len(set.List()))
	}
	if err := set.Remove(GameTimeID); !errors.Is(err, ErrNotDeletable) {
		t.Fatalf("err = %v, want ErrNotDeletable", err)
	}

	v, err := set.Add(LocalTimeID, "Clock", "%H:%M")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if v.ID != firstUserID || !v.Deletable {
		t.Fatalf("unexpected user variable %+v", v)
	}
	if got, _ := set.Render(v.ID); got != "14:07" {
		t.Fatalf("render = %q", got)
	}
	if got := set.Evaluate(set.Get(GameTimeID), "%b"); got != "Last Seed" {
		t.Fatalf("evaluate = %q", got)
	}
	if _, err := set.Add(42, "x", ""); !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("err = %v, want ErrUnknownVariable", err)
	}
	if err := set.Remove(v.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := set.Render(v.ID); !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("err = %v, want ErrUnknownVariable", err)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	path := filepath.Join(t.TempDir(), "variables.json")

	set := NewSet(nil, nil)
	gt := set.Get(GameTimeID)
	gt.Name = "Tamriel time"
	gt.Params = "%A"
	set.Add(GameTimeID, "Month", "%b")

	if err := NewStore(path, logger).Save(set); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := NewSet(nil, nil)
	if err := NewStore(path, logger).Load(loaded); err != nil {
		t.Fatalf("load: %v", err)
	}
	got := loaded.Get(GameTimeID)
	if got.Name != "Tamriel time" || got.Params != "%A" || got.Deletable {
		t.Fatalf("built-in not matched by id: %+v", got)
	}
	user := loaded.Get(firstUserID)
	if user == nil || user.Source != GameTimeID || user.Params != "%b" || !user.Deletable {
		t.Fatalf("user variable not restored: %+v", user)
	}
	if v, _ := loaded.Add(LocalTimeID, "next", ""); v.ID != firstUserID+1 {
		t.Fatalf("next id = %d", v.ID)
	}
}

func TestStore_LoadIntoPopulatedSet(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	path := filepath.Join(t.TempDir(), "variables.json")

	set := NewSet(nil, nil)
	v, _ := set.Add(GameTimeID, "Month", "%b")
	store := NewStore(path, logger)
	if err := store.Save(set); err != nil {
		t.Fatalf("save: %v", err)
	}

	v.Name = "edited"
	v.Params = "%A"
	if err := store.Load(set); err != nil {
		t.Fatalf("load: %v", err)
	}
	if v.Name != "Month" || v.Params != "%b" {
		t.Fatalf("stored values not applied: %+v", v)
	}
	if len(set.List()) != 3 {
		t.Fatalf("got %d variables, want 3", len(set.List()))
	}
}

func TestStore_Load(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	dir := t.TempDir()

	set := NewSet(nil, nil)
	if err := NewStore(filepath.Join(dir, "none.json"), logger).Load(set); err != nil {
		t.Fatalf("missing file must be ignored: %v", err)
	}

	path := filepath.Join(dir, "old.json")
	os.WriteFile(path, []byte(`{"version":{"major":0},"variables":[]}`), 0644)
	if err := NewStore(path, logger).Load(set); !errors.Is(err, model.ErrVersionMismatch) {
		t.Fatalf("err = %v, want ErrVersionMismatch", err)
	}

	path = filepath.Join(dir, "odd.json")
	os.WriteFile(path, []byte(`{"version":{"major":1},"variables":[{"id":7,"name":"ghost"},{"id":120,"source":99,"name":"orphan"}]}`), 0644)
	if err := NewStore(path, logger).Load(set); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(set.List()) != 2 {
		t.Fatalf("unknown entries must be skipped, got %d variables", len(set.List()))
	}
}
