package domain

import "strings"

// CardLevel represents the spaced-repetition maturity stage of a card.
type CardLevel string

const (
	LevelNew             CardLevel = "New"
	LevelLearning        CardLevel = "Learning"
	LevelYoung           CardLevel = "Young"
	LevelMature          CardLevel = "Mature"
	LevelRelearning      CardLevel = "Relearning"
	LevelSuspended       CardLevel = "Suspended"
	LevelSchedulerBuried CardLevel = "SchedulerBuried"
	LevelUserBuried      CardLevel = "UserBuried"
	LevelUnknown         CardLevel = "Unknown"
)

func (l CardLevel) String() string { return string(l) }

func (l CardLevel) IsValid() bool {
	switch l {
	case LevelNew, LevelLearning, LevelYoung, LevelMature, LevelRelearning,
		LevelSuspended, LevelSchedulerBuried, LevelUserBuried, LevelUnknown:
		return true
	}
	return false
}

// OverdueAfterDays returns the number of days after the last review at
// which a card of this level counts as overdue, or 0 if the level can
// never be overdue (new, suspended, buried, unknown).
func (l CardLevel) OverdueAfterDays() int {
	switch l {
	case LevelLearning, LevelRelearning:
		return 1
	case LevelYoung:
		return 7
	case LevelMature:
		return 21
	}
	return 0
}

// ParseCardLevel maps a raw export value to a CardLevel. Matching is
// case-insensitive and tolerates the separator variants the exporter has
// used over time ("buried (scheduler)", "user buried"). Unrecognized or
// empty input yields LevelUnknown, never an error.
func ParseCardLevel(raw string) CardLevel {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "", "-", "", "_", "", "(", "", ")", "").Replace(key)
	switch key {
	case "new":
		return LevelNew
	case "learning", "daylearning":
		return LevelLearning
	case "young":
		return LevelYoung
	case "mature", "verymature", "review":
		return LevelMature
	case "relearning":
		return LevelRelearning
	case "suspended":
		return LevelSuspended
	case "schedulerburied", "buriedscheduler", "schedburied":
		return LevelSchedulerBuried
	case "userburied", "burieduser":
		return LevelUserBuried
	}
	return LevelUnknown
}

// AllCardLevels lists every level in display order.
func AllCardLevels() []CardLevel {
	return []CardLevel{
		LevelNew, LevelLearning, LevelYoung, LevelMature, LevelRelearning,
		LevelSuspended, LevelSchedulerBuried, LevelUserBuried, LevelUnknown,
	}
}

// TimeWindow selects the span of the time-series view.
type TimeWindow string

const (
	WindowWeek  TimeWindow = "week"
	WindowMonth TimeWindow = "month"
	WindowYear  TimeWindow = "year"
)

func (w TimeWindow) String() string { return string(w) }

func (w TimeWindow) IsValid() bool {
	switch w {
	case WindowWeek, WindowMonth, WindowYear:
		return true
	}
	return false
}

// StatFilter is the exclusive counter-based filter dimension.
type StatFilter string

const (
	StatFilterNone         StatFilter = ""
	StatFilterNewToday     StatFilter = "newToday"
	StatFilterNewThisWeek  StatFilter = "newThisWeek"
	StatFilterStudiedToday StatFilter = "studiedToday"
	StatFilterAllCards     StatFilter = "allCards"
)

func (f StatFilter) String() string { return string(f) }

func (f StatFilter) IsValid() bool {
	switch f {
	case StatFilterNone, StatFilterNewToday, StatFilterNewThisWeek,
		StatFilterStudiedToday, StatFilterAllCards:
		return true
	}
	return false
}

// Theme is the display theme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) IsValid() bool { return t == ThemeDark || t == ThemeLight }

// Language is the UI language preference.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFinnish Language = "fi"
)

func (l Language) IsValid() bool { return l == LanguageEnglish || l == LanguageFinnish }
