package models

import "strings"

type FlowLevel string

const (
	FlowNone      FlowLevel = "none"
	FlowLight     FlowLevel = "light"
	FlowMedium    FlowLevel = "medium"
	FlowHeavy     FlowLevel = "heavy"
	FlowVeryHeavy FlowLevel = "very_heavy"
)

var flowDisplayNames = map[FlowLevel]string{
	FlowNone:      "No Flow",
	FlowLight:     "Light",
	FlowMedium:    "Medium",
	FlowHeavy:     "Heavy",
	FlowVeryHeavy: "Very Heavy",
}

func FlowLevels() []FlowLevel {
	return []FlowLevel{FlowNone, FlowLight, FlowMedium, FlowHeavy, FlowVeryHeavy}
}

// ParseFlowLevel maps a stored value to its level, falling back to FlowNone.
func ParseFlowLevel(raw string) FlowLevel {
	level := FlowLevel(strings.ToLower(strings.TrimSpace(raw)))
	if level.Valid() {
		return level
	}
	return FlowNone
}

func (level FlowLevel) Valid() bool {
	_, ok := flowDisplayNames[level]
	return ok
}

func (level FlowLevel) DisplayName() string {
	return flowDisplayNames[ParseFlowLevel(string(level))]
}

type Mood string

const (
	MoodNone      Mood = ""
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodAngry     Mood = "angry"
	MoodAnxious   Mood = "anxious"
	MoodCalm      Mood = "calm"
	MoodEnergetic Mood = "energetic"
	MoodTired     Mood = "tired"
)

type moodInfo struct {
	displayName string
	emoji       string
}

var moodCatalog = map[Mood]moodInfo{
	MoodNone:      {displayName: "Not Specified"},
	MoodHappy:     {displayName: "Happy", emoji: "😊"},
	MoodSad:       {displayName: "Sad", emoji: "😢"},
	MoodAngry:     {displayName: "Angry", emoji: "😠"},
	MoodAnxious:   {displayName: "Anxious", emoji: "😰"},
	MoodCalm:      {displayName: "Calm", emoji: "😌"},
	MoodEnergetic: {displayName: "Energetic", emoji: "⚡"},
	MoodTired:     {displayName: "Tired", emoji: "😴"},
}

func Moods() []Mood {
	return []Mood{MoodNone, MoodHappy, MoodSad, MoodAngry, MoodAnxious, MoodCalm, MoodEnergetic, MoodTired}
}

func ParseMood(raw string) Mood {
	mood := Mood(strings.ToLower(strings.TrimSpace(raw)))
	if mood.Valid() {
		return mood
	}
	return MoodNone
}

func (mood Mood) Valid() bool {
	_, ok := moodCatalog[mood]
	return ok
}

func (mood Mood) DisplayName() string {
	return moodCatalog[ParseMood(string(mood))].displayName
}

func (mood Mood) Emoji() string {
	return moodCatalog[ParseMood(string(mood))].emoji
}

// Label joins emoji and display name, e.g. "😊 Happy".
func (mood Mood) Label() string {
	return strings.TrimSpace(mood.Emoji() + " " + mood.DisplayName())
}

type CrampsLevel string

const (
	CrampsNone     CrampsLevel = "none"
	CrampsMild     CrampsLevel = "mild"
	CrampsModerate CrampsLevel = "moderate"
	CrampsSevere   CrampsLevel = "severe"
)

var crampsDisplayNames = map[CrampsLevel]string{
	CrampsNone:     "No Cramps",
	CrampsMild:     "Mild",
	CrampsModerate: "Moderate",
	CrampsSevere:   "Severe",
}

func CrampsLevels() []CrampsLevel {
	return []CrampsLevel{CrampsNone, CrampsMild, CrampsModerate, CrampsSevere}
}

func ParseCrampsLevel(raw string) CrampsLevel {
	level := CrampsLevel(strings.ToLower(strings.TrimSpace(raw)))
	if level.Valid() {
		return level
	}
	return CrampsNone
}

func (level CrampsLevel) Valid() bool {
	_, ok := crampsDisplayNames[level]
	return ok
}

func (level CrampsLevel) DisplayName() string {
	return crampsDisplayNames[ParseCrampsLevel(string(level))]
}

type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

var themeDisplayNames = map[ThemeMode]string{
	ThemeLight:  "Light",
	ThemeDark:   "Dark",
	ThemeSystem: "System Default",
}

func ThemeModes() []ThemeMode {
	return []ThemeMode{ThemeLight, ThemeDark, ThemeSystem}
}

func ParseThemeMode(raw string) ThemeMode {
	mode := ThemeMode(strings.ToLower(strings.TrimSpace(raw)))
	if mode.Valid() {
		return mode
	}
	return ThemeSystem
}

func (mode ThemeMode) Valid() bool {
	_, ok := themeDisplayNames[mode]
	return ok
}

func (mode ThemeMode) DisplayName() string {
	return themeDisplayNames[ParseThemeMode(string(mode))]
}
