package models

import "testing"

func TestParseLevelsFallBackToNeutralValue(t *testing.T) {
	t.Parallel()

	if got := ParseFlowLevel(" Heavy "); got != FlowHeavy {
		t.Fatalf("expected heavy flow, got %q", got)
	}
	if got := ParseFlowLevel("torrential"); got != FlowNone {
		t.Fatalf("expected unknown flow to fall back to none, got %q", got)
	}
	if got := ParseMood("CALM"); got != MoodCalm {
		t.Fatalf("expected calm mood, got %q", got)
	}
	if got := ParseMood("grumpy"); got != MoodNone {
		t.Fatalf("expected unknown mood to fall back to none, got %q", got)
	}
	if got := ParseCrampsLevel("severe"); got != CrampsSevere {
		t.Fatalf("expected severe cramps, got %q", got)
	}
	if got := ParseCrampsLevel(""); got != CrampsNone {
		t.Fatalf("expected empty cramps to fall back to none, got %q", got)
	}
	if got := ParseThemeMode("neon"); got != ThemeSystem {
		t.Fatalf("expected unknown theme to fall back to system, got %q", got)
	}
}

func TestLevelStoredValuesAreStable(t *testing.T) {
	t.Parallel()

	flows := []string{"none", "light", "medium", "heavy", "very_heavy"}
	for i, level := range FlowLevels() {
		if string(level) != flows[i] {
			t.Fatalf("expected flow value %q at %d, got %q", flows[i], i, level)
		}
	}

	moods := []string{"", "happy", "sad", "angry", "anxious", "calm", "energetic", "tired"}
	for i, mood := range Moods() {
		if string(mood) != moods[i] {
			t.Fatalf("expected mood value %q at %d, got %q", moods[i], i, mood)
		}
	}

	cramps := []string{"none", "mild", "moderate", "severe"}
	for i, level := range CrampsLevels() {
		if string(level) != cramps[i] {
			t.Fatalf("expected cramps value %q at %d, got %q", cramps[i], i, level)
		}
	}

	themes := []string{"light", "dark", "system"}
	for i, mode := range ThemeModes() {
		if string(mode) != themes[i] {
			t.Fatalf("expected theme value %q at %d, got %q", themes[i], i, mode)
		}
	}
}

func TestLevelDisplayNames(t *testing.T) {
	t.Parallel()

	if got := FlowVeryHeavy.DisplayName(); got != "Very Heavy" {
		t.Fatalf("expected Very Heavy, got %q", got)
	}
	if got := MoodHappy.Label(); got != "😊 Happy" {
		t.Fatalf("expected emoji label, got %q", got)
	}
	if got := MoodNone.Label(); got != "Not Specified" {
		t.Fatalf("expected plain label for unspecified mood, got %q", got)
	}
	if got := CrampsNone.DisplayName(); got != "No Cramps" {
		t.Fatalf("expected No Cramps, got %q", got)
	}
	if got := ThemeSystem.DisplayName(); got != "System Default" {
		t.Fatalf("expected System Default, got %q", got)
	}
}

func TestCycleEntryHasAnySymptoms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		entry CycleEntry
		want  bool
	}{
		{name: "empty", entry: CycleEntry{FlowLevel: FlowNone, Cramps: CrampsNone}, want: false},
		{name: "period", entry: CycleEntry{IsPeriod: true, FlowLevel: FlowNone, Cramps: CrampsNone}, want: true},
		{name: "mood", entry: CycleEntry{Mood: MoodSad, FlowLevel: FlowNone, Cramps: CrampsNone}, want: true},
		{name: "cramps", entry: CycleEntry{FlowLevel: FlowNone, Cramps: CrampsMild}, want: true},
		{name: "flow only", entry: CycleEntry{FlowLevel: FlowLight, Cramps: CrampsNone}, want: false},
	}

	for _, testCase := range cases {
		if got := testCase.entry.HasAnySymptoms(); got != testCase.want {
			t.Fatalf("%s: expected HasAnySymptoms=%v, got %v", testCase.name, testCase.want, got)
		}
	}

	notesOnly := CycleEntry{FlowLevel: FlowNone, Cramps: CrampsNone, Notes: " headache "}
	if !notesOnly.HasData() {
		t.Fatal("expected notes to count as data")
	}
	flowOnly := CycleEntry{FlowLevel: FlowLight, Cramps: CrampsNone}
	if !flowOnly.HasData() {
		t.Fatal("expected flow to count as data")
	}
}
