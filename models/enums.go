package models

import "fmt"

// Frequency describes how often a habit is intended to be performed.
// The zero value is invalid; wire values are lowercase, storage values
// are uppercase. All conversions go through the tables below so that the
// wire↔storage mapping lives in exactly one place.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// GoalType describes the rolling period over which a consistency goal is
// evaluated. Same wire/storage convention as Frequency.
type GoalType string

const (
	GoalTypeWeekly  GoalType = "weekly"
	GoalTypeMonthly GoalType = "monthly"
	GoalTypeYearly  GoalType = "yearly"
)

var frequencyToStorage = map[Frequency]string{
	FrequencyDaily:   "DAILY",
	FrequencyWeekly:  "WEEKLY",
	FrequencyMonthly: "MONTHLY",
}

var frequencyFromStorage = map[string]Frequency{
	"DAILY":   FrequencyDaily,
	"WEEKLY":  FrequencyWeekly,
	"MONTHLY": FrequencyMonthly,
}

var goalTypeToStorage = map[GoalType]string{
	GoalTypeWeekly:  "WEEKLY",
	GoalTypeMonthly: "MONTHLY",
	GoalTypeYearly:  "YEARLY",
}

var goalTypeFromStorage = map[string]GoalType{
	"WEEKLY":  GoalTypeWeekly,
	"MONTHLY": GoalTypeMonthly,
	"YEARLY":  GoalTypeYearly,
}

// Valid reports whether f is one of the known frequency values.
func (f Frequency) Valid() bool {
	_, ok := frequencyToStorage[f]
	return ok
}

// StorageValue returns the uppercase form persisted in the database.
func (f Frequency) StorageValue() (string, error) {
	v, ok := frequencyToStorage[f]
	if !ok {
		return "", fmt.Errorf("unknown frequency %q", string(f))
	}
	return v, nil
}

// FrequencyFromStorage converts a stored uppercase value back to its wire form.
func FrequencyFromStorage(s string) (Frequency, error) {
	f, ok := frequencyFromStorage[s]
	if !ok {
		return "", fmt.Errorf("unknown stored frequency %q", s)
	}
	return f, nil
}

// Valid reports whether g is one of the known goal type values.
func (g GoalType) Valid() bool {
	_, ok := goalTypeToStorage[g]
	return ok
}

// StorageValue returns the uppercase form persisted in the database.
func (g GoalType) StorageValue() (string, error) {
	v, ok := goalTypeToStorage[g]
	if !ok {
		return "", fmt.Errorf("unknown goal type %q", string(g))
	}
	return v, nil
}

// GoalTypeFromStorage converts a stored uppercase value back to its wire form.
func GoalTypeFromStorage(s string) (GoalType, error) {
	g, ok := goalTypeFromStorage[s]
	if !ok {
		return "", fmt.Errorf("unknown stored goal type %q", s)
	}
	return g, nil
}
