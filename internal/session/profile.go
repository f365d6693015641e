package session

import (
	"sort"
	"strings"

	"github.com/partscout/partscout/pkg/types"
)

// maxProfileEntries bounds each ranked list in a derived profile.
const maxProfileEntries = 5

// categoryEntry maps trigger substrings to a canonical category label.
// Entries are checked in order and the first match wins, so a query
// counts toward at most one category. Order matters: "microcontroller"
// contains "ic" but a query mentioning "transistor" must count as
// Transistors, not Integrated Circuits.
type categoryEntry struct {
	triggers []string
	label    string
}

var categoryVocabulary = []categoryEntry{
	{triggers: []string{"resistor"}, label: "Resistors"},
	{triggers: []string{"capacitor"}, label: "Capacitors"},
	{triggers: []string{"transistor"}, label: "Transistors"},
	{triggers: []string{"ic", "integrated circuit"}, label: "Integrated Circuits"},
}

// manufacturerEntry maps one trigger substring to its title-cased
// canonical name. Unlike categories, every matching trigger is tallied.
type manufacturerEntry struct {
	trigger   string
	canonical string
}

var manufacturerVocabulary = []manufacturerEntry{
	{trigger: "ti", canonical: "Ti"},
	{trigger: "texas instruments", canonical: "Texas Instruments"},
	{trigger: "analog devices", canonical: "Analog Devices"},
	{trigger: "maxim", canonical: "Maxim"},
	{trigger: "linear", canonical: "Linear"},
	{trigger: "stmicroelectronics", canonical: "Stmicroelectronics"},
	{trigger: "infineon", canonical: "Infineon"},
	{trigger: "nxp", canonical: "Nxp"},
}

// DeriveProfile computes a user's affinity profile from their search
// history. It is a pure function of the record sequence: category and
// manufacturer mentions are tallied against fixed vocabularies, ranked
// by frequency with ties broken by first appearance, and truncated to
// the top five.
func DeriveProfile(history []types.SearchRecord) types.UserProfile {
	var categories, manufacturers []string

	for _, rec := range history {
		query := strings.ToLower(rec.Query)

		for _, entry := range categoryVocabulary {
			if containsAny(query, entry.triggers) {
				categories = append(categories, entry.label)
				break
			}
		}

		for _, entry := range manufacturerVocabulary {
			if strings.Contains(query, entry.trigger) {
				manufacturers = append(manufacturers, entry.canonical)
			}
		}
	}

	return types.UserProfile{
		FavoriteCategories:     topByFrequency(categories, maxProfileEntries),
		PreferredManufacturers: topByFrequency(manufacturers, maxProfileEntries),
	}
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// topByFrequency ranks tallied labels by count, descending, preserving
// first-seen order among equal counts, and keeps at most k.
func topByFrequency(tallies []string, k int) []string {
	if len(tallies) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tallies))
	var order []string
	for _, label := range tallies {
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > k {
		order = order[:k]
	}
	return order
}
