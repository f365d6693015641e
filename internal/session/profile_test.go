package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/partscout/partscout/pkg/types"
)

func history(queries ...string) []types.SearchRecord {
	records := make([]types.SearchRecord, len(queries))
	for i, q := range queries {
		records[i] = types.SearchRecord{Query: q}
	}
	return records
}

func TestDeriveProfile(t *testing.T) {
	t.Run("empty history yields empty profile", func(t *testing.T) {
		profile := DeriveProfile(nil)
		assert.Empty(t, profile.FavoriteCategories)
		assert.Empty(t, profile.PreferredManufacturers)
	})

	t.Run("category mentions are tallied and ranked by frequency", func(t *testing.T) {
		profile := DeriveProfile(history(
			"10k resistor",
			"pull-up resistor array",
			"100nF capacitor",
		))

		assert.Equal(t, []string{"Resistors", "Capacitors"}, profile.FavoriteCategories)
	})

	t.Run("a query counts toward at most one category", func(t *testing.T) {
		// Both trigger words present; the earlier vocabulary entry wins.
		profile := DeriveProfile(history("resistor capacitor kit"))

		assert.Equal(t, []string{"Resistors"}, profile.FavoriteCategories)
	})

	t.Run("transistor is not mistaken for an ic", func(t *testing.T) {
		profile := DeriveProfile(history("npn transistor"))

		assert.Equal(t, []string{"Transistors"}, profile.FavoriteCategories)
	})

	t.Run("integrated circuit phrasing maps to ics", func(t *testing.T) {
		profile := DeriveProfile(history("timer integrated circuit"))

		assert.Equal(t, []string{"Integrated Circuits"}, profile.FavoriteCategories)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		profile := DeriveProfile(history("10K RESISTOR", "Texas Instruments op-amp"))

		assert.Contains(t, profile.FavoriteCategories, "Resistors")
		assert.Contains(t, profile.PreferredManufacturers, "Texas Instruments")
	})

	t.Run("every manufacturer mention in a query is tallied", func(t *testing.T) {
		profile := DeriveProfile(history("ti or maxim comparator"))

		assert.Contains(t, profile.PreferredManufacturers, "Ti")
		assert.Contains(t, profile.PreferredManufacturers, "Maxim")
	})

	t.Run("bare substring triggers match inside words", func(t *testing.T) {
		// "operational" contains "ti", so substring matching tallies it.
		profile := DeriveProfile(history("operational amplifier"))

		assert.Equal(t, []string{"Ti"}, profile.PreferredManufacturers)
	})

	t.Run("frequency ties keep first-seen order", func(t *testing.T) {
		profile := DeriveProfile(history("nxp mcu", "infineon mosfet"))

		assert.Equal(t, []string{"Nxp", "Infineon"}, profile.PreferredManufacturers)
	})

	t.Run("more frequent labels rank first", func(t *testing.T) {
		profile := DeriveProfile(history(
			"infineon mosfet",
			"nxp mcu",
			"nxp can transceiver",
		))

		assert.Equal(t, []string{"Nxp", "Infineon"}, profile.PreferredManufacturers)
	})

	t.Run("lists are truncated to five entries", func(t *testing.T) {
		profile := DeriveProfile(history(
			"texas instruments part", // tallies Ti and Texas Instruments
			"analog devices adc",
			"maxim rtc",
			"linear regulator",
			"stmicroelectronics mcu",
			"infineon igbt",
			"nxp nfc",
		))

		assert.Len(t, profile.PreferredManufacturers, 5)
	})

	t.Run("derivation is a pure function of the history", func(t *testing.T) {
		h := history("10k resistor", "nxp mcu")

		first := DeriveProfile(h)
		second := DeriveProfile(h)
		assert.Equal(t, first, second)
	})
}
