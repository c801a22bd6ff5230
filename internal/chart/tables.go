// Static sexagenary tables: the ten heavenly stems and twelve earthly branches.
package chart

import "github.com/liunara/fourpillars/internal/elements"

// stems lists the ten heavenly stems in cycle order.
var stems = [10]StemDescriptor{
	{Character: "甲", Element: elements.Wood, Polarity: elements.Yang, Ordinal: 0},
	{Character: "乙", Element: elements.Wood, Polarity: elements.Yin, Ordinal: 1},
	{Character: "丙", Element: elements.Fire, Polarity: elements.Yang, Ordinal: 2},
	{Character: "丁", Element: elements.Fire, Polarity: elements.Yin, Ordinal: 3},
	{Character: "戊", Element: elements.Earth, Polarity: elements.Yang, Ordinal: 4},
	{Character: "己", Element: elements.Earth, Polarity: elements.Yin, Ordinal: 5},
	{Character: "庚", Element: elements.Metal, Polarity: elements.Yang, Ordinal: 6},
	{Character: "辛", Element: elements.Metal, Polarity: elements.Yin, Ordinal: 7},
	{Character: "壬", Element: elements.Water, Polarity: elements.Yang, Ordinal: 8},
	{Character: "癸", Element: elements.Water, Polarity: elements.Yin, Ordinal: 9},
}

// branches lists the twelve earthly branches in cycle order.
var branches = [12]BranchDescriptor{
	{Character: "子", Element: elements.Water, Animal: "Rat", Ordinal: 0},
	{Character: "丑", Element: elements.Earth, Animal: "Ox", Ordinal: 1},
	{Character: "寅", Element: elements.Wood, Animal: "Tiger", Ordinal: 2},
	{Character: "卯", Element: elements.Wood, Animal: "Rabbit", Ordinal: 3},
	{Character: "辰", Element: elements.Earth, Animal: "Dragon", Ordinal: 4},
	{Character: "巳", Element: elements.Fire, Animal: "Snake", Ordinal: 5},
	{Character: "午", Element: elements.Fire, Animal: "Horse", Ordinal: 6},
	{Character: "未", Element: elements.Earth, Animal: "Goat", Ordinal: 7},
	{Character: "申", Element: elements.Metal, Animal: "Monkey", Ordinal: 8},
	{Character: "酉", Element: elements.Metal, Animal: "Rooster", Ordinal: 9},
	{Character: "戌", Element: elements.Earth, Animal: "Dog", Ordinal: 10},
	{Character: "亥", Element: elements.Water, Animal: "Pig", Ordinal: 11},
}

// StemAt returns the heavenly stem at the given cycle position (any integer).
func StemAt(ordinal int) StemDescriptor {
	return stems[((ordinal%10)+10)%10]
}

// BranchAt returns the earthly branch at the given cycle position (any integer).
func BranchAt(ordinal int) BranchDescriptor {
	return branches[((ordinal%12)+12)%12]
}

// PillarAt returns the pillar for a sexagenary cycle position (any integer).
func PillarAt(sexagenary int) Pillar {
	n := ((sexagenary % 60) + 60) % 60
	return Pillar{Stem: StemAt(n), Branch: BranchAt(n)}
}
