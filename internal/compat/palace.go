// Marriage palace (day branch) relationship tables.
package compat

// branchPair is an unordered pair of branch ordinals.
type branchPair struct{ a, b int }

func pair(a, b int) branchPair {
	if a > b {
		a, b = b, a
	}
	return branchPair{a, b}
}

// The six combinations (六合) — strongest day-branch affinity.
var combinations = map[branchPair]bool{
	pair(0, 1):  true, // 子丑
	pair(2, 11): true, // 寅亥
	pair(3, 10): true, // 卯戌
	pair(4, 9):  true, // 辰酉
	pair(5, 8):  true, // 巳申
	pair(6, 7):  true, // 午未
}

// The six clashes (六冲) — direct opposition.
var clashes = map[branchPair]bool{
	pair(0, 6):  true, // 子午
	pair(1, 7):  true, // 丑未
	pair(2, 8):  true, // 寅申
	pair(3, 9):  true, // 卯酉
	pair(4, 10): true, // 辰戌
	pair(5, 11): true, // 巳亥
}

// The six harms (六害) — quiet erosion.
var harms = map[branchPair]bool{
	pair(0, 7):  true, // 子未
	pair(1, 6):  true, // 丑午
	pair(2, 5):  true, // 寅巳
	pair(3, 4):  true, // 卯辰
	pair(8, 11): true, // 申亥
	pair(9, 10): true, // 酉戌
}

// The four trinities (三合) — shared elemental frames.
var trinities = [4][3]int{
	{8, 0, 4},  // 申子辰 water frame
	{2, 6, 10}, // 寅午戌 fire frame
	{5, 9, 1},  // 巳酉丑 metal frame
	{11, 3, 7}, // 亥卯未 wood frame
}

func sameTrinity(a, b int) bool {
	for _, t := range trinities {
		inA, inB := false, false
		for _, m := range t {
			if m == a {
				inA = true
			}
			if m == b {
				inB = true
			}
		}
		if inA && inB {
			return true
		}
	}
	return false
}

// palaceScore scores the day-branch relationship between two charts.
func palaceScore(a, b int) int {
	p := pair(a, b)
	switch {
	case a == b:
		return 20
	case combinations[p]:
		return 25
	case clashes[p]:
		return 5
	case harms[p]:
		return 10
	case sameTrinity(a, b):
		return 22
	default:
		return 15
	}
}
