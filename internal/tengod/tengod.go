// Package tengod computes the Ten God relationship between two heavenly
// stems. The upstream chart calculation leaves this field empty for derived
// stems (luck cycles, annual transits), so callers derive it on demand from
// the two stem descriptors alone.
package tengod

import (
	"fmt"

	"github.com/liunara/fourpillars/internal/chart"
)

// TenGod is one of the ten categorical stem relationships.
type TenGod uint8

const (
	BiJian    TenGod = iota // Friend
	JieCai                  // Rob Wealth
	ShiShen                 // Eating God
	ShangGuan               // Hurting Officer
	ZhengCai                // Direct Wealth
	PianCai                 // Indirect Wealth
	ZhengGuan               // Direct Officer
	QiSha                   // Seven Killings
	ZhengYin                // Direct Resource
	PianYin                 // Indirect Resource
)

// Name returns the romanized name.
func (g TenGod) Name() string {
	switch g {
	case BiJian:
		return "Bi Jian"
	case JieCai:
		return "Jie Cai"
	case ShiShen:
		return "Shi Shen"
	case ShangGuan:
		return "Shang Guan"
	case ZhengCai:
		return "Zheng Cai"
	case PianCai:
		return "Pian Cai"
	case ZhengGuan:
		return "Zheng Guan"
	case QiSha:
		return "Qi Sha"
	case ZhengYin:
		return "Zheng Yin"
	case PianYin:
		return "Pian Yin"
	default:
		return "Unknown"
	}
}

// English returns the conventional English translation.
func (g TenGod) English() string {
	switch g {
	case BiJian:
		return "Friend"
	case JieCai:
		return "Rob Wealth"
	case ShiShen:
		return "Eating God"
	case ShangGuan:
		return "Hurting Officer"
	case ZhengCai:
		return "Direct Wealth"
	case PianCai:
		return "Indirect Wealth"
	case ZhengGuan:
		return "Direct Officer"
	case QiSha:
		return "Seven Killings"
	case ZhengYin:
		return "Direct Resource"
	case PianYin:
		return "Indirect Resource"
	default:
		return "Unknown"
	}
}

// Resolve returns the Ten God relationship of other relative to dayMaster.
// It is total for any two valid stems: equal elements resolve by polarity to
// a companion variant, and for distinct elements exactly one of the four
// directed cycle relations holds. A miss means the element tables themselves
// are corrupt, which is surfaced as an error rather than coerced to a default.
func Resolve(dayMaster, other chart.StemDescriptor) (TenGod, error) {
	dm, o := dayMaster.Element, other.Element
	if !dm.Valid() || !o.Valid() {
		return 0, fmt.Errorf("tengod: invalid stem elements %d, %d", dm, o)
	}
	samePolarity := dayMaster.Polarity == other.Polarity

	pick := func(same, different TenGod) TenGod {
		if samePolarity {
			return same
		}
		return different
	}

	switch {
	case dm == o:
		return pick(BiJian, JieCai), nil
	case o.Generates() == dm:
		return pick(PianYin, ZhengYin), nil
	case o.Controls() == dm:
		return pick(QiSha, ZhengGuan), nil
	case dm.Generates() == o:
		return pick(ShangGuan, ShiShen), nil
	case dm.Controls() == o:
		return pick(PianCai, ZhengCai), nil
	}
	return 0, fmt.Errorf("tengod: no cycle relation between %s and %s — element tables are inconsistent",
		dm.Name(), o.Name())
}
