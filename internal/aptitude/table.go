// Package aptitude holds the fixed aptitude-test vocabulary: the descriptor
// table, the peak (location) labels and the lore used for card descriptions.
package aptitude

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels shown on a card before a test has committed a result.
const (
	Unmeasured          = "灵根未测"
	Unassigned          = "未分配"
	DefaultConstitution = "凡体"
)

// Pair is one row of the aptitude table.
type Pair struct {
	Descriptor   string `yaml:"descriptor" json:"descriptor"`
	Constitution string `yaml:"constitution" json:"constitution"`
}

var pairs = [...]Pair{
	{"天灵根 (火)", "纯阳之体"},
	{"变异灵根 (冰)", "纯阴之体"},
	{"真灵根 (金、木、水)", "凡体 (良)"},
	{"伪灵根 (水、火、土)", "凡体 (差)"},
	{"天灵根 (水)", "通玉凤髓之体"},
	{"真灵根 (木、土)", "凡体 (良)"},
	{"伪灵根 (金、木、水、火、土)", "凡体 (差)"},
	{"天灵根 (土)", "凡体 (优)"},
	{"隐灵根 (隐暗)", "先天道体"},
	{"真灵根 (水、木)", "凡体 (良)"},
	{"隐灵根 (隐雷)", "混沌之体"},
	{"真灵根 (火、土)", "凡体 (优)"},
	{"伪灵根 (金、木、水、火)", "凡体 (差)"},
	{"天灵根 (金)", "凡体 (优)"},
	{"变异灵根 (雷)", "龙吟之体"},
	{"变异灵根 (风)", "通玉凤髓之体"},
}

var peaks = [...]string{
	"逍遥峰", "血月峰", "紫薇峰", "太华峰", "落霞峰", "御剑峰", "凤曦峰", "血影峰", "青云峰",
}

// Pairs returns a copy of the aptitude table.
func Pairs() []Pair {
	out := make([]Pair, len(pairs))
	copy(out, pairs[:])
	return out
}

// Peaks returns a copy of the location labels.
func Peaks() []string {
	out := make([]string, len(peaks))
	copy(out, peaks[:])
	return out
}

// Validate checks the tables for internal consistency: every row is filled,
// every root label and non-default constitution has lore, and peaks are unique.
func Validate() error {
	var errs []error
	for i, p := range pairs {
		if p.Descriptor == "" || p.Constitution == "" {
			errs = append(errs, fmt.Errorf("row %d: empty field", i))
			continue
		}
		rootLabel := strings.Fields(p.Descriptor)[0]
		if _, ok := lore[rootLabel]; !ok {
			errs = append(errs, fmt.Errorf("row %d: no lore for root %q", i, rootLabel))
		}
		base := constitutionBase(p.Constitution)
		if base != DefaultConstitution {
			if _, ok := lore[base]; !ok {
				errs = append(errs, fmt.Errorf("row %d: no lore for constitution %q", i, base))
			}
		}
	}

	seen := make(map[string]bool, len(peaks))
	for _, p := range peaks {
		if seen[p] {
			errs = append(errs, fmt.Errorf("duplicate peak %q", p))
		}
		seen[p] = true
	}
	return errors.Join(errs...)
}

func constitutionBase(c string) string {
	if f := strings.Fields(c); len(f) > 0 {
		return f[0]
	}
	return ""
}
