// Package quality models discrete video resolution tiers and the heuristics used to infer them.
//
// Ordering is defined by Priority alone. Height is a separate reference value: auto and manual
// report an infinite height but a low priority, so sorting by height is not the same as sorting
// by quality.
package quality

import (
	"strings"

	"github.com/samber/mo"
)

// Quality is a resolution tier. Its string value is the serialized form.
type Quality string

const (
	P360    Quality = "360p"
	P480    Quality = "480p"
	P720    Quality = "720p"
	P1080   Quality = "1080p"
	K4      Quality = "4k"
	Auto    Quality = "auto"
	Unknown Quality = "unknown"
	Manual  Quality = "Manual"
)

// InfiniteHeight is the reference height of auto and manual.
const InfiniteHeight = 1_000_000_000

// fixed tiers, highest first, for FromHeight.
var fixed = []Quality{K4, P1080, P720, P480, P360}

// tokens is the precedence used by FromText and FromURL. The first entry contained in
// the input wins, regardless of where in the input it appears.
var tokens = []struct {
	token   string
	quality Quality
}{
	{"360", P360},
	{"480", P480},
	{"720", P720},
	{"1080", P1080},
	{"4K", K4},
	{"auto", Auto},
}

// All returns the tiers a user can pick from.
func All() []Quality {
	return []Quality{P360, P480, P720, P1080, K4, Manual}
}

// Priority is the rank used for ordering. Higher is better.
func (q Quality) Priority() int {
	switch q {
	case P360:
		return 2
	case P480:
		return 3
	case P720:
		return 4
	case P1080:
		return 5
	case K4:
		return 6
	case Auto:
		return 1
	default:
		return 0
	}
}

// Height is the reference pixel height of the tier.
func (q Quality) Height() int {
	switch q {
	case P360:
		return 360
	case P480:
		return 480
	case P720:
		return 720
	case P1080:
		return 1080
	case K4:
		return 2160
	case Auto, Manual:
		return InfiniteHeight
	default:
		return 0
	}
}

// Label is the display name of the tier.
func (q Quality) Label() string {
	switch q {
	case K4:
		return "Max"
	case Auto:
		return "Auto"
	case Unknown:
		return "Unknown"
	default:
		return string(q)
	}
}

func (q Quality) String() string {
	return string(q)
}

// Less reports whether q ranks below other.
func (q Quality) Less(other Quality) bool {
	return q.Priority() < other.Priority()
}

// Compare returns -1, 0 or +1 comparing a and b by priority, for use with slices.SortFunc.
func Compare(a, b Quality) int {
	switch pa, pb := a.Priority(), b.Priority(); {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	default:
		return 0
	}
}

// FromHeight returns the highest fixed tier whose height is at most px.
func FromHeight(px int) mo.Option[Quality] {
	for _, q := range fixed {
		if px >= q.Height() {
			return mo.Some(q)
		}
	}
	return mo.None[Quality]()
}

// FromText looks for a resolution token in s. Lossy: "480 of 1080" yields 480p.
func FromText(s string) mo.Option[Quality] {
	for _, t := range tokens {
		if strings.Contains(s, t.token) {
			return mo.Some(t.quality)
		}
	}
	return mo.None[Quality]()
}

// FromURL infers the tier from a stream URL, falling back to Unknown.
func FromURL(rawURL string) Quality {
	return FromText(rawURL).OrElse(Unknown)
}
