// Package pattern holds the weaving pattern currently loaded on the loom
// server, as seen by the client.
//
// A Pattern is built only from a ReducedPattern reply and is never mutated
// afterwards; position updates produce a copy that shares the pick data.
package pattern

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/r-owen/toika-loom-client/internal/protocol"
)

// Unthreaded marks a warp end that passes through no shaft. Such an end is
// never raised, so its cells always show the weft.
const Unthreaded = -1

var (
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrPickOutOfRange    = errors.New("pick number out of range")
	errInvalidColorIndex = errors.New("color index out of range")

	lastID atomic.Uint64
)

// Pick is one weft row.
type Pick struct {
	Color       int
	AreShaftsUp []bool
}

// Pattern is an immutable snapshot of the loaded pattern and the loom's
// position within it. PickNumber is 1-based; 0 means nothing has been woven.
type Pattern struct {
	Name         string
	ColorTable   []colorful.Color
	WarpColors   []int
	Threading    []int
	Picks        []Pick
	PickNumber   int
	RepeatNumber int

	id uint64
}

// JumpTarget is the server-confirmed pending jump. A nil PickNumber means no
// jump is pending.
type JumpTarget struct {
	PickNumber   *int
	RepeatNumber *int
}

// Pending reports whether a jump is waiting for the next pick.
func (j JumpTarget) Pending() bool {
	return j.PickNumber != nil
}

// Clone returns a target that shares no pointers with j.
func (j JumpTarget) Clone() JumpTarget {
	var out JumpTarget
	if j.PickNumber != nil {
		v := *j.PickNumber
		out.PickNumber = &v
	}
	if j.RepeatNumber != nil {
		v := *j.RepeatNumber
		out.RepeatNumber = &v
	}
	return out
}

// FromMessage validates a ReducedPattern reply and converts it.
func FromMessage(msg protocol.ReducedPattern) (*Pattern, error) {
	colors := make([]colorful.Color, len(msg.ColorTable))
	for i, hex := range msg.ColorTable {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: color_table[%d] %q: %v", ErrInvalidPattern, i, hex, err)
		}
		colors[i] = c
	}
	if len(msg.WarpColors) != len(msg.Threading) {
		return nil, fmt.Errorf("%w: %d warp colors but %d threading entries",
			ErrInvalidPattern, len(msg.WarpColors), len(msg.Threading))
	}
	for end, idx := range msg.WarpColors {
		if idx < 0 || idx >= len(colors) {
			return nil, fmt.Errorf("%w: warp_colors[%d]: %w %d", ErrInvalidPattern, end, errInvalidColorIndex, idx)
		}
	}
	picks := make([]Pick, len(msg.Picks))
	for i, p := range msg.Picks {
		if p.Color < 0 || p.Color >= len(colors) {
			return nil, fmt.Errorf("%w: picks[%d]: %w %d", ErrInvalidPattern, i, errInvalidColorIndex, p.Color)
		}
		for end, shaft := range msg.Threading {
			if shaft < Unthreaded || shaft >= len(p.AreShaftsUp) {
				return nil, fmt.Errorf("%w: threading[%d]=%d exceeds %d shafts of pick %d",
					ErrInvalidPattern, end, shaft, len(p.AreShaftsUp), i+1)
			}
		}
		picks[i] = Pick{Color: p.Color, AreShaftsUp: append([]bool(nil), p.AreShaftsUp...)}
	}
	if msg.PickNumber < 0 || msg.PickNumber > len(picks) {
		return nil, fmt.Errorf("%w: %w: %d not in [0, %d]", ErrInvalidPattern, ErrPickOutOfRange, msg.PickNumber, len(picks))
	}
	return &Pattern{
		Name:         msg.Name,
		ColorTable:   colors,
		WarpColors:   append([]int(nil), msg.WarpColors...),
		Threading:    append([]int(nil), msg.Threading...),
		Picks:        picks,
		PickNumber:   msg.PickNumber,
		RepeatNumber: msg.RepeatNumber,
		id:           lastID.Add(1),
	}, nil
}

// ID identifies the pattern contents. Every decoded pattern gets a fresh ID;
// copies made by WithPosition keep it.
func (p *Pattern) ID() uint64 {
	return p.id
}

// WithPosition returns a copy positioned at pick and repeat. The copy shares
// the pick data with p.
func (p *Pattern) WithPosition(pick, repeat int) (*Pattern, error) {
	if pick < 0 || pick > len(p.Picks) {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrPickOutOfRange, pick, len(p.Picks))
	}
	next := *p
	next.PickNumber = pick
	next.RepeatNumber = repeat
	return &next, nil
}

// Ends is the number of warp threads.
func (p *Pattern) Ends() int {
	return len(p.WarpColors)
}

// NumPicks is the number of weft rows in one repeat.
func (p *Pattern) NumPicks() int {
	return len(p.Picks)
}

// Empty reports whether there is nothing to draw.
func (p *Pattern) Empty() bool {
	return p == nil || p.Ends() == 0 || p.NumPicks() == 0
}

// CenterPick returns the pick the display is centered on: the pending jump
// pick when there is one, otherwise the current pick.
func (p *Pattern) CenterPick(jump JumpTarget) int {
	if jump.Pending() {
		return *jump.PickNumber
	}
	return p.PickNumber
}

// PickAt looks up a pick by 1-based number.
func (p *Pattern) PickAt(number int) (Pick, bool) {
	if number < 1 || number > len(p.Picks) {
		return Pick{}, false
	}
	return p.Picks[number-1], true
}

// PickColor returns the weft colour of a 1-based pick.
func (p *Pattern) PickColor(number int) (colorful.Color, bool) {
	pick, ok := p.PickAt(number)
	if !ok {
		return colorful.Color{}, false
	}
	return p.ColorTable[pick.Color], true
}

// WarpColor returns the colour of a 0-based warp end.
func (p *Pattern) WarpColor(end int) colorful.Color {
	return p.ColorTable[p.WarpColors[end]]
}

// IsWarpUp reports whether end shows on top of the weft in pick.
func (p *Pattern) IsWarpUp(pick Pick, end int) bool {
	shaft := p.Threading[end]
	return shaft != Unthreaded && pick.AreShaftsUp[shaft]
}

// ShaftsRaised lists the 1-based shafts raised for a 1-based pick.
func (p *Pattern) ShaftsRaised(number int) []int {
	pick, ok := p.PickAt(number)
	if !ok {
		return nil
	}
	var raised []int
	for i, up := range pick.AreShaftsUp {
		if up {
			raised = append(raised, i+1)
		}
	}
	return raised
}
