package render

import (
	"image"
	"reflect"
	"testing"

	"github.com/r-owen/toika-loom-client/internal/pattern"
	"github.com/r-owen/toika-loom-client/internal/testutil"
)

func loadPattern(t *testing.T, ends, picks, current int) *pattern.Pattern {
	t.Helper()
	msg := testutil.PatternMessage("twill.wif", ends, picks)
	msg.PickNumber = current
	p, err := pattern.FromMessage(msg)
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}
	return p
}

func jumpTo(pick int) pattern.JumpTarget {
	return pattern.JumpTarget{PickNumber: &pick}
}

func TestBlockSizeIsOddAndBounded(t *testing.T) {
	for _, w := range []int{1, 50, 200, 640, 5000} {
		for _, h := range []int{1, 99, 300, 4000} {
			for _, ends := range []int{1, 4, 30, 500} {
				for _, picks := range []int{1, 7, 64, 900} {
					b := BlockSize(w, h, ends, picks)
					if b%2 == 0 || b < MinBlockSize || b > MaxBlockSize {
						t.Fatalf("BlockSize(%d,%d,%d,%d)=%d out of bounds", w, h, ends, picks, b)
					}
				}
			}
		}
	}
	if got := BlockSize(400, 300, 10, 10); got != 29 {
		t.Fatalf("expected 29, got %d", got)
	}
}

func TestLayoutCentersCurrentPick(t *testing.T) {
	p := loadPattern(t, 8, 40, 20)
	l := ComputeLayout(200, 99, p, pattern.JumpTarget{})
	if l.BlockSize != 11 || l.PicksShown != 9 || l.EndsShown != 8 {
		t.Fatalf("unexpected layout %+v", l)
	}
	if l.StartPick != 16 || l.YOffset != 0 {
		t.Fatalf("expected start 16 offset 0, got %d/%d", l.StartPick, l.YOffset)
	}
	if off, ok := l.Offset(20); !ok || off != (l.PicksShown-1)/2 {
		t.Fatalf("expected current pick in middle row, got %d (%v)", off, ok)
	}
}

func TestLayoutForcesOddRowCount(t *testing.T) {
	p := loadPattern(t, 4, 6, 1)
	l := ComputeLayout(100, 200, p, pattern.JumpTarget{})
	if l.PicksShown != 7 {
		t.Fatalf("expected 7 rows for 6 picks, got %d", l.PicksShown)
	}
	if l.YOffset != floorDiv(200-l.BlockSize*7, 2) {
		t.Fatalf("unexpected y offset %d", l.YOffset)
	}
}

func TestDrawDrawsCurrentRowOutline(t *testing.T) {
	p := loadPattern(t, 8, 40, 20)
	rec := NewRecorder(200, 99)
	NewEngine().Draw(rec, p, pattern.JumpTarget{})
	strokes := rec.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("expected one outline, got %d", len(strokes))
	}
	want := image.Rect(0, 44, 200, 55)
	if strokes[0].Rect != want || len(strokes[0].Dash) != 0 {
		t.Fatalf("expected solid %v, got %v dash %v", want, strokes[0].Rect, strokes[0].Dash)
	}
}

func TestDrawFadesUnwovenRows(t *testing.T) {
	p := loadPattern(t, 8, 40, 20)
	rec := NewRecorder(200, 99)
	NewEngine().Draw(rec, p, pattern.JumpTarget{})
	fills, alphas := rec.Fills()
	if len(fills) != 9*8 {
		t.Fatalf("expected 72 fills, got %d", len(fills))
	}
	full, faded := countAlphas(alphas)
	if full != 5*8 || faded != 4*8 {
		t.Fatalf("expected 40 full and 32 faded, got %d/%d", full, faded)
	}
}

func TestDrawFadeBoundaryMovesWithJump(t *testing.T) {
	p := loadPattern(t, 8, 40, 10)
	rec := NewRecorder(200, 99)
	NewEngine().Draw(rec, p, jumpTo(20))
	_, alphas := rec.Fills()
	full, faded := countAlphas(alphas)
	if full != 4*8 || faded != 5*8 {
		t.Fatalf("expected 32 full and 40 faded, got %d/%d", full, faded)
	}
	strokes := rec.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("expected only the jump outline when current is off screen, got %d", len(strokes))
	}
	if !reflect.DeepEqual(strokes[0].Dash, JumpDash) {
		t.Fatalf("expected dashed jump outline, got %v", strokes[0].Dash)
	}
}

func TestDrawOutlinesJumpAndVisibleCurrent(t *testing.T) {
	p := loadPattern(t, 8, 40, 10)
	rec := NewRecorder(200, 99)
	NewEngine().Draw(rec, p, jumpTo(12))
	strokes := rec.Strokes()
	if len(strokes) != 2 {
		t.Fatalf("expected two outlines, got %d", len(strokes))
	}
	if strokes[0].Rect != image.Rect(0, 44, 200, 55) || len(strokes[0].Dash) == 0 {
		t.Fatalf("unexpected jump outline %+v", strokes[0])
	}
	if strokes[1].Rect != image.Rect(0, 66, 200, 77) || len(strokes[1].Dash) != 0 {
		t.Fatalf("unexpected current outline %+v", strokes[1])
	}
}

func TestDrawPickZeroFadesEverything(t *testing.T) {
	p := loadPattern(t, 8, 40, 0)
	rec := NewRecorder(200, 99)
	NewEngine().Draw(rec, p, pattern.JumpTarget{})
	_, alphas := rec.Fills()
	full, faded := countAlphas(alphas)
	if full != 0 || faded == 0 {
		t.Fatalf("expected all rows faded, got %d/%d", full, faded)
	}
}

func TestDrawCellGeometry(t *testing.T) {
	p := loadPattern(t, 8, 40, 20)
	rec := NewRecorder(200, 99)
	NewEngine().Draw(rec, p, pattern.JumpTarget{})
	fills, _ := rec.Fills()
	for _, f := range fills {
		dx, dy := f.Rect.Dx(), f.Rect.Dy()
		switch f.Gradient.Axis {
		case Horizontal:
			if dx != 11-2*ThreadDisplayGap || dy != 11 {
				t.Fatalf("unexpected warp cell %v", f.Rect)
			}
		case Vertical:
			if dx != 11 || dy != 11-2*ThreadDisplayGap {
				t.Fatalf("unexpected weft cell %v", f.Rect)
			}
		}
		if f.Rect.Max.X > 200 || f.Rect.Min.X < 200-8*11 {
			t.Fatalf("cell %v outside the rightmost columns", f.Rect)
		}
	}
}

func TestDrawIsIdempotent(t *testing.T) {
	p := loadPattern(t, 12, 30, 7)
	e := NewEngine()
	first := NewRecorder(160, 120)
	e.Draw(first, p, jumpTo(9))
	second := NewRecorder(160, 120)
	e.Draw(second, p, jumpTo(9))
	if !reflect.DeepEqual(first.Ops, second.Ops) {
		t.Fatalf("expected identical draws")
	}

	c := NewCanvas(160, 120)
	e.Draw(c, p, jumpTo(9))
	snapshot := append(c.pix[:0:0], c.pix...)
	e.Draw(c, p, jumpTo(9))
	if !reflect.DeepEqual(snapshot, c.pix) {
		t.Fatalf("expected identical canvas after redraw")
	}
}

func TestDrawEmptyPatternOnlyClears(t *testing.T) {
	rec := NewRecorder(100, 100)
	e := NewEngine()
	e.Draw(rec, nil, pattern.JumpTarget{})
	empty := loadPattern(t, 0, 0, 0)
	e.Draw(rec, empty, pattern.JumpTarget{})
	for _, op := range rec.Ops {
		if op.Kind == OpFill || op.Kind == OpStroke {
			t.Fatalf("expected no drawing, got %+v", op)
		}
	}
}

func TestCacheResetsOnPatternReplacement(t *testing.T) {
	a := loadPattern(t, 8, 20, 3)
	e := NewEngine()
	e.Draw(NewRecorder(200, 99), a, pattern.JumpTarget{})
	if !e.cache.built() || e.cache.key.pattern != a.ID() {
		t.Fatalf("expected cache built for first pattern")
	}
	moved, _ := a.WithPosition(4, 1)
	before := e.cache.warps
	e.Draw(NewRecorder(200, 99), moved, pattern.JumpTarget{})
	if &before[0] != &e.cache.warps[0] {
		t.Fatalf("expected cache reused across pick changes")
	}

	e.Invalidate()
	if e.cache.built() {
		t.Fatalf("expected cache cleared")
	}
	msg := testutil.PatternMessage("other.wif", 8, 20)
	msg.WarpColors[0] = 0
	b, err := pattern.FromMessage(msg)
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}
	e.Draw(NewRecorder(200, 99), b, pattern.JumpTarget{})
	if e.cache.key.pattern != b.ID() {
		t.Fatalf("expected cache keyed to new pattern")
	}
	if got := e.cache.warps[0].Stops[1].Color; got != b.WarpColor(0) {
		t.Fatalf("expected warp gradient from new pattern, got %v", got.Hex())
	}
}

func TestCacheRebuildsOnResize(t *testing.T) {
	p := loadPattern(t, 8, 20, 3)
	e := NewEngine()
	e.Draw(NewRecorder(200, 99), p, pattern.JumpTarget{})
	e.Draw(NewRecorder(300, 99), p, pattern.JumpTarget{})
	if e.cache.key.width != 300 {
		t.Fatalf("expected cache rebuilt for new width, got %d", e.cache.key.width)
	}
	left := 300 - e.cache.key.blockSize
	if e.cache.warps[0].From != float64(left+ThreadDisplayGap) {
		t.Fatalf("expected gradient at new column position, got %v", e.cache.warps[0].From)
	}
}

func countAlphas(alphas []float64) (full, faded int) {
	for _, a := range alphas {
		switch a {
		case 1:
			full++
		case FadedAlpha:
			faded++
		}
	}
	return full, faded
}
