package genetics

import "fmt"

// DrawKind identifies which Selector method a scripted draw answers.
type DrawKind int

const (
	DrawWeighted DrawKind = iota
	DrawChoose
	DrawRange
	DrawTerminate
	DrawPrimary
	DrawRestOfPrimary
	DrawRestOfSecondary
)

func (k DrawKind) String() string {
	switch k {
	case DrawWeighted:
		return "Weighted"
	case DrawChoose:
		return "Choose"
	case DrawRange:
		return "Range"
	case DrawTerminate:
		return "Terminate"
	case DrawPrimary:
		return "PickPrimary"
	case DrawRestOfPrimary:
		return "UseRestOfPrimary"
	case DrawRestOfSecondary:
		return "UseRestOfSecondary"
	}
	return fmt.Sprintf("DrawKind(%d)", int(k))
}

// Draw is one scripted answer.
type Draw struct {
	Kind DrawKind
	Int  int
	Bool bool
}

func Weighted(i int) Draw { return Draw{Kind: DrawWeighted, Int: i} }
func Choose(i int) Draw { return Draw{Kind: DrawChoose, Int: i} }
func Range(i int) Draw { return Draw{Kind: DrawRange, Int: i} }
func Terminate(b bool) Draw { return Draw{Kind: DrawTerminate, Bool: b} }
func Primary(b bool) Draw { return Draw{Kind: DrawPrimary, Bool: b} }
func RestOfPrimary(b bool) Draw { return Draw{Kind: DrawRestOfPrimary, Bool: b} }
func RestOfSecondary(b bool) Draw { return Draw{Kind: DrawRestOfSecondary, Bool: b} }

// ScriptedSelector replays a fixed sequence of answers. A draw of the wrong
// kind, an out-of-range answer, or running past the end records an error
// and answers with a zero value.
type ScriptedSelector struct {
	draws []Draw
	next  int
	err   error
}

// Script returns a selector that answers with draws in order.
func Script(draws ...Draw) *ScriptedSelector {
	return &ScriptedSelector{draws: draws}
}

// Err returns the first scripting error, if any.
func (s *ScriptedSelector) Err() error { return s.err }

// Remaining reports how many scripted draws have not been consumed.
func (s *ScriptedSelector) Remaining() int { return len(s.draws) - s.next }

func (s *ScriptedSelector) take(kind DrawKind) (Draw, bool) {
	if s.err != nil {
		return Draw{}, false
	}
	if s.next >= len(s.draws) {
		s.err = fmt.Errorf("draw %d: script exhausted, engine asked for %s", s.next, kind)
		return Draw{}, false
	}
	d := s.draws[s.next]
	if d.Kind != kind {
		s.err = fmt.Errorf("draw %d: engine asked for %s, script has %s", s.next, kind, d.Kind)
		return Draw{}, false
	}
	s.next++
	return d, true
}

func (s *ScriptedSelector) bounded(kind DrawKind, lo, hi int) int {
	d, ok := s.take(kind)
	if !ok {
		return lo
	}
	if d.Int < lo || d.Int > hi {
		s.err = fmt.Errorf("draw %d: %s answer %d outside [%d, %d]", s.next-1, kind, d.Int, lo, hi)
		return lo
	}
	return d.Int
}

func (s *ScriptedSelector) Weighted(weights []float64) int {
	return s.bounded(DrawWeighted, 0, len(weights)-1)
}

func (s *ScriptedSelector) Choose(n int) int { return s.bounded(DrawChoose, 0, n-1) }

func (s *ScriptedSelector) Range(lo, hi int) int { return s.bounded(DrawRange, lo, hi) }

func (s *ScriptedSelector) flag(kind DrawKind) bool {
	d, _ := s.take(kind)
	return d.Bool
}

func (s *ScriptedSelector) Terminate(int, float64) bool { return s.flag(DrawTerminate) }
func (s *ScriptedSelector) PickPrimary(float64) bool { return s.flag(DrawPrimary) }
func (s *ScriptedSelector) UseRestOfPrimary(float64) bool { return s.flag(DrawRestOfPrimary) }
func (s *ScriptedSelector) UseRestOfSecondary(float64) bool { return s.flag(DrawRestOfSecondary) }
