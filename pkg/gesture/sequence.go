package gesture

// Action names the pointer primitive a step performs. The vocabulary
// belongs to the executing device; "tap" is the only action this tool
// currently builds.
type Action string

// ActionTap is the default pointer action.
const ActionTap Action = "tap"

// StepKind discriminates sequence steps.
type StepKind int

// Step kinds.
const (
	StepDelay StepKind = iota
	StepPointer
)

// Step is one entry of a gesture sequence: either a delay of Seconds, or a
// pointer action at Point.
type Step struct {
	Kind    StepKind
	Seconds float64
	Point   Point
	Action  Action
}

// Sequence is an ordered, non-empty list of gesture steps.
type Sequence struct {
	Steps []Step
}

// Atomic reports whether the sequence is a single pointer action with no
// delays. An atomic sequence may be submitted to the device as one
// primitive instead of a multi-step dispatch; a composite sequence must be
// executed step by step in strict order.
func (s Sequence) Atomic() bool {
	return len(s.Steps) == 1 && s.Steps[0].Kind == StepPointer
}

// Build assembles the gesture for one tap command: an optional leading
// delay, exactly one pointer action, and an optional trailing delay. A nil
// or zero delay contributes no step. Delay values are trusted to be in
// [0, 10]; the CLI boundary rejects anything else before this point.
func Build(p Point, preDelay, postDelay *float64, action Action) Sequence {
	var steps []Step
	if preDelay != nil && *preDelay > 0 {
		steps = append(steps, Step{Kind: StepDelay, Seconds: *preDelay})
	}
	steps = append(steps, Step{Kind: StepPointer, Point: p, Action: action})
	if postDelay != nil && *postDelay > 0 {
		steps = append(steps, Step{Kind: StepDelay, Seconds: *postDelay})
	}
	return Sequence{Steps: steps}
}
