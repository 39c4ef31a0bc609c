package core

// Action is a player intent, independent of the key or button behind it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionJump           // Flap; also starts and retries a run
	ActionRestart        // Back to ready after a crash
	ActionBack           // Back to the character select screen
	ActionPause          // Toggle pause while running
	ActionChooseA        // Pick the first character
	ActionChooseB        // Pick the second character
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionJump:    "Jump",
	ActionRestart: "Restart",
	ActionBack:    "Back",
	ActionPause:   "Pause",
	ActionChooseA: "ChooseA",
	ActionChooseB: "ChooseB",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame is the set of actions collected between two ticks.
// The zero value is empty and ready to use; frames are plain values.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// InputOf returns a frame holding the given actions.
func InputOf(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set adds a to the frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a != ActionNone {
		f.bits |= 1 << a
	}
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a != ActionNone && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Clone returns a copy of the frame.
func (f InputFrame) Clone() InputFrame {
	return f
}
