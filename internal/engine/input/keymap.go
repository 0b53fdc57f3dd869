package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-skel/pkg/anim"
)

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionSetMode
	ActionTogglePause
	ActionToggleDebug
	ActionCrossFade
	ActionSnapshot
	ActionFrame
)

// Binding is the action for a key. Mode is set for ActionSetMode.
type Binding struct {
	Action Action
	Mode   anim.Mode
}

var modeKeys = map[sdl.Scancode]anim.Mode{
	sdl.SCANCODE_1: anim.ModeBindPose,
	sdl.SCANCODE_2: anim.ModeInverseBindPose,
	sdl.SCANCODE_3: anim.ModePalette,
	sdl.SCANCODE_4: anim.ModeInterpolated,
	sdl.SCANCODE_5: anim.ModeCrossFade,
}

var actionKeys = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE: ActionQuit,
	sdl.SCANCODE_SPACE:  ActionTogglePause,
	sdl.SCANCODE_D:      ActionToggleDebug,
	sdl.SCANCODE_C:      ActionCrossFade,
	sdl.SCANCODE_F12:    ActionSnapshot,
	sdl.SCANCODE_F:      ActionFrame,
}

// Bind returns the viewer binding for a key.
func Bind(key sdl.Scancode) Binding {
	if m, ok := modeKeys[key]; ok {
		return Binding{Action: ActionSetMode, Mode: m}
	}
	return Binding{Action: actionKeys[key]}
}

// Bindings returns the actions of the key presses of the last Update.
// Auto-repeated presses are skipped.
func (i *Input) Bindings() []Binding {
	var out []Binding
	for _, e := range i.events {
		if e.Type != EventKeyDown || e.Repeat {
			continue
		}
		if b := Bind(e.Key); b.Action != ActionNone {
			out = append(out, b)
		}
	}
	return out
}
