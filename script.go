package tabula

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Script actions.
const (
	ActionClick      = "click"
	ActionDrag       = "drag"
	ActionWait       = "wait"
	ActionScreenshot = "screenshot"
	ActionLock       = "lock"
	ActionUnlock     = "unlock"
)

// ScriptStep is a single scripted action. Coordinates are in screen space.
type ScriptStep struct {
	Action string  `toml:"action"`
	Label  string  `toml:"label,omitempty"`
	X      float64 `toml:"x,omitempty"`
	Y      float64 `toml:"y,omitempty"`
	FromX  float64 `toml:"from_x,omitempty"`
	FromY  float64 `toml:"from_y,omitempty"`
	ToX    float64 `toml:"to_x,omitempty"`
	ToY    float64 `toml:"to_y,omitempty"`
	Frames int     `toml:"frames,omitempty"`
}

type scriptFile struct {
	Steps []ScriptStep `toml:"step"`
}

// Script sequences injected input, locking and screenshots across frames.
// Attach it with Scene.SetScript; it advances on every Update or Tick.
//
//	[[step]]
//	action = "drag"
//	from_x = 40
//	from_y = 200
//	to_x = 60
//	to_y = 40
//	frames = 12
type Script struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript reads a TOML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a TOML script. Unknown keys and actions are errors.
func ParseScript(data []byte) (*Script, error) {
	var f scriptFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("%w: unknown script keys %v", ErrPrecondition, keys)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("%w: script has no steps", ErrPrecondition)
	}
	for i, st := range f.Steps {
		switch st.Action {
		case ActionClick, ActionDrag, ActionWait, ActionScreenshot, ActionLock, ActionUnlock:
		default:
			return nil, fmt.Errorf("%w: step %d: unknown action %q", ErrPrecondition, i+1, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches a script to the scene, replacing any previous one.
func (s *Scene) SetScript(script *Script) {
	s.script = script
}

// Done reports whether every step has run and its input has drained.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame.
func (r *Script) step(s *Scene) {
	if r.done {
		return
	}
	// injected input drains before the next step
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	s.logger.Debug("script step", "n", r.cursor, "action", st.Action)

	switch st.Action {
	case ActionScreenshot:
		s.Screenshot(st.Label)
	case ActionClick:
		s.InjectClick(st.X, st.Y)
	case ActionDrag:
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case ActionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case ActionLock:
		s.Lock()
	case ActionUnlock:
		s.Unlock()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
