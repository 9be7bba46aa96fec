package tabula

import (
	"errors"
	"testing"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		steps   int
		wantErr error
	}{
		{
			name: "valid",
			input: `
[[step]]
action = "click"
x = 10
y = 20

[[step]]
action = "wait"
frames = 3
`,
			steps: 2,
		},
		{name: "empty", input: "", wantErr: ErrPrecondition},
		{name: "unknown action", input: "[[step]]\naction = \"dance\"", wantErr: ErrPrecondition},
		{name: "unknown key", input: "[[step]]\naction = \"click\"\nz = 1", wantErr: ErrPrecondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseScript([]byte(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(r.steps) != tt.steps {
				t.Errorf("steps = %d, want %d", len(r.steps), tt.steps)
			}
		})
	}
}

func TestScriptClick(t *testing.T) {
	btn := NewButton("btn", 0, 0, 50, 50, "Go", nil)
	s := newTestScene(t, btn)
	actions := 0
	btn.OnAction = func() { actions++ }

	r, err := ParseScript([]byte("[[step]]\naction = \"click\"\nx = 10\ny = 10\n"))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(r)

	// frame 1 queues the click and consumes the press, frame 2 the release
	tickN(s, 2, 0)
	if actions != 1 {
		t.Fatalf("actions = %d, want 1", actions)
	}
	s.Tick(0)
	if !r.Done() {
		t.Error("script should be done once its input drained")
	}
}

func TestScriptWaitAndLock(t *testing.T) {
	s := newTestScene(t)
	r, err := ParseScript([]byte(`
[[step]]
action = "wait"
frames = 3

[[step]]
action = "lock"
`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(r)

	tickN(s, 3, 0)
	if s.IsLocked() {
		t.Fatal("lock ran before the wait elapsed")
	}
	s.Tick(0)
	if !s.IsLocked() || !r.Done() {
		t.Errorf("locked %v, done %v after the wait", s.IsLocked(), r.Done())
	}
}

func TestScriptDrag(t *testing.T) {
	tok := NewToken("tok", 0, 0, 20, 20, nil)
	tok.Draggable = true
	dst := NewArea("dst", 100, 0, 50, 50, nil)
	dst.DropAcceptor = func(DragEvent) bool { return true }
	dst.OnDragDropped = func(ev DragEvent) { dst.Add(ev.Dragged) }
	s := newTestScene(t, tok, dst)

	r, err := ParseScript([]byte(`
[[step]]
action = "drag"
from_x = 10
from_y = 10
to_x = 120
to_y = 20
frames = 4
`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(r)
	tickN(s, 5, 0)
	if tok.Parent() != Component(dst) {
		t.Error("scripted drag did not drop the token")
	}
}

func TestScriptScreenshotQueues(t *testing.T) {
	s := newTestScene(t)
	r, err := ParseScript([]byte("[[step]]\naction = \"screenshot\"\nlabel = \"after deal\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(r)
	s.Tick(0)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "after deal" {
		t.Errorf("queue = %v", s.screenshotQueue)
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "unlabeled"},
		{"  ", "unlabeled"},
		{"after deal", "after_deal"},
		{"board-1.v2", "board-1.v2"},
		{"a/b\\c", "a_b_c"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{64, 32, 0, 128, 10, 20, 30, 255}, 2, 1)
	// 64 at half alpha is 127 straight
	if img.Pix[0] != 127 || img.Pix[1] != 63 || img.Pix[3] != 128 {
		t.Errorf("half-alpha pixel = %v", img.Pix[:4])
	}
	if img.Pix[4] != 10 || img.Pix[7] != 255 {
		t.Errorf("opaque pixel = %v", img.Pix[4:])
	}
}
