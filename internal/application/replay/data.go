package replay

import "github.com/younwookim/locomotion/internal/application/system"

// Version is written into every recording
const Version = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F    int     `json:"f"`              // Frame number
	L    bool    `json:"l,omitempty"`    // Left
	R    bool    `json:"r,omitempty"`    // Right
	J    bool    `json:"j,omitempty"`    // Jump
	Pad  bool    `json:"pad,omitempty"`  // Gamepad connected
	Axis float64 `json:"axis,omitempty"` // Horizontal stick
	JP   bool    `json:"jp,omitempty"`   // Pad jump pressed
	JR   bool    `json:"jr,omitempty"`   // Pad jump released
	K    bool    `json:"k,omitempty"`    // Kill
}

// ReplayData contains all data needed to replay a sandbox session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	Framerate int          `json:"framerate"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// NewFrameInput captures one frame of input
func NewFrameInput(frame int, in system.InputState, kill bool) FrameInput {
	return FrameInput{
		F:    frame,
		L:    in.Keys.Left,
		R:    in.Keys.Right,
		J:    in.Keys.Jump,
		Pad:  in.HasGamepad,
		Axis: in.Axis,
		JP:   in.PadJumpPressed,
		JR:   in.PadJumpReleased,
		K:    kill,
	}
}

// Input converts the frame back into input state
func (f FrameInput) Input() system.InputState {
	return system.InputState{
		Keys:            system.Keys{Left: f.L, Right: f.R, Jump: f.J},
		HasGamepad:      f.Pad,
		Axis:            f.Axis,
		PadJumpPressed:  f.JP,
		PadJumpReleased: f.JR,
	}
}
