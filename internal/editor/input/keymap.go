package input

// ============================================================
// Keyboard shortcuts
// ============================================================

type Command int

const (
	CmdMoveXNeg Command = iota
	CmdMoveXPos
	CmdMoveYNeg
	CmdMoveYPos
	CmdMoveZNeg
	CmdMoveZPos
	CmdRotateCCW
	CmdRotateCW
	CmdScaleUp
	CmdScaleDown
	CmdDelete
	CmdClearSelection
	CmdUndo
	CmdRedo
	CmdGroup
	CmdUngroup
)

func (c Command) String() string {
	switch c {
	case CmdMoveXNeg:
		return "move-x-neg"
	case CmdMoveXPos:
		return "move-x-pos"
	case CmdMoveYNeg:
		return "move-y-neg"
	case CmdMoveYPos:
		return "move-y-pos"
	case CmdMoveZNeg:
		return "move-z-neg"
	case CmdMoveZPos:
		return "move-z-pos"
	case CmdRotateCCW:
		return "rotate-ccw"
	case CmdRotateCW:
		return "rotate-cw"
	case CmdScaleUp:
		return "scale-up"
	case CmdScaleDown:
		return "scale-down"
	case CmdDelete:
		return "delete"
	case CmdClearSelection:
		return "clear-selection"
	case CmdUndo:
		return "undo"
	case CmdRedo:
		return "redo"
	case CmdGroup:
		return "group"
	case CmdUngroup:
		return "ungroup"
	}
	return "unknown"
}

// Chord клавиша плюс модификаторы, как их отдает браузер (KeyboardEvent.key).
type Chord struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Shift bool   `json:"shift"`
}

// Keymap точные биндинги — забота UI, таблица по умолчанию лишь
// отправная точка для фронта.
type Keymap struct {
	bindings map[Chord]Command
}

func DefaultKeymap() *Keymap {
	return &Keymap{bindings: map[Chord]Command{
		{Key: "ArrowLeft"}:                  CmdMoveXNeg,
		{Key: "ArrowRight"}:                 CmdMoveXPos,
		{Key: "ArrowUp"}:                    CmdMoveZNeg,
		{Key: "ArrowDown"}:                  CmdMoveZPos,
		{Key: "PageUp"}:                     CmdMoveYPos,
		{Key: "PageDown"}:                   CmdMoveYNeg,
		{Key: "q"}:                          CmdRotateCCW,
		{Key: "e"}:                          CmdRotateCW,
		{Key: "+"}:                          CmdScaleUp,
		{Key: "-"}:                          CmdScaleDown,
		{Key: "Delete"}:                     CmdDelete,
		{Key: "Escape"}:                     CmdClearSelection,
		{Key: "z", Ctrl: true}:              CmdUndo,
		{Key: "y", Ctrl: true}:              CmdRedo,
		{Key: "g", Ctrl: true}:              CmdGroup,
		{Key: "g", Ctrl: true, Shift: true}: CmdUngroup,
	}}
}

func (k *Keymap) Lookup(chord Chord) (Command, bool) {
	cmd, ok := k.bindings[chord]
	return cmd, ok
}

type Binding struct {
	Chord   Chord  `json:"chord"`
	Command string `json:"command"`
}

// Bindings плоский список для фронта.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for chord, cmd := range k.bindings {
		out = append(out, Binding{Chord: chord, Command: cmd.String()})
	}
	return out
}
