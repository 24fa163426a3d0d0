package tui

import "github.com/san-kum/castplay/internal/player"

type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionSeek
	ActionQuit
)

// Key is a decoded keypress.
type Key struct {
	Action Action
	Target player.Target
}

// Decode turns raw terminal input into keys. Arrow keys arrive as CSI
// sequences; anything unrecognized is dropped.
func Decode(buf []byte) []Key {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		switch {
		case b == 0x1b && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O'):
			switch buf[i+2] {
			case 'D':
				keys = append(keys, Key{Action: ActionSeek, Target: player.Back})
			case 'C':
				keys = append(keys, Key{Action: ActionSeek, Target: player.Forward})
			}
			i += 2
		case b == ' ':
			keys = append(keys, Key{Action: ActionToggle})
		case b == 'q' || b == 'Q' || b == 3:
			keys = append(keys, Key{Action: ActionQuit})
		case b == '[':
			keys = append(keys, Key{Action: ActionSeek, Target: player.BackFar})
		case b == ']':
			keys = append(keys, Key{Action: ActionSeek, Target: player.ForwardFar})
		case b >= '0' && b <= '9':
			keys = append(keys, Key{Action: ActionSeek, Target: player.Percent(float64(b-'0') * 10)})
		}
	}
	return keys
}
