package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Pointer is the pointer position on the root window and the primary button state.
type Pointer struct {
	X       int
	Y       int
	Pressed bool
}

// QueryPointer reads the current pointer position and button-1 state.
func (c *Connection) QueryPointer() (Pointer, error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return Pointer{}, fmt.Errorf("query pointer: %w", err)
	}
	return pointerFromMask(int(reply.RootX), int(reply.RootY), reply.Mask), nil
}

func pointerFromMask(x, y int, mask uint16) Pointer {
	return Pointer{
		X:       x,
		Y:       y,
		Pressed: mask&xproto.KeyButMaskButton1 != 0,
	}
}
