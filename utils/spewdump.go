package utils

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// FrameDumpLimit caps how many bytes of each frame FramesString prints.
const FrameDumpLimit = 256

var spewConfig = &spew.ConfigState{
	Indent:                  " ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	DisableMethods:          true,
	SortKeys:                true,
	MaxDepth:                5,
}

// FramesString renders multipart frames on one line for trace logs:
// printable ASCII as is, other bytes as \xNN, frames separated by " | ".
func FramesString(frames [][]byte) string {
	var out strings.Builder
	for i, frame := range frames {
		if i != 0 {
			out.WriteString(" | ")
		}
		data := frame
		if len(data) > FrameDumpLimit {
			data = data[:FrameDumpLimit]
		}
		for _, b := range data {
			if b >= 0x20 && b < 0x7f {
				out.WriteByte(b)
			} else {
				fmt.Fprintf(&out, "\\x%.2x", b)
			}
		}
		if len(frame) > len(data) {
			fmt.Fprintf(&out, "...(+%d bytes)", len(frame)-len(data))
		}
	}
	return out.String()
}

// SDump dumps commands and scene entities, unexported identifiers included.
func SDump(a ...interface{}) string {
	return spewConfig.Sdump(a...)
}
