package utils

import (
	"bytes"
	"fmt"
	"log"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-gl/mathgl/mgl32"
)

var spewConfig *spew.ConfigState

func init() {
	spewConfig = spew.NewDefaultConfig()
	spewConfig.DisableCapacities = true
	spewConfig.DisablePointerAddresses = true
}

func Dump(a ...interface{}) {
	fmt.Println(spewConfig.Sdump(a...))
}

func SDump(a ...interface{}) string {
	return spewConfig.Sdump(a...)
}

func LogDump(a ...interface{}) {
	log.Println(spewConfig.Sdump(a...))
}

// FormatMat4 prints m row by row, the way it is written on paper.
func FormatMat4(m mgl32.Mat4) string {
	var out bytes.Buffer
	for row := 0; row < 4; row++ {
		r := m.Row(row)
		fmt.Fprintf(&out, "[%9.4f %9.4f %9.4f %9.4f]\n", r[0], r[1], r[2], r[3])
	}
	return out.String()
}
