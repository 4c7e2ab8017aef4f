//go:build debug

package hardware

import "fmt"

func assertSpeed(speed uint8) {
	if speed < MinSpeed {
		panic(fmt.Sprintf("speed %d below minimum %d", speed, MinSpeed))
	}
}

func assertMotion(m Motion) {
	if _, ok := MotionMap.ByMotion(m); !ok {
		panic(fmt.Sprintf("unknown motion %d", m))
	}
}

func assertColor(c Color) {
	if !c.valid() {
		panic(fmt.Sprintf("unknown color %d", c))
	}
}
