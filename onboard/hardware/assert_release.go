//go:build !debug

package hardware

// Domain checks only run in builds tagged debug.

func assertSpeed(uint8) {}

func assertMotion(Motion) {}

func assertColor(Color) {}
