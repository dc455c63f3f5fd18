//go:build !windows

package logx

func enableANSI(uintptr) bool { return true }
