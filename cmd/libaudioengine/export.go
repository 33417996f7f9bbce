//go:build cgo

package main

import "C"

//export audio_engine_init
func audio_engine_init() C.int {
	if err := start(openDevice); err != nil {
		logger.Error("audio engine init failed", "error", err)
		return -1
	}

	return 0
}
