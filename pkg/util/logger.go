package util

import "log"

// Leveled log helpers over the standard logger. They take printf-style
// arguments so call sites can carry ids and counts without building the
// message up front.

func LogError(format string, args ...interface{}) {
	log.Printf("ERROR: "+format, args...)
}

func LogWarning(format string, args ...interface{}) {
	log.Printf("WARNING: "+format, args...)
}

func LogInfo(format string, args ...interface{}) {
	log.Printf("INFO: "+format, args...)
}
