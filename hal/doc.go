// Package hal abstracts the eye tracking hardware.
//
// A Device produces gaze samples onto a bounded lock-free queue from
// its own goroutine. The engine drains the queue on its tick; when the
// consumer falls behind, samples are dropped at the producer rather
// than blocking the device.
//
// Only the simulated device ships today. It exists so the full command
// surface, recording included, works on a machine with no headset
// plugged in.
package hal
