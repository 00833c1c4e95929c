// Package engine turns a hot-swappable impulse response into a continuous
// audio stream.
//
// A feeder goroutine generates pump excitation in fixed-size blocks,
// convolves each block with the current impulse response (overlap-add, so
// block boundaries are seamless), and pushes the result into a bounded
// ring buffer. The device pulls from the ring on its own schedule; when the
// ring runs dry the consumer emits silence rather than blocking the device.
//
// Shared state follows a snapshot discipline: the impulse response and the
// pump parameters are replaced wholesale under a mutex and read by
// reference-copy, so a reader always sees a fully-old or fully-new value.
// The play/stop signal is a lock-free atomic observed at block granularity.
package engine
