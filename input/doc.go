// Package input reads raw Linux evdev input devices.
//
// A Poller opens a fixed set of device nodes, logs what each device can
// report, and on every Poll drains the devices that have pending events
// without blocking. Events reach a Handler as (type, code, value) triples in
// the order the kernel queued them; there is no ordering across devices.
//
// TouchDecoder turns the raw multitouch protocol into per-slot touch
// phases and key presses.
//
// Devices and pollers are meant for a single goroutine.
package input
