// Package preview shows a software-platform session in a desktop window.
// Mouse input is delivered to the application as touch events and a few
// keys as evdev key codes, so an application written for the touch
// display can be tried on a workstation.
//
// Building the window needs cgo; without it Run returns an error.
package preview
