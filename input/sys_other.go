//go:build !linux

package input

import "errors"

var errUnsupported = errors.New("input: evdev is only available on linux")

type sysQuerier struct{}

func (sysQuerier) Grab(uintptr) error                       { return errUnsupported }
func (sysQuerier) Name(uintptr) (string, error)             { return "", errUnsupported }
func (sysQuerier) Bits(uintptr, uint16, []byte) error       { return errUnsupported }
func (sysQuerier) AbsInfo(uintptr, uint16) (AbsInfo, error) { return AbsInfo{}, errUnsupported }

func ready(uintptr) (bool, error) { return false, errUnsupported }
