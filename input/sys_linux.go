//go:build linux

package input

import (
	"bytes"
	"unsafe"

	"golang.org/x/sys/unix"
)

// sysQuerier issues real evdev ioctls.
type sysQuerier struct{}

func ioctl(fd, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func (sysQuerier) Grab(fd uintptr) error {
	var one int32 = 1
	return ioctl(fd, eviocgrab(), unsafe.Pointer(&one))
}

func (sysQuerier) Name(fd uintptr) (string, error) {
	var name [256]byte
	if err := ioctl(fd, eviocgname(len(name)), unsafe.Pointer(&name[0])); err != nil {
		return "", err
	}
	if i := bytes.IndexByte(name[:], 0); i >= 0 {
		return string(name[:i]), nil
	}
	return string(name[:]), nil
}

func (sysQuerier) Bits(fd uintptr, ev uint16, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return ioctl(fd, eviocgbit(ev, len(buf)), unsafe.Pointer(&buf[0]))
}

func (sysQuerier) AbsInfo(fd uintptr, code uint16) (AbsInfo, error) {
	var info AbsInfo
	err := ioctl(fd, eviocgabs(code), unsafe.Pointer(&info))
	return info, err
}

// ready reports whether fd has data, without blocking.
func ready(fd uintptr) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		return n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0, nil
	}
}
