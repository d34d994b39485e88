//go:build !(linux && cgo && !novideocore && (arm || arm64))

package videocore

import (
	"fmt"

	"github.com/weekit/weekit"
)

const supported = false

// New fails on builds without the VideoCore driver.
func New(weekit.PlatformConfig) (weekit.Platform, error) {
	return nil, fmt.Errorf("%w: videocore support not built in", weekit.ErrDisplayUnavailable)
}
