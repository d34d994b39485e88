//go:build !cgo

package preview

import (
	"context"
	"errors"

	"github.com/weekit/weekit"
)

// Run always fails: the desktop window needs cgo.
func Run(context.Context, *weekit.Session, weekit.Application, ...Option) error {
	return errors.New("preview: desktop window requires cgo (build with CGO_ENABLED=1)")
}
