//go:build !linux && !(rp2040 || rp2350)

package platform

import (
	"io"
	"os"

	"envsense-go/errcode"
)

// Open has no bus to offer on this target.
func Open(BusConfig) (*Bus, error) { return nil, errcode.Unsupported }

func Console() io.Writer { return os.Stdout }
