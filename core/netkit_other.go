//go:build !linux
// +build !linux

package core

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func DefaultNetkit(log logrus.FieldLogger) (Netkit, error) {
	return nil, errors.Errorf("network blocks are not supported on %s", runtime.GOOS)
}
