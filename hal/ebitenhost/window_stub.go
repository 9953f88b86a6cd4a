//go:build !cgo

package ebitenhost

import (
	"errors"

	"nxui/hal"
)

// Config controls the window.
type Config struct {
	Width  int
	Height int
	Scale  float64
	Title  string
	TPS    int
}

func Run(_ hal.NewAppFunc, _ Config) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
