package domain

import (
	"context"
	"errors"
	"io"
)

var ErrPresetNotFound = errors.New("preset_not_found")

type Service interface {
	Estimate(ctx context.Context, params Params) Estimate
	Presets(ctx context.Context) []Preset
	PresetFor(ctx context.Context, name string) (Preset, error)
	Report(ctx context.Context, params Params) (io.Reader, error)
}
