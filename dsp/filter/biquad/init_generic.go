//go:build (!amd64 && !arm64) || (amd64 && purego)

package biquad

import (
	_ "github.com/cwbudde/algo-distortion/dsp/filter/biquad/internal/arch/generic" // register generic backend
)
