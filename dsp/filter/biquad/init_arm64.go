//go:build arm64

package biquad

import (
	_ "github.com/cwbudde/algo-distortion/dsp/filter/biquad/internal/arch/generic" // register generic backend
)
