package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-distortion/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d\n", cfg.SampleRate, cfg.BlockSize)

	// Output:
	// sampleRate=44100 blockSize=256
}

func ExampleDBToLinear() {
	fmt.Printf("%.4f %.4f\n", core.DBToLinear(-6), core.DBToLinear(6))

	// Output:
	// 0.5012 1.9953
}
