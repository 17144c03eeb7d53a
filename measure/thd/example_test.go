package thd_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-distortion/measure/thd"
)

func ExampleAnalyzeSignal() {
	sampleRate := 48000.0
	fftSize := 4096
	fundamental := 64 * sampleRate / float64(fftSize)

	signal := make([]float64, fftSize)
	for i := range signal {
		t := float64(i) / sampleRate
		signal[i] = math.Sin(2*math.Pi*fundamental*t) + 0.02*math.Sin(2*math.Pi*3*fundamental*t)
	}

	res, err := thd.AnalyzeSignal(signal, thd.Config{
		SampleRate:      sampleRate,
		FFTSize:         fftSize,
		FundamentalFreq: fundamental,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("THD: %.2f%% (%.1f dB)\n", res.THD*100, res.THD_dB)
	// Output:
	// THD: 2.00% (-34.0 dB)
}
