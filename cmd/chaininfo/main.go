// Command chaininfo prints measured properties of the distortion chain for
// one parameter setting.
//
// Usage:
//
//	chaininfo [flags]
//
// It prints the parameter values, the THD of a sine at a range of drive
// settings, and the small-signal magnitude response at fixed frequencies.
//
// Examples:
//
//	chaininfo -cutoff 1kHz -resonance 0.8
//	chaininfo -profile ladder -tone 220 -window flattop
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-distortion/dsp/effectchain"
	"github.com/cwbudde/algo-distortion/dsp/param"
	"github.com/cwbudde/algo-distortion/dsp/window"
	"github.com/cwbudde/algo-distortion/internal/cliutil"
	"github.com/cwbudde/algo-distortion/measure/response"
	"github.com/cwbudde/algo-distortion/measure/thd"
)

var (
	driveSteps     = []float64{-0.9, -0.5, 0, 0.25, 0.5, 0.75, 0.9}
	responsePoints = []float64{50, 100, 200, 500, 1000, 2000, 5000, 10000, 15000, 20000}
)

type settings struct {
	sampleRate float64
	fftSize    int
	tone       float64
	level      float64
	window     window.Type
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("chaininfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	chain := cliutil.RegisterChainFlags(fs)
	rate := fs.Float64("rate", 48000, "sample rate in Hz")
	fftSize := fs.Int("fft", 8192, "analysis FFT size, a power of two")
	tone := fs.Float64("tone", 1000, "THD test tone in Hz")
	level := fs.Float64("level", 0.5, "THD test tone peak level")
	win := fs.String("window", "blackman-harris", "THD analysis window: rect, hann, blackman-harris, flattop")

	if err := fs.Parse(args); err != nil {
		return err
	}

	wt, err := window.ParseType(*win)
	if err != nil {
		return err
	}

	logger := cliutil.NewLogger(stderr, chain.Verbose())

	snap, err := chain.Snapshot()
	if err != nil {
		return err
	}

	opts, err := chain.Options(logger)
	if err != nil {
		return err
	}

	proc, err := effectchain.New(append(opts, effectchain.WithMaxChannels(1))...)
	if err != nil {
		return err
	}

	if err := proc.Prepare(*rate, 512); err != nil {
		return err
	}

	s := settings{sampleRate: proc.SampleRate(), fftSize: *fftSize, tone: *tone, level: *level, window: wt}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Profile\t%s\n", proc.Profile().Name)
	fmt.Fprintf(tw, "Sample rate\t%.0f Hz\n", s.sampleRate)

	for _, d := range proc.Descriptors() {
		fmt.Fprintf(tw, "%s\t%s\n", d.Name, d.Format(snap.Get(d.ID)))
	}

	fmt.Fprintln(tw)

	if err := printTHD(tw, proc, snap, s); err != nil {
		return err
	}

	fmt.Fprintln(tw)

	if err := printResponse(tw, proc, snap, s); err != nil {
		return err
	}

	return tw.Flush()
}

func printTHD(w io.Writer, proc *effectchain.Processor, snap param.Snapshot, s settings) error {
	fmt.Fprintf(w, "Drive\tTHD [%%]\tTHD [dB]\tTHD+N [dB]\tOdd/Even\tH2 [dB]\tH3 [dB]\n")
	fmt.Fprintf(w, "-----\t-------\t--------\t----------\t--------\t-------\t-------\n")

	cfg := thd.ProcessorConfig{
		Config: thd.Config{
			SampleRate:      s.sampleRate,
			FFTSize:         s.fftSize,
			FundamentalFreq: s.tone,
			WindowType:      s.window,
		},
		Amplitude: s.level,
	}

	for _, drive := range driveSteps {
		proc.Reset()

		r, err := thd.MeasureProcessor(proc, snap.With(param.Drive, drive), cfg)
		if err != nil {
			return fmt.Errorf("thd at drive %.2f: %w", drive, err)
		}

		fmt.Fprintf(w, "%+.2f\t%.3f\t%.1f\t%.1f\t%s\t%s\t%s\n",
			drive,
			100*r.THD,
			r.THD_dB,
			r.THDN_dB,
			oddEven(r),
			harmonicDB(r, 2),
			harmonicDB(r, 3),
		)
	}

	return nil
}

func printResponse(w io.Writer, proc *effectchain.Processor, snap param.Snapshot, s settings) error {
	proc.Reset()

	r, err := response.MeasureProcessor(proc, snap.With(param.Drive, 0), s.sampleRate, s.fftSize)
	if err != nil {
		return fmt.Errorf("response: %w", err)
	}

	fmt.Fprintf(w, "Frequency [Hz]\tMagnitude [dB]\n")
	fmt.Fprintf(w, "--------------\t--------------\n")

	for _, f := range responsePoints {
		if f >= s.sampleRate/2 {
			continue
		}

		fmt.Fprintf(w, "%.0f\t%.2f\n", f, r.At(f))
	}

	pf, pdb := r.Peak()
	fmt.Fprintf(w, "Peak\t%.2f dB at %.0f Hz\n", pdb, pf)

	if fc, ok := r.CutoffFrequency(3); ok {
		fmt.Fprintf(w, "-3 dB\t%.0f Hz\n", fc)
	}

	return nil
}

func oddEven(r thd.Result) string {
	if r.EvenHD == 0 {
		return "-"
	}

	return fmt.Sprintf("%.1f", r.OddHD/r.EvenHD)
}

func harmonicDB(r thd.Result, order int) string {
	i := order - 2
	if i < 0 || i >= len(r.Harmonics) || r.Harmonics[i] <= 0 {
		return "-"
	}

	return fmt.Sprintf("%.1f", 20*math.Log10(r.Harmonics[i]))
}
