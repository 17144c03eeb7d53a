// Command distort-live plays a test tone through the distortion chain on
// the default audio device.
//
// Usage:
//
//	distort-live [flags]
//
// Examples:
//
//	distort-live -drive 0.7 -resonance 0.6 -sweep 4s
//	distort-live -profile ladder -tone 55 -duration 20s
//
// With -sweep the main goroutine moves the cutoff through the parameter
// store while the device goroutine renders audio.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cwbudde/algo-distortion/dsp/core"
	"github.com/cwbudde/algo-distortion/dsp/effectchain"
	"github.com/cwbudde/algo-distortion/dsp/param"
	"github.com/cwbudde/algo-distortion/internal/cliutil"
	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
)

const sweepTick = 10 * time.Millisecond

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("distort-live", flag.ContinueOnError)
	fs.SetOutput(stderr)

	chain := cliutil.RegisterChainFlags(fs)
	rate := fs.Int("rate", 48000, "output sample rate in Hz")
	block := fs.Int("block", 256, "processing block size in frames")
	tone := fs.Float64("tone", 110, "test tone frequency in Hz")
	level := fs.Float64("level", 0.5, "test tone peak level")
	duration := fs.Duration("duration", 10*time.Second, "playback length")
	sweep := fs.Duration("sweep", 0, "cutoff sweep period, 0 disables")

	if err := fs.Parse(args); err != nil {
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

	proc, err := effectchain.New(opts...)
	if err != nil {
		return err
	}

	if err := proc.PrepareWith(core.WithSampleRate(float64(*rate)), core.WithBlockSize(*block)); err != nil {
		return err
	}

	store := param.NewStore()
	store.Load(snap)

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *rate,
		ChannelCount: proc.MaxChannels(),
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(newChainReader(proc, store, *tone, *level))
	defer player.Close()

	player.Play()

	logger.WithFields(logrus.Fields{
		"profile":  proc.Profile().Name,
		"tone_hz":  *tone,
		"duration": duration.String(),
		"sweep":    sweep.String(),
	}).Info("playing")

	return drive(store, *duration, *sweep, logger)
}

// drive sweeps the cutoff until the playback time is over.
func drive(store *param.Store, duration, sweep time.Duration, logger logrus.FieldLogger) error {
	if sweep <= 0 {
		time.Sleep(duration)
		return nil
	}

	ticker := time.NewTicker(sweepTick)
	defer ticker.Stop()

	start := time.Now()
	for now := range ticker.C {
		elapsed := now.Sub(start)
		if elapsed >= duration {
			return nil
		}

		if err := store.SetNormalized(param.Cutoff, sweepPosition(elapsed.Seconds(), sweep.Seconds())); err != nil {
			return err
		}

		logger.WithField("cutoff_hz", store.Get(param.Cutoff)).Debug("sweep")
	}

	return nil
}
