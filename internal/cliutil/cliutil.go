// Package cliutil holds the flag and logging plumbing shared by the commands.
package cliutil

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/algo-distortion/dsp/effectchain"
	"github.com/cwbudde/algo-distortion/dsp/param"
	"github.com/sirupsen/logrus"
)

// ChainFlags binds one string flag per parameter plus the profile and
// topology selectors. Parameter flags accept anything Descriptor.Parse
// accepts, e.g. "2.5kHz" or "-6dB".
type ChainFlags struct {
	values   [param.NumParams]*string
	profile  *string
	topology *string
	verbose  *bool
}

// RegisterChainFlags adds the chain flags to fs.
func RegisterChainFlags(fs *flag.FlagSet) *ChainFlags {
	f := &ChainFlags{}

	for _, d := range param.Descriptors() {
		name := strings.ToLower(d.Name)
		usage := fmt.Sprintf("%s [%g, %g]", d.Name, d.Range.Min, d.Range.Max)
		if d.Unit != "" {
			usage += " " + d.Unit
		}

		f.values[d.ID] = fs.String(name, d.Format(d.Default), usage)
	}

	names := make([]string, 0, 2)
	for _, p := range effectchain.Profiles() {
		names = append(names, p.Name)
	}

	f.profile = fs.String("profile", effectchain.ProfileCompensated.Name, "chain profile: "+strings.Join(names, ", "))
	f.topology = fs.String("filter", "", "override the profile filter: biquad, ladder")
	f.verbose = fs.Bool("v", false, "debug logging")

	return f
}

// Snapshot parses the parameter flags through a Store so values are
// snapped and clamped exactly as a host would see them.
func (f *ChainFlags) Snapshot() (param.Snapshot, error) {
	store := param.NewStore()

	for _, d := range param.Descriptors() {
		v, err := d.Parse(*f.values[d.ID])
		if err != nil {
			return param.Snapshot{}, err
		}

		if err := store.Set(d.ID, v); err != nil {
			return param.Snapshot{}, err
		}
	}

	return store.Snapshot(), nil
}

// Options returns the processor options selected by -profile and -filter.
func (f *ChainFlags) Options(logger logrus.FieldLogger) ([]effectchain.Option, error) {
	profile, err := effectchain.ProfileByName(*f.profile)
	if err != nil {
		return nil, err
	}

	opts := []effectchain.Option{effectchain.WithProfile(profile), effectchain.WithLogger(logger)}

	if *f.topology != "" {
		t, err := effectchain.ParseTopology(*f.topology)
		if err != nil {
			return nil, err
		}

		opts = append(opts, effectchain.WithTopology(t))
	}

	return opts, nil
}

// Verbose reports whether -v was given.
func (f *ChainFlags) Verbose() bool { return *f.verbose }

// NewLogger returns a text logger writing to w at info level, or debug
// level when verbose.
func NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	l.SetLevel(logrus.InfoLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}

	return l
}
