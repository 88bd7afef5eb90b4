// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.dvt) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/vorodd/comm"
	"github.com/cpmech/vorodd/dvt"
	"github.com/cpmech/vorodd/geo"
)

// Config holds the JSON-file options for a distributed tessellation
// run, playing the role inp.Data plays for a gofem simulation. The
// collaborators (serial tessellator, convex huller, communicator) are
// never part of this data: the file only names the serial tessellator
// and convex huller by registry key, and the implementations, like the
// communicator, are always injected in code.
type Config struct {

	// global information
	Desc           string `json:"desc"`           // description of the run
	GeneratorsFile string `json:"generatorsfile"` // file with this rank's own generator coordinates
	DirOut         string `json:"dirout"`         // directory for output
	Verbose        bool   `json:"verbose"`        // rank-tagged progress printing (rank 0 only)

	// collaborator selection: both are resolved through geo's registry
	// (geo.RegisterSerialTessellator/RegisterConvexHuller); the actual
	// implementations are never part of this module.
	Tessellator string `json:"tessellator"` // registered kernel name
	Huller      string `json:"huller"`      // registered convex-hull name; "" => geo.GiftWrapHuller{}

	// tessellation mode
	Mode string `json:"mode"` // "unbounded", "box" or "plc"

	// box mode
	Low  []float64 `json:"low"`  // box mode: lower corner
	High []float64 `json:"high"` // box mode: upper corner

	// plc mode
	PLCFile string `json:"plcfile"` // file with the PLC boundary definition

	// driver options
	AssumeControl          bool    `json:"assumecontrol"`
	BuildCommunicationInfo bool    `json:"buildcommunicationinfo"`
	Degeneracy              float64 `json:"degeneracy"`

	// derived
	FnameDir string // directory where the config file is located
	FnameKey string // config filename key; e.g. run01.dvt => run01
}

// SetDefault sets default values. BuildCommunicationInfo defaults to
// true for file-loaded configuration: a distributed run without
// ghost exchange is the unusual case, opted into explicitly in code
// via dvt.Options, not the default for a config file.
func (o *Config) SetDefault() {
	o.Mode = "unbounded"
	o.BuildCommunicationInfo = true
}

// PostProcess performs post-processing of the just-read JSON file.
func (o *Config) PostProcess(dir, fn string) error {
	o.FnameDir = os.ExpandEnv(dir)
	o.FnameKey = io.FnKey(fn)
	if o.DirOut == "" {
		o.DirOut = "/tmp/vorodd/" + o.FnameKey
	}
	switch o.Mode {
	case "unbounded", "box", "plc":
	default:
		return chk.Err("inp: unknown mode %q in config file", o.Mode)
	}
	if err := os.MkdirAll(o.DirOut, 0777); err != nil {
		return chk.Err("inp: cannot create output directory %s: %v", o.DirOut, err)
	}
	return nil
}

// ReadConfig reads run configuration from a JSON file and initialises
// the per-rank log file, mirroring inp.ReadSim's read/default/decode/
// post-process/log sequence.
func ReadConfig(dir, fn string) (*Config, error) {
	var o Config
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("inp: cannot read config file %s/%s: %v", dir, fn, err)
	}

	o.SetDefault()

	if err := json.Unmarshal(b, &o); err != nil {
		return nil, chk.Err("inp: cannot unmarshal config file %s/%s: %v", dir, fn, err)
	}

	if err := o.PostProcess(dir, fn); err != nil {
		return nil, err
	}

	if err := InitLogFile(o.DirOut, o.FnameKey); err != nil {
		return nil, chk.Err("inp: cannot create log file: %v", err)
	}

	return &o, nil
}

// DriverOptions assembles a dvt.Options from the config file values
// plus the collaborator implementations, which are passed in here and
// never read from the config file.
func (o *Config) DriverOptions(tess geo.SerialTessellator, huller geo.ConvexHuller, c comm.Communicator) dvt.Options {
	return dvt.Options{
		SerialTessellator:      tess,
		Communicator:           c,
		ConvexHuller:           huller,
		AssumeControl:          o.AssumeControl,
		BuildCommunicationInfo: o.BuildCommunicationInfo,
		Verbose:                o.Verbose,
		DegeneracyOverride:     o.Degeneracy,
	}
}

// ModeValue converts the config file's string mode to geo.Mode.
func (o *Config) ModeValue() geo.Mode {
	switch o.Mode {
	case "box":
		return geo.Box
	case "plc":
		return geo.PLCBounded
	default:
		return geo.Unbounded
	}
}
