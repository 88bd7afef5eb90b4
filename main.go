// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/vorodd/comm"
	"github.com/cpmech/vorodd/dvt"
	"github.com/cpmech/vorodd/geo"
	"github.com/cpmech/vorodd/inp"
	"github.com/cpmech/vorodd/wire"
)

func main() {

	// catch errors
	utl.Tsilent = false
	c := comm.NewMPIComm()
	defer func() {
		if c.Rank() == 0 {
			if err := recover(); err != nil {
				utl.PfRed("ERROR: %v\n", err)
			}
		}
		comm.Stop()
	}()
	comm.Start()

	// message
	utl.PfWhite("\nvorodd -- distributed Voronoi tessellation driver\n\n")
	utl.Pf("Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.\n")
	utl.Pf("Use of this source code is governed by a BSD-style\n")
	utl.Pf("license that can be found in the LICENSE file.\n\n")

	// config filenamepath
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		utl.Panic("Please, provide a config filename. Ex.: run01.dvt\n")
	}
	dir, fn := filepath.Split(fnamepath)
	if dir == "" {
		dir = "."
	}

	dvt.Start(c, true)
	defer dvt.End()

	cfg, err := inp.ReadConfig(dir, fn)
	if dvt.Stop(c, err, "reading config file") {
		return
	}
	defer inp.FlushLog()

	tess := geo.NewSerialTessellator(cfg.Tessellator)
	if tess == nil {
		utl.Panic("no serial tessellator registered under name %q\n", cfg.Tessellator)
	}
	var huller geo.ConvexHuller
	if cfg.Huller != "" {
		huller = geo.NewConvexHuller(cfg.Huller)
		if huller == nil {
			utl.Panic("no convex huller registered under name %q\n", cfg.Huller)
		}
	}

	driver, err := dvt.NewDriver(cfg.DriverOptions(tess, huller, c))
	if dvt.Stop(c, err, "building driver") {
		return
	}

	points, err := readGenerators(cfg.FnameDir, cfg.GeneratorsFile)
	if dvt.Stop(c, err, "reading generators file") {
		return
	}

	var mesh *geo.Tessellation
	switch cfg.ModeValue() {
	case geo.Box:
		mesh, err = driver.TessellateBox(points, cfg.Low, cfg.High)
	case geo.PLCBounded:
		plc, perr := readPLC(cfg.FnameDir, cfg.PLCFile)
		if dvt.Stop(c, perr, "reading PLC file") {
			return
		}
		mesh, err = driver.TessellatePLC(points, plc.Points, plc)
	default:
		mesh, err = driver.Tessellate(points)
	}
	if dvt.Stop(c, err, "tessellate") {
		return
	}

	utl.Pforan("[rank %d] tessellation done: %d cells, %d nodes, %d neighbors\n",
		c.Rank(), len(mesh.Cells), mesh.NumNodes(), len(mesh.NeighborDomains))
}

// readGenerators reads this rank's own generator coordinates from the
// little-endian wire format produced by wire.EncodeGenerators.
func readGenerators(dir, fn string) ([]float64, error) {
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read generators file %s/%s: %v", dir, fn, err)
	}
	return wire.DecodeGenerators(b), nil
}

// readPLC reads a PLC boundary definition from the wire.EncodePLC format.
func readPLC(dir, fn string) (*geo.PLC, error) {
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read PLC file %s/%s: %v", dir, fn, err)
	}
	return wire.DecodePLC(b), nil
}
