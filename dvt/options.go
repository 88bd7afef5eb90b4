// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dvt

import (
	"github.com/cpmech/vorodd/comm"
	"github.com/cpmech/vorodd/geo"
)

// Options configures a Driver. SerialTessellator and Communicator are
// required; everything else has a usable default. Matches the
// "inject the serial tessellator as an explicit dependency, never
// process-wide storage" design note — the same is true here of the
// communicator and convex-hull collaborator.
type Options struct {
	// SerialTessellator is the black-box Voronoi/Delaunay kernel.
	// Required.
	SerialTessellator geo.SerialTessellator

	// Communicator is the SPMD message-passing surface. Required.
	Communicator comm.Communicator

	// ConvexHuller builds local hulls for ghost-exchange visibility.
	// Defaults to geo.GiftWrapHuller{}.
	ConvexHuller geo.ConvexHuller

	// AssumeControl, if true, means the Driver owns the serial
	// tessellator's lifetime (relevant only if that collaborator ever
	// needs explicit teardown; geo.SerialTessellator has none today,
	// but the flag is carried through per the external-interface
	// table).
	AssumeControl bool

	// BuildCommunicationInfo, if false, skips neighbor discovery,
	// ghost exchange and everything in §§4.3-4.6: only cells are
	// filled, and NeighborDomains/SharedNodes/SharedFaces stay empty.
	// Zero value is false (skip); inp.Config.SetDefault turns this on
	// by default for configuration loaded from a file.
	BuildCommunicationInfo bool

	// Verbose enables rank-tagged progress printing via utl.Pforan;
	// only rank 0 prints.
	Verbose bool

	// DegeneracyOverride, if positive, replaces
	// SerialTessellator.Degeneracy() as the lattice spacing used for
	// deterministic shared-element ordering.
	DegeneracyOverride float64
}

func (o Options) huller() geo.ConvexHuller {
	if o.ConvexHuller != nil {
		return o.ConvexHuller
	}
	return geo.GiftWrapHuller{}
}

func (o Options) degeneracy() float64 {
	if o.DegeneracyOverride > 0 {
		return o.DegeneracyOverride
	}
	return o.SerialTessellator.Degeneracy()
}

func (o Options) validate() error {
	if o.SerialTessellator == nil {
		return ErrInvalidInput("serial_tessellator is required")
	}
	if o.Communicator == nil {
		return ErrInvalidInput("communicator is required")
	}
	return nil
}
