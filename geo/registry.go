// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

// RegisterSerialTessellator makes a serial Voronoi/Delaunay kernel
// available by name, mirroring msolid's model-allocator registry: the
// kernel itself is always a separate package (out of scope here), and
// registers its constructor in an init() function rather than this
// module importing it directly.
func RegisterSerialTessellator(name string, factory func() SerialTessellator) {
	tessellatorFactories[name] = factory
}

// NewSerialTessellator looks up a registered kernel by name. Returns
// nil if no kernel was registered under that name.
func NewSerialTessellator(name string) SerialTessellator {
	factory, ok := tessellatorFactories[name]
	if !ok {
		return nil
	}
	return factory()
}

var tessellatorFactories = map[string]func() SerialTessellator{}

// RegisterConvexHuller makes a convex-hull implementation available by
// name, same convention as RegisterSerialTessellator. Callers that
// only need the default GiftWrapHuller never have to register
// anything: geo.GiftWrapHuller{} is always available directly.
func RegisterConvexHuller(name string, factory func() ConvexHuller) {
	hullerFactories[name] = factory
}

// NewConvexHuller looks up a registered hull builder by name. Returns
// nil if no implementation was registered under that name.
func NewConvexHuller(name string) ConvexHuller {
	factory, ok := hullerFactories[name]
	if !ok {
		return nil
	}
	return factory()
}

var hullerFactories = map[string]func() ConvexHuller{}
