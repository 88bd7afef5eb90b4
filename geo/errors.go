// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import "github.com/cpmech/gosl/chk"

// ErrInvalidInput reports an empty global point set or a Dim/array-length
// mismatch. It is always detected and reported locally, with no
// communication required.
func ErrInvalidInput(msg string, prm ...interface{}) error {
	return chk.Err("invalid input: "+msg, prm...)
}

// ErrSerialTessellator wraps a failure returned by the injected
// SerialTessellator. The distributed driver never retries or falls
// back to a different mode on such a failure; it is propagated
// verbatim to the caller.
func ErrSerialTessellator(cause error) error {
	return chk.Err("serial tessellator failed: %v", cause)
}
