// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dvt

import "github.com/cpmech/gosl/chk"

// ErrInvalidInput reports an empty global point set or a dimension/
// array-length mismatch, detected and reported locally (no
// communication involved).
func ErrInvalidInput(msg string, prm ...interface{}) error {
	return chk.Err("dvt: invalid input: "+msg, prm...)
}

// ErrSerialTessellator wraps a failure propagated verbatim from the
// injected geo.SerialTessellator; the driver never retries or falls
// back to a different mode on this error.
func ErrSerialTessellator(cause error) error {
	return chk.Err("dvt: serial tessellator failed: %v", cause)
}

// ErrCommunication wraps a failure from the injected
// comm.Communicator; fatal for the enclosing tessellate() call.
func ErrCommunication(msg string, prm ...interface{}) error {
	return chk.Err("dvt: communication error: "+msg, prm...)
}

// ErrConsistencyViolation is raised only under the dvtdebug build tag
// (see verify_debug.go), by verifyConsistency and debugRecvCount; it
// reports a shared-element count mismatch between two ranks. Neighbor-
// set asymmetry is not reported through it: checkSymmetryIfDebug
// panics on every rank together instead.
func ErrConsistencyViolation(msg string, prm ...interface{}) error {
	return chk.Err("dvt: consistency violation: "+msg, prm...)
}
