// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dvt

import (
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/vorodd/comm"
)

// Stop decides whether a serial or distributed run must stop because of
// err, mirroring gofem's fem.Stop: in a distributed run every rank's
// "I want to stop" flag is combined with AllReduceMax so a
// CommunicationError or ConsistencyViolation raised on one rank is
// seen by every rank, instead of leaving peers blocked on a recv that
// will never arrive.
func Stop(c comm.Communicator, err error, msg string) bool {
	if c.Size() == 1 {
		if err != nil {
			utl.Pf("\n")
			utl.PfMag("run failed on %s with %v\n", msg, err)
			return true
		}
		return false
	}

	flag := 0.0
	if err != nil {
		utl.PfMag("run failed in proc # %d on %s with %v\n", c.Rank(), msg, err)
		flag = 1
	}
	return c.AllReduceMax(flag) > 0
}

// PanicOrNot panics on every rank together if any rank requests it,
// mirroring fem.PanicOrNot: a ConsistencyViolation raised on one rank
// must bring every rank down together, not just the one that noticed,
// or its peers are left blocked on a recv that will never arrive.
func PanicOrNot(c comm.Communicator, dopanic bool, msg string, prm ...interface{}) {
	if c.Size() == 1 {
		if dopanic {
			utl.Pf("\n")
			panic(utl.Sf(msg, prm...))
		}
		return
	}

	flag := 0.0
	if dopanic {
		flag = 1
	}
	if c.AllReduceMax(flag) > 0 {
		panic(utl.Sf(msg, prm...))
	}
}
