// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

// Request is a handle to a posted non-blocking send. gosl/mpi only
// exposes blocking Send/Recv; ISend (local.go, mpicomm.go) layers the "return
// immediately, block only in Wait" semantics SPEC_FULL.md §7 requires
// on top of it with a one-shot goroutine + channel, same idiom as any
// Go API turning a blocking call into a future. The buffer passed to
// ISend must stay alive until Wait returns (SPEC_FULL.md §11,
// "Non-blocking I/O"): callers keep it in a slice owned outside the
// loop that issues the sends, never in loop-scoped scratch.
type Request struct {
	done chan error
}

func newRequest() *Request {
	return &Request{done: make(chan error, 1)}
}

func (r *Request) resolve(err error) {
	r.done <- err
}

// Wait blocks until the send this request refers to has completed.
func (r *Request) Wait() error {
	return <-r.done
}

// WaitAll waits on every request, returning the first error encountered, if any.
func WaitAll(reqs []*Request) error {
	var first error
	for _, r := range reqs {
		if err := r.Wait(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
