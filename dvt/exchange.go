// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dvt

import (
	"github.com/cpmech/vorodd/comm"
	"github.com/cpmech/vorodd/wire"
)

const (
	tagGenSize    = 1
	tagGenPayload = 2
)

// exchangeGenerators implements §4.1 step 6: post asynchronous size-
// and payload-sends of this rank's own generators to every neighbor,
// post matching receives, then append ghost generators to
// generators_extended in receive order with gen_to_domain extended in
// parallel. The size message carries the generator *count*, not the
// encoded payload's byte length (wire.EncodeGenerators always emits a
// u32 header even for zero generators, so a byte-length count could
// never come back as zero) — this is what lets the payload send/recv
// actually be skipped when a rank has no generators of its own.
func (d *Driver) exchangeGenerators(c *ctx) error {
	payload := wire.EncodeGenerators(c.ownGenerators)

	var sizeReqs, payloadReqs []*sentRequest
	for _, r := range c.neighbors {
		sizeBuf := wire.NewWriter()
		sizeBuf.PutU32(uint32(c.nLocal))
		sizeReqs = append(sizeReqs, &sentRequest{
			buf: sizeBuf.Bytes(),
			req: d.opts.Communicator.ISend(sizeBuf.Bytes(), r, tagGenSize),
		})
		if c.nLocal > 0 {
			payloadReqs = append(payloadReqs, &sentRequest{
				buf: payload,
				req: d.opts.Communicator.ISend(payload, r, tagGenPayload),
			})
		}
	}

	genExtended := append([]float64{}, c.ownGenerators...)
	genToDomain := make([]int, c.nLocal)
	for i := range genToDomain {
		genToDomain[i] = c.rank
	}

	for _, r := range c.neighbors {
		sizeBuf := d.opts.Communicator.Recv(r, tagGenSize, 4)
		n := int(wire.NewReader(sizeBuf).GetU32())
		if n == 0 {
			continue
		}
		payloadBytes := 4 + 8*n*c.dim
		raw := d.opts.Communicator.Recv(r, tagGenPayload, payloadBytes)
		ghosts := wire.DecodeGenerators(raw)
		genExtended = append(genExtended, ghosts...)
		for i := 0; i < len(ghosts)/c.dim; i++ {
			genToDomain = append(genToDomain, r)
		}
	}

	for _, sr := range sizeReqs {
		if err := sr.req.Wait(); err != nil {
			return ErrCommunication("generator size send: %v", err)
		}
	}
	for _, sr := range payloadReqs {
		if err := sr.req.Wait(); err != nil {
			return ErrCommunication("generator payload send: %v", err)
		}
	}

	c.genExtended = genExtended
	c.genToDomain = genToDomain
	return nil
}

// sentRequest keeps a send's buffer alive until Wait completes, per
// the "non-blocking sends must reference buffers outside loop-scoped
// scratch" design note.
type sentRequest struct {
	buf []byte
	req *comm.Request
}
