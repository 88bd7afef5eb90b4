// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/utl"
)

func Test_xfer01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("xfer01: Wait blocks until resolve, then returns the resolved error")

	req := newRequest()
	go req.resolve(nil)
	if err := req.Wait(); err != nil {
		tst.Errorf("expected nil error, got %v", err)
	}
}

func Test_xfer02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("xfer02: WaitAll surfaces the first error among several requests")

	wantErr := errors.New("boom")
	r1, r2, r3 := newRequest(), newRequest(), newRequest()
	go r1.resolve(nil)
	go r2.resolve(wantErr)
	go r3.resolve(nil)
	if err := WaitAll([]*Request{r1, r2, r3}); err != wantErr {
		tst.Errorf("got %v, want %v", err, wantErr)
	}
}

func Test_xfer03(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("xfer03: WaitAll on an all-nil-error set returns nil")

	r1, r2 := newRequest(), newRequest()
	go r1.resolve(nil)
	go r2.resolve(nil)
	if err := WaitAll([]*Request{r1, r2}); err != nil {
		tst.Errorf("expected nil, got %v", err)
	}
}
