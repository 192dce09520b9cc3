// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"cmp"
	"time"
)

type event struct {
	Time time.Duration
	// Seq orders events scheduled for the same time by scheduling order.
	Seq  int
	Func func()
}

func (a *event) Cmp(b *event) int {
	if c := cmp.Compare(a.Time, b.Time); c != 0 {
		return c
	}
	return cmp.Compare(a.Seq, b.Seq)
}
