// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package nearest

import (
	"errors"
)

type constError string

func (e constError) Error() string {
	return string(e)
}

// Errors returned by [Allocator.Allocate] when a job cannot be placed. They
// are expected outcomes, and the caller may retry once nodes are released.
const ErrInsufficientNodes = constError("not enough free nodes")
const ErrNoCenterNode = constError("no suitable center node")
const ErrNoFreeNode = constError("ran out of free nodes")

// IsInfeasible reports whether err means the job could not be placed on the
// machine in its current state, as opposed to a misuse of the allocator.
func IsInfeasible(err error) bool {
	return errors.Is(err, ErrInsufficientNodes) ||
		errors.Is(err, ErrNoCenterNode) ||
		errors.Is(err, ErrNoFreeNode)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientNodes):
		return "insufficient_nodes"
	case errors.Is(err, ErrNoCenterNode):
		return "no_center_node"
	case errors.Is(err, ErrNoFreeNode):
		return "no_free_node"
	default:
		return "unknown"
	}
}
