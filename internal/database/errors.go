// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package database

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested world, chest or item does not
// exist. Callers map it to HTTP 404.
var ErrNotFound = errors.New("not found")

// NotNewerError is returned by ApplySnapshot when an upload's net_time does
// not strictly exceed the stored world's net_time. Equal net_time is rejected
// so a replayed upload can never clobber inventory state with a stale copy.
type NotNewerError struct {
	UID      int64
	Uploaded float64
	Stored   float64
}

// Error implements the error interface.
func (e *NotNewerError) Error() string {
	return fmt.Sprintf("world %d: uploaded net_time %.2f is not newer than stored net_time %.2f",
		e.UID, e.Uploaded, e.Stored)
}
