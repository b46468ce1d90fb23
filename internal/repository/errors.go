// Package repository contains the data access logic of the directory.
// Repositories wrap a *sql.DB handed in at construction and open one
// transaction per mutation.  Queries use '?' placeholders and portable
// SQL so the same code runs against MySQL and SQLite.
//
// This file defines the sentinel errors shared by the repositories.
// Handlers never see them directly; the service layer translates them
// into its typed error kinds.
package repository

import "errors"

// ErrVenueNotFound is returned when no venue row has the requested id.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when no artist row has the requested id.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound is returned when no show row has the requested id.
var ErrShowNotFound = errors.New("show not found")
