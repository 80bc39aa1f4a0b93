package model

// Package model defines domain data structures used across the app: the
// download request, the resolution set offered to the user, runner events,
// and the task status enum driving the single-run lifecycle.
