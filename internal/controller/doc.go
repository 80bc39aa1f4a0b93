package controller

// Package controller holds the toolkit-independent presenter for the download
// form. It owns the input state, gates the start action, runs one download at
// a time, and replays runner events on the consumer context through a
// Dispatcher before touching the View.
