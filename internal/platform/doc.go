package platform

// Package platform contains OS integration: the user's Downloads directory,
// destination checks before a run, and revealing files in the file manager.
