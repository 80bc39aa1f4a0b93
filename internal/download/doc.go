package download

// Package download implements the background task runner on top of the
// engine package. A Service runs at most one download at a time, translates
// engine progress hooks into normalized percentage events, and delivers
// exactly one terminal event per run over a channel owned by the caller.
