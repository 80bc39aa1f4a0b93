package engine

// Package engine defines the contract with the external download engine and
// its yt-dlp implementation (via github.com/lrstanley/go-ytdlp). The engine
// owns URL resolution, format selection, transfer, and muxing; callers only
// supply a format expression, an output template, and progress hooks.
