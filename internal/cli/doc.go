// Package cli wires configuration, logging, the yt-dlp engine and the
// download runner into the ytdownloader commands.
package cli
