package internal

// Version is the autolingo release, overridden at build time with
// -ldflags "-X codeberg.org/snonux/autolingo/internal.Version=..."
var Version = "0.1.0"
