// Package version holds the build version of vaultsetup.
package version

// Version is overridden at build time via -ldflags "-X".
var Version = "dev"
