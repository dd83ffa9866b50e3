// Package kagproj exposes build metadata shared by the CLI and tooling.
package kagproj

// Version is the kagproj release version.
const Version = "0.1.0"
