package animefmt

// Version is the release version. Overridden at build time with
// -ldflags "-X github.com/aretw0/animefmt.Version=...".
var Version = "0.1.0-dev"
