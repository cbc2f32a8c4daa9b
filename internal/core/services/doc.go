// Package services implements the driving port interfaces.
// Services contain the core logic of docsite and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go: every library-backed concern (decoding,
// storage, file watching, GitHub) sits behind a driven port.
package services
