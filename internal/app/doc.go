// Package app wires application dependencies for the CLI.
//
// It loads Config through viper, builds the zap logger, the selected
// credential store, the hasher and the credential service, and exposes
// them via the Wire struct for commands to use.
package app
