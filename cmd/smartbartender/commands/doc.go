// Package commands defines the smartbartender CLI and wires dependencies for subcommands.
//
// Commands
//
//   - serve          Run the login gate web server
//   - user add       Register an account
//   - user reset     Overwrite an account's password
//   - user check     Test a username/password pair
//   - user list      Print registered usernames
//
// # Implementation
//
// The root command loads configuration (flags, SMARTBAR_* environment,
// optional config file, defaults), builds the logger and the dependency
// graph, and seeds the default admin account before any subcommand runs.
package commands
