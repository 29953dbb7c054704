// Package app holds application-wide identifiers.
package app

// Name is the application name, used for the config directory and CLI output.
const Name = "jot"
