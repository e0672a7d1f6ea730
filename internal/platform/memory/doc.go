// Package memory provides in-process store implementations: the static
// user store backed by configuration, and a task store used where a
// database is not available, such as handler and router tests.
package memory
