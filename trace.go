package argon2

// tracer receives debugging output from the engine.
// *testing.T satisfies it.
type tracer interface {
	Logf(format string, args ...interface{})
}
