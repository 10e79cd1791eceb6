package resource

// LoadError reports a resource that could not be loaded from its derived path.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return "failed to load resource: " + e.Path
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
