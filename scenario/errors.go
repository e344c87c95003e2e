package scenario

// UnknownScenarioError reports a -scenario value that no scenario file registered.
type UnknownScenarioError struct {
	Name string
}

func (e *UnknownScenarioError) Error() string {
	return "unknown scenario " + e.Name
}
