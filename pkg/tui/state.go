package tui

// State tracks raw inputs and the last failure message per field so re-prompts
// can show both. Orchestration lives in the session.
type State struct {
	values map[string]string
	errors map[string]string
}

// NewState seeds the state with prefilled inputs.
func NewState(prefill map[string]string) *State {
	values := make(map[string]string, len(prefill))
	for k, v := range prefill {
		values[k] = v
	}
	return &State{
		values: values,
		errors: make(map[string]string),
	}
}

// GetValue returns the raw input for a field.
func (s *State) GetValue(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[name]
	return v, ok
}

// SetValue records the raw input for a field.
func (s *State) SetValue(name, value string) {
	s.values[name] = value
}

// ErrorFor returns the last failure message recorded for a field.
func (s *State) ErrorFor(name string) string {
	if s == nil {
		return ""
	}
	return s.errors[name]
}

// SetErrors replaces the recorded failures.
func (s *State) SetErrors(errs map[string]string) {
	s.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		s.errors[k] = v
	}
}
