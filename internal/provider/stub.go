package provider

import "context"

// Stub is an in-memory Provider for tests and credential-less dry runs.
// It records every call so tests can assert on escalation behavior.
type Stub struct {
	ProviderName string
	// Reply is returned for every call unless Replies is set.
	Reply string
	// Replies is consumed per call; the last entry repeats once
	// exhausted.
	Replies []string
	// Err, when set, fails every call.
	Err          error
	NoCredential bool

	Calls      int
	LastSystem string
	LastUser   string
}

var _ Provider = (*Stub)(nil)

func (s *Stub) Name() string {
	if s.ProviderName == "" {
		return "stub"
	}
	return s.ProviderName
}

func (s *Stub) HasCredential() bool { return !s.NoCredential }

func (s *Stub) Chat(_ context.Context, systemPrompt, userMessage string) (string, error) {
	s.Calls++
	s.LastSystem = systemPrompt
	s.LastUser = userMessage
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Replies) > 0 {
		i := s.Calls - 1
		if i >= len(s.Replies) {
			i = len(s.Replies) - 1
		}
		return s.Replies[i], nil
	}
	return s.Reply, nil
}
