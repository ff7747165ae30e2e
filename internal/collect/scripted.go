package collect

import (
	"context"
	"fmt"
)

// Scripted is a MetadataSource test double that replays canned fields in
// order and records the requests it saw.
type Scripted struct {
	Answers  []Fields
	Requests []Request

	next int
}

// Collect returns the next scripted answer.
func (s *Scripted) Collect(_ context.Context, req Request) (Fields, error) {
	s.Requests = append(s.Requests, req)
	if s.next >= len(s.Answers) {
		return Fields{}, fmt.Errorf("scripted collector exhausted after %d answers", len(s.Answers))
	}
	fields := s.Answers[s.next]
	s.next++
	return fields, nil
}
