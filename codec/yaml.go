package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML renders the stream as the structured interchange document: an
// encoder_info mapping and an ordered frames sequence.
func (s *Stream) ToYAML() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return yaml.Marshal(s)
}

// FromYAML parses the structured interchange document and validates it
// against the declared order.
func FromYAML(data []byte) (*Stream, error) {
	var s Stream
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
