package blocks

import (
	"encoding/json"
)

const mask = "**********"

// Secret is a block payload holding a sensitive string. Printing a Secret in
// any format yields a masked placeholder; only Get returns the raw value.
type Secret struct {
	value string
}

func NewSecret(value string) *Secret {
	return &Secret{value: value}
}

//Get the raw secret value
func (s *Secret) Get() string {
	return s.value
}

func (s *Secret) String() string {
	return mask
}

func (s *Secret) GoString() string {
	return mask
}

func (s *Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value string `json:"value"`
	}{Value: s.value})
}

func (s *Secret) UnmarshalJSON(data []byte) error {
	var body struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	s.value = body.Value
	return nil
}
