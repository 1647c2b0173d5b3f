package util

import (
	"encoding/json"
)

// JsonString generate json string for an object
func JsonString(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseJson parse json string to an object
func ParseJson(jsonStr string, v interface{}) error {
	return json.Unmarshal([]byte(jsonStr), v)
}

// ParseJsonBytes parse raw json bytes to an object
func ParseJsonBytes(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
