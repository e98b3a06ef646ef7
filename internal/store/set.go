package store

import (
	"encoding/json"
	"fmt"
	"slices"
)

// encodeSet encodes a set as a sorted JSON array so equal sets are stored
// as equal strings.
func encodeSet(set map[string]struct{}) (string, error) {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	slices.Sort(values)

	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeSet(raw string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if raw == "" {
		return set, nil
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptedSet, err)
	}
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set, nil
}

// editEncodedSet applies edit to the encoded set raw. keep is false when the
// edited set is empty and the key should be removed.
func editEncodedSet(raw string, edit func(set map[string]struct{})) (encoded string, keep bool, err error) {
	set, err := decodeSet(raw)
	if err != nil {
		return "", false, err
	}

	edit(set)
	if len(set) == 0 {
		return "", false, nil
	}

	encoded, err = encodeSet(set)
	if err != nil {
		return "", false, err
	}
	return encoded, true, nil
}
