package store

import "bytes"

// Memory is a KV held in a map. Values are copied on the way in and out.
type Memory struct {
	m map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{m: map[string][]byte{}}
}

func (s *Memory) Get(key string) ([]byte, bool, error) {
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

func (s *Memory) Set(key string, value []byte) error {
	s.m[key] = bytes.Clone(value)
	return nil
}

func (s *Memory) Close() error {
	return nil
}
