package metadata

import "fmt"

// Store is an in-memory Metadata implementation. Writes copy their input
// and reads return the stored slice directly, so callers must not mutate
// a returned slice in place; appliers always write a fresh array back.
//
// A Store is not safe for concurrent use; each capture request or result
// owns its own records.
type Store struct {
	entries map[Tag]any
}

// NewStore creates an empty metadata record
func NewStore() *Store {
	return &Store{entries: make(map[Tag]any)}
}

// Float32s returns the float32 entry for tag, if present
func (s *Store) Float32s(tag Tag) ([]float32, bool) {
	v, ok := s.entries[tag].([]float32)
	return v, ok
}

// Int32s returns the int32 entry for tag, if present
func (s *Store) Int32s(tag Tag) ([]int32, bool) {
	v, ok := s.entries[tag].([]int32)
	return v, ok
}

// Uint8s returns the uint8 entry for tag, if present
func (s *Store) Uint8s(tag Tag) ([]uint8, bool) {
	v, ok := s.entries[tag].([]uint8)
	return v, ok
}

// SetFloat32s replaces the entry for tag with a copy of data
func (s *Store) SetFloat32s(tag Tag, data []float32) error {
	if err := s.checkType(tag, data); err != nil {
		return err
	}
	s.entries[tag] = append([]float32(nil), data...)
	return nil
}

// SetInt32s replaces the entry for tag with a copy of data
func (s *Store) SetInt32s(tag Tag, data []int32) error {
	if err := s.checkType(tag, data); err != nil {
		return err
	}
	s.entries[tag] = append([]int32(nil), data...)
	return nil
}

// SetUint8s replaces the entry for tag with a copy of data
func (s *Store) SetUint8s(tag Tag, data []uint8) error {
	if err := s.checkType(tag, data); err != nil {
		return err
	}
	s.entries[tag] = append([]uint8(nil), data...)
	return nil
}

// checkType rejects writes that would change the element type of an
// existing entry, mirroring a typed backing store
func (s *Store) checkType(tag Tag, data any) error {
	existing, ok := s.entries[tag]
	if !ok {
		return nil
	}
	if fmt.Sprintf("%T", existing) != fmt.Sprintf("%T", data) {
		return fmt.Errorf("metadata: tag %s holds %T, cannot write %T", tag, existing, data)
	}
	return nil
}
