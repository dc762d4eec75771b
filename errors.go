package meshtopo

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidVertexCount = errors.New("vertex count must be positive")
	ErrVertexOutOfRange   = errors.New("vertex index out of range")
	ErrTooFewVertices     = errors.New("face has fewer than 3 vertices")
	ErrRepeatedVertex     = errors.New("face repeats a vertex")
	ErrFlipLength         = errors.New("flip list does not match face count")
)

// FaceError reports a malformed face. Vertex is the offending vertex id, or
// -1 when the problem is the face size.
type FaceError struct {
	Face   int
	Vertex int
	Err    error
}

func (e *FaceError) Error() string {
	if e.Vertex < 0 {
		return fmt.Sprintf("face %d: %v", e.Face, e.Err)
	}
	return fmt.Sprintf("face %d: vertex %d: %v", e.Face, e.Vertex, e.Err)
}

func (e *FaceError) Unwrap() error {
	return e.Err
}
