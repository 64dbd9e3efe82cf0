package facematch

import (
	"strconv"
	"strings"
)

// FaceIDSeparator separates the components of a face ID.
// A face ID looks like "<fileID>_<x1>_<y1>_<x2>_<y2>" where the coordinates
// are the relative bounding box corners written as five digit fractions
// (e.g. "04250" is 0.0425).
const FaceIDSeparator = "_"

const boxScale = 100000

// FileIDFromFaceID returns the owning file ID encoded in a face ID.
// ok is false when the face ID has no file component.
func FileIDFromFaceID(faceID string) (string, bool) {
	fileID, _, found := strings.Cut(faceID, FaceIDSeparator)
	if !found || fileID == "" {
		return "", false
	}
	return fileID, true
}

// LooksLikeFaceID reports whether s has the separator every face ID carries.
// Older clients stored bare file IDs in places where a face ID is expected.
func LooksLikeFaceID(s string) bool {
	return strings.Contains(s, FaceIDSeparator)
}

// FaceBox decodes the relative [x1, y1, x2, y2] box from a face ID.
// Returns nil if the face ID carries no box or the box is malformed.
func FaceBox(faceID string) []float64 {
	parts := strings.Split(faceID, FaceIDSeparator)
	if len(parts) != 5 || parts[0] == "" {
		return nil
	}

	box := make([]float64, 4)
	for i, p := range parts[1:] {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > boxScale {
			return nil
		}
		box[i] = float64(v) / boxScale
	}

	if box[2] < box[0] || box[3] < box[1] {
		return nil
	}
	return box
}
