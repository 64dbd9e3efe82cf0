package people

import "errors"

var (
	// ErrPersonNotFound is returned when no named person has the requested ID.
	ErrPersonNotFound = errors.New("person not found")

	// ErrPersonHasNoFaces is returned when suggestions are requested for a
	// person none of whose assigned faces can be compared or previewed.
	// People returned by ReconstructPeople never trigger it unless the
	// underlying state changed in between.
	ErrPersonHasNoFaces = errors.New("person has no usable faces")

	// ErrClusterNotFound is returned when a cluster ID is not a local cluster.
	ErrClusterNotFound = errors.New("cluster not found")

	// ErrClusterAssigned is returned when ignoring a cluster that already
	// belongs to the person.
	ErrClusterAssigned = errors.New("cluster is assigned to the person")

	// ErrFaceNotFound is returned when a face ID has no visible embedding.
	ErrFaceNotFound = errors.New("face not found")

	errNoIgnoredStore = errors.New("ignored cluster store not configured")
)
