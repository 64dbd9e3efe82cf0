package database

import (
	"context"
	"errors"
)

var errNotInitialized = errors.New("PostgreSQL backend not initialized: DATABASE_URL is required")

var (
	postgresFileReader         func() FileReader
	postgresFaceIndexReader    func() FaceIndexReader
	postgresClusterReader      func() ClusterReader
	postgresClusterGroupReader func() ClusterGroupReader
	postgresIgnoredStore       func() IgnoredClusterStore
	postgresSnapshotWriter     func() SnapshotWriter
	postgresInitialized        bool
)

// RegisterPostgresBackend registers PostgreSQL repository constructors.
// This is called by the postgres package consumers to avoid import cycles.
func RegisterPostgresBackend(
	files func() FileReader,
	faces func() FaceIndexReader,
	clusters func() ClusterReader,
	groups func() ClusterGroupReader,
	ignored func() IgnoredClusterStore,
) {
	postgresFileReader = files
	postgresFaceIndexReader = faces
	postgresClusterReader = clusters
	postgresClusterGroupReader = groups
	postgresIgnoredStore = ignored
	postgresInitialized = true
}

// RegisterSnapshotWriter registers the SnapshotWriter constructor.
// Separate from RegisterPostgresBackend since only the import command writes.
func RegisterSnapshotWriter(writer func() SnapshotWriter) {
	postgresSnapshotWriter = writer
}

// IsInitialized returns whether the PostgreSQL backend has been initialized.
func IsInitialized() bool {
	return postgresInitialized
}

// resolve returns the registered constructor's value or an error naming what is missing.
func resolve[T any](ctor func() T, name string) (T, error) {
	var zero T
	if !postgresInitialized {
		return zero, errNotInitialized
	}
	if ctor == nil {
		return zero, errors.New("PostgreSQL " + name + " not registered")
	}
	return ctor(), nil
}

// GetFileReader returns a FileReader from the PostgreSQL backend
func GetFileReader(ctx context.Context) (FileReader, error) {
	return resolve(postgresFileReader, "file reader")
}

// GetFaceIndexReader returns a FaceIndexReader from the PostgreSQL backend
func GetFaceIndexReader(ctx context.Context) (FaceIndexReader, error) {
	return resolve(postgresFaceIndexReader, "face index reader")
}

// GetClusterReader returns a ClusterReader from the PostgreSQL backend
func GetClusterReader(ctx context.Context) (ClusterReader, error) {
	return resolve(postgresClusterReader, "cluster reader")
}

// GetClusterGroupReader returns a ClusterGroupReader from the PostgreSQL backend
func GetClusterGroupReader(ctx context.Context) (ClusterGroupReader, error) {
	return resolve(postgresClusterGroupReader, "cluster group reader")
}

// GetIgnoredClusterStore returns an IgnoredClusterStore from the PostgreSQL backend
func GetIgnoredClusterStore(ctx context.Context) (IgnoredClusterStore, error) {
	return resolve(postgresIgnoredStore, "ignored cluster store")
}

// GetSnapshotWriter returns a SnapshotWriter from the PostgreSQL backend
func GetSnapshotWriter(ctx context.Context) (SnapshotWriter, error) {
	return resolve(postgresSnapshotWriter, "snapshot writer")
}
