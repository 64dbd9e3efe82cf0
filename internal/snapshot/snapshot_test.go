package snapshot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/kozaktomas/photo-people/internal/database/mock"
	"github.com/rs/zerolog"
)

func embedding() []float32 {
	v := make([]float32, database.FaceEmbeddingDim)
	v[0] = 1
	return v
}

func testData() *database.ExportData {
	return &database.ExportData{
		Version:    database.CurrentExportVersion,
		ExportedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Files: []database.File{
			{ID: "1"}, {ID: "2"}, {ID: "3"},
		},
		FaceIndexes: []database.FaceIndex{
			{FileID: "1", Faces: []database.StoredFace{
				{FaceID: "1_00000_00000_10000_10000", Score: 0.9, Embedding: embedding()},
				{FaceID: "1_20000_00000_30000_10000", Score: 0.8, Embedding: []float32{1}},
				{FaceID: "2_00000_00000_10000_10000", Score: 0.8, Embedding: embedding()},
			}},
			{FileID: "2", Faces: []database.StoredFace{
				{FaceID: "2_00000_00000_10000_10000", Score: 0.7, Embedding: embedding()},
			}},
		},
		Clusters: []database.FaceCluster{
			{ID: "c1", Faces: []string{"1_00000_00000_10000_10000"}},
		},
		ClusterGroups: []database.ClusterGroup{
			{ID: "cg1", Data: database.ClusterGroupData{Name: "Alice"}},
		},
	}
}

func TestImport(t *testing.T) {
	w := mock.NewMockSnapshotWriter()
	data := testData()

	progressed := 0
	stats, err := Import(context.Background(), w, data, 2, func(n int) { progressed += n })
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	want := Stats{Files: 3, Faces: 2, Clusters: 1, Groups: 1, SkippedFaces: 2}
	if stats != want {
		t.Errorf("Import() stats = %+v, want %+v", stats, want)
	}
	if progressed != Steps(data) {
		t.Errorf("progress reported %d steps, want %d", progressed, Steps(data))
	}
	if len(w.Files) != 3 {
		t.Errorf("expected 3 files written, got %d", len(w.Files))
	}
	if w.SaveFilesCalls != 2 {
		t.Errorf("expected files in 2 batches, got %d", w.SaveFilesCalls)
	}
	if len(w.Indexes) != 2 || len(w.Indexes[0].Faces) != 1 {
		t.Errorf("expected 1 clean face for file 1, got %+v", w.Indexes)
	}
	if len(w.Clusters) != 1 || len(w.Groups) != 1 {
		t.Errorf("expected 1 cluster and 1 group, got %d and %d", len(w.Clusters), len(w.Groups))
	}
}

func TestImport_LogsSkippedFaces(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	if _, err := Import(ctx, mock.NewMockSnapshotWriter(), testData(), 10, nil); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, `"level":"warn"`); got != 2 {
		t.Errorf("expected 2 warnings, got %d:\n%s", got, out)
	}
	for _, want := range []string{
		`"face_id":"1_20000_00000_30000_10000"`,
		"unexpected embedding dimension",
		`"face_id":"2_00000_00000_10000_10000"`,
		"face ID names another file",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestImport_Errors(t *testing.T) {
	errWrite := errors.New("write failed")

	tests := []struct {
		name   string
		inject func(w *mock.MockSnapshotWriter)
		want   string
	}{
		{"files", func(w *mock.MockSnapshotWriter) { w.SaveFilesError = errWrite }, "saving files"},
		{"faces", func(w *mock.MockSnapshotWriter) { w.SaveFaceIndexError = errWrite }, "saving faces of file 1"},
		{"clusters", func(w *mock.MockSnapshotWriter) { w.ReplaceError = errWrite }, "saving clusters"},
		{"groups", func(w *mock.MockSnapshotWriter) { w.SaveCGroupError = errWrite }, "saving cluster group cg1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mock.NewMockSnapshotWriter()
			tt.inject(w)

			_, err := Import(context.Background(), w, testData(), 10, nil)
			if !errors.Is(err, errWrite) {
				t.Fatalf("Import() error = %v, want %v", err, errWrite)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Import() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestImport_InvalidBatchSize(t *testing.T) {
	if _, err := Import(context.Background(), mock.NewMockSnapshotWriter(), testData(), 0, nil); err == nil {
		t.Error("expected error for zero batch size")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", `{"version": 1, "files": [{"id": "1", "creation_time": "2024-01-01T00:00:00Z"}]}`, false},
		{"wrong version", `{"version": 2}`, true},
		{"missing version", `{}`, true},
		{"invalid json", `{`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Decode(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(data.Files) != 1 {
				t.Errorf("expected 1 file, got %d", len(data.Files))
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(`{"version": 1, "clusters": [{"id": "c1", "faces": ["1_a"]}]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(data.Clusters) != 1 || data.Clusters[0].Faces[0] != "1_a" {
		t.Errorf("unexpected clusters: %+v", data.Clusters)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
