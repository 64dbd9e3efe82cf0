package people

import (
	"cmp"
	"context"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/kozaktomas/photo-people/internal/facematch"
)

// ReconstructPeople returns the named people followed by the unnamed ones.
// Both groups are ordered by the number of distinct files they appear in.
// Entities that can't be shown are skipped, only storage errors are returned.
func (e *Engine) ReconstructPeople(ctx context.Context) ([]Person, error) {
	s, err := e.load(ctx, true)
	if err != nil {
		return nil, err
	}

	assigned := mapset.NewThreadUnsafeSet[string]()
	var named []Person
	for _, group := range s.groups {
		for _, c := range group.Data.Assigned {
			assigned.Add(c.ID)
		}
		if group.Data.IsHidden || group.Data.Name == "" {
			continue
		}

		faces := s.visibleFaces(group.Data.Assigned...)
		if len(faces) == 0 {
			e.log.Debug().Str("cgroup_id", group.ID).Msg("skipping cluster group without visible faces")
			continue
		}
		sortMostRecentFirst(faces)

		display := faces[0]
		if ref, ok := s.avatarFace(group.Data.AvatarFaceID); ok {
			display = ref
		}

		named = append(named, CGroupPerson{
			PersonInfo: newPersonInfo(group.ID, faces, display),
			Name:       group.Data.Name,
			CGroup:     group,
		})
	}

	var unnamed []Person
	minFaces := e.policy.People.MinClusterFaces
	for _, cluster := range s.clusters {
		if assigned.Contains(cluster.ID) {
			continue
		}
		faces := s.visibleFaces(cluster)
		if len(faces) == 0 || len(faces) < minFaces {
			continue
		}
		sortMostRecentFirst(faces)
		unnamed = append(unnamed, ClusterPerson{
			PersonInfo: newPersonInfo(cluster.ID, faces, faces[0]),
			Cluster:    cluster,
		})
	}

	sortByFileCount(named)
	sortByFileCount(unnamed)

	e.log.Debug().
		Int("named", len(named)).
		Int("unnamed", len(unnamed)).
		Int("visible_faces", len(s.faces)).
		Msg("people reconstructed")

	return append(named, unnamed...), nil
}

// FilterNamedPeople returns the people with a name, keeping their order
func FilterNamedPeople(people []Person) []CGroupPerson {
	var named []CGroupPerson
	for _, p := range people {
		if cg, ok := p.(CGroupPerson); ok && cg.Name != "" {
			named = append(named, cg)
		}
	}
	return named
}

// FindNamedPerson reconstructs the people and returns the named person with the given ID.
func (e *Engine) FindNamedPerson(ctx context.Context, personID string) (CGroupPerson, error) {
	people, err := e.ReconstructPeople(ctx)
	if err != nil {
		return CGroupPerson{}, err
	}
	for _, p := range FilterNamedPeople(people) {
		if p.ID == personID {
			return p, nil
		}
	}
	return CGroupPerson{}, ErrPersonNotFound
}

// avatarFace resolves a user chosen avatar. The avatar only needs its file to
// be visible, the face itself may no longer be in the face index.
func (s *snapshot) avatarFace(avatar string) (faceRef, bool) {
	if !facematch.LooksLikeFaceID(avatar) {
		return faceRef{}, false
	}
	if ref, ok := s.faces[avatar]; ok {
		return ref, true
	}
	fileID, _ := facematch.FileIDFromFaceID(avatar)
	file, ok := s.files[fileID]
	if !ok {
		return faceRef{}, false
	}
	return faceRef{FaceID: avatar, File: file}, true
}

func newPersonInfo(id string, faces []faceRef, display faceRef) PersonInfo {
	seen := mapset.NewThreadUnsafeSet[string]()
	var fileIDs []string
	for _, f := range faces {
		if seen.Add(f.File.ID) {
			fileIDs = append(fileIDs, f.File.ID)
		}
	}
	return PersonInfo{
		ID:            id,
		FileIDs:       fileIDs,
		DisplayFaceID: display.FaceID,
		DisplayFile:   display.File,
	}
}

// sortMostRecentFirst orders faces by file creation time, then detection score.
// Face ID breaks the remaining ties so the display face is stable.
func sortMostRecentFirst(faces []faceRef) {
	slices.SortFunc(faces, func(a, b faceRef) int {
		if c := b.File.CreationTime.Compare(a.File.CreationTime); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.FaceID, b.FaceID)
	})
}

func sortByFileCount(people []Person) {
	slices.SortStableFunc(people, func(a, b Person) int {
		return cmp.Compare(len(b.Info().FileIDs), len(a.Info().FileIDs))
	})
}
