package people

import (
	"github.com/kozaktomas/photo-people/internal/database"
)

// Kind names the origin of a Person
type Kind string

const (
	KindCGroup  Kind = "cgroup"
	KindCluster Kind = "cluster"
)

// Person is either a CGroupPerson or a ClusterPerson.
// Switch on the concrete type to tell them apart.
type Person interface {
	Info() PersonInfo
	Kind() Kind
	isPerson()
}

// PersonInfo is the part shared by both kinds of people
type PersonInfo struct {
	ID string
	// FileIDs holds the distinct files the visible faces occur in, most recent file first
	FileIDs       []string
	DisplayFaceID string
	DisplayFile   database.File
}

// CGroupPerson is a person backed by a named, synced cluster group
type CGroupPerson struct {
	PersonInfo
	Name   string
	CGroup database.ClusterGroup
}

func (p CGroupPerson) Info() PersonInfo { return p.PersonInfo }
func (p CGroupPerson) Kind() Kind       { return KindCGroup }
func (CGroupPerson) isPerson()          {}

// ClusterPerson is a person backed by a single local cluster nobody named yet
type ClusterPerson struct {
	PersonInfo
	Cluster database.FaceCluster
}

func (p ClusterPerson) Info() PersonInfo { return p.PersonInfo }
func (p ClusterPerson) Kind() Kind       { return KindCluster }
func (ClusterPerson) isPerson()          {}

// AssignedClusterIDs returns the IDs of the clusters merged into the person
func (p CGroupPerson) AssignedClusterIDs() []string {
	ids := make([]string, len(p.CGroup.Data.Assigned))
	for i, c := range p.CGroup.Data.Assigned {
		ids[i] = c.ID
	}
	return ids
}

// Name returns the display name of a person, empty for unnamed clusters
func Name(p Person) string {
	if cg, ok := p.(CGroupPerson); ok {
		return cg.Name
	}
	return ""
}
