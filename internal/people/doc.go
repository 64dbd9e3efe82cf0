// Package people turns face detections, local face clusters and synced
// cluster groups into a ranked list of people, and suggests clusters that
// probably belong to an already named person.
//
// Every operation reloads its inputs from the collaborators in Sources, so
// an Engine holds no state between calls and is safe for concurrent use.
package people
