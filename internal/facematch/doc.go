// Package facematch provides face identifier and person name helpers shared
// between the people engine, storage and web handlers.
package facematch
