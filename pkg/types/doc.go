// Package types defines the Container contract, the host boundary
// interfaces a storage backend is reached through, persisted container
// configuration, and the standard error values shared by every backend.
//
// Containers are thin, non-owning views over host entities. The host owns
// entities, their inventories, and their metadata maps; this package only
// describes how the rest of the module talks to them.
package types
