/*
Package session serializes access to stored survey documents.

A Manager wraps a ports.DocumentStore with per-document locks so that
read-modify-write cycles (a rename, a removed logic item) never interleave.
Locks are reference counted and dropped once unused; an optional
ports.DistributedLocker extends the guarantee across replicas.
*/
package session
