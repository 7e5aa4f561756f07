/*
Package ports defines the driven ports of the logic engine.

# Key Interfaces

  - DocumentStore: persists survey documents (memory, file, Redis).
  - DistributedLocker: serializes writers of one document across replicas.
  - RuleService: document-level operations exposed over HTTP and MCP.
*/
package ports
