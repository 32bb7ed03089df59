/*
Package ports defines the driven ports (interfaces) for the Inquira engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various storage backends.

# Key Interfaces

  - SnapshotStore: persisting and listing saved workflow graphs.
  - RunStore: persisting in-flight run state for stop & resume.
*/
package ports
