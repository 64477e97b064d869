/*
Package ports defines the driven ports (interfaces) of the Turing machine engine.

These interfaces decouple the core from its collaborators, so tape storage strategies,
definition sources and run persistence backends can be swapped without touching the
engine.

# Key Interfaces

  - Tape: the capability contract the engine drives (Read, Write, Move, Load).
  - DefinitionLoader: retrieves machine definitions by name (files, Markdown, memory).
  - RunStore: persists run records (memory, files, Redis, SQLite).
*/
package ports
