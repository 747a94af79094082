/*
Package domain contains the core domain models for the Verdict engine.

It defines typed metadata values, condition atoms, raw state descriptors
and the error taxonomy shared across the resolver and its adapters. This
package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Value: A typed, comparable piece of issue metadata (string, number, bool, time, set).
  - Atom / Condition: A single comparison against one metadata identifier, and a conjunction of them.
  - RawState: The unvalidated state descriptor produced by loaders (YAML, HTTP, MCP).
  - Outcome: The result of resolving one issue against a validated state graph.
*/
package domain
