/*
Package verdict resolves the state of an issue from its metadata against a
declarative, validated set of state definitions.

It separates the state definition (names, conditions, relations) from the
metadata being judged: definitions are loaded and validated once into an
immutable graph, then any number of metadata snapshots can be resolved
against it concurrently.

# Concept

Each state carries a condition, a conjunction of atoms like "closed=true"
or "assignee". States relate to one another: a state may extend another,
inheriting its conditions; it may override another, suppressing it when
both match; and it may declare a counter-state, engaged exactly when the
state itself is not. Resolution evaluates every condition against the
metadata, applies override suppression, and reports the single remaining
state, no state at all, or an ambiguity error naming the contenders.

# Key Features

  - Deterministic Resolution: Identical definitions and metadata always
    produce the identical outcome.
  - Validated Definitions: Duplicate names, relation cycles, conflicting
    relations and misplaced counter references are rejected at load time.
  - Hexagonal Architecture: Core logic is decoupled from adapters
    (file loaders, Redis metadata, HTTP, MCP).

# Usage

	package main

	import (
		"log"

		"github.com/verdict-dev/verdict"
	)

	func main() {
		// Load and validate ./states.yaml
		eng, err := verdict.New("./states.yaml")
		if err != nil {
			log.Fatal(err)
		}

		outcome, err := eng.ResolveValues(map[string]any{
			"closed":   true,
			"assignee": "ada",
		})
		if err != nil {
			log.Fatal(err)
		}

		if outcome.Matched {
			log.Println("state:", outcome.State)
		} else {
			log.Println("no state matched")
		}
	}
*/
package verdict
