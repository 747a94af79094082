/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically
constructing state definitions.

It allows developers to define states using a type-safe, fluent builder
pattern instead of relying on external YAML or JSON files. This is
particularly useful for dynamic definitions, unit testing, and leveraging
IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/verdict-dev/verdict"
		"github.com/verdict-dev/verdict/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.State("open")

		b.State("closed").
			When("closed=true").
			Overrides("open")

		b.State("assigned").
			When("assignee").
			Counter("unassigned")

		// The builder can be used as a ports.StateLoader
		engine, err := verdict.New("", verdict.WithLoader(b))
		// ...
		_ = engine
		_ = err
	}
*/
package dsl
