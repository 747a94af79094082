/*
Package ports defines the driven ports (interfaces) for the Verdict engine.

These interfaces decouple the resolution core from external
implementations, allowing states to be loaded from any format and issue
metadata to be fetched from any backend.

# Key Interfaces

  - StateLoader: Responsible for producing the raw state descriptor list (e.g., from a YAML file).
  - MetadataSource: A materialized, read-only snapshot of one issue's metadata.
*/
package ports
