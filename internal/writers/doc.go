// Package writers turns designed amplicons, tailed assemblies and Tm
// results into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (figures, JSON/JSONL/FASTA).
//   • Core packages stay domain-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
