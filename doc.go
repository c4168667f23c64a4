// Package coil implements an intermediate binary object format and virtual
// instruction set for a hypothetical multi-target compiler backend: a type
// system, an instruction encoder/decoder, an object model (headers, symbols,
// sections, relocations), structured validation diagnostics, and the
// little/big-endian binary I/O primitives that tie them together.
package coil
