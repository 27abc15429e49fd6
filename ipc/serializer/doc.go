// Package serializer converts Message objects to and from byte payloads.
// The framing layer treats payloads as opaque; both peers must be
// configured with the same serializer.
//
// Three implementations are provided:
//
//   - JSON: the wire default. Produces the flat tagged object shape
//     ({"type":"Command",...}) and is the interoperable choice.
//   - GOB: Go's native binary encoding, smallest code surface.
//   - CBOR: a compact self-describing binary encoding.
//
// All implementations are stateless and safe for concurrent use.
package serializer
