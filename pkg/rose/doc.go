// Package rose defines the serialization formats for rose diagram data.
//
// Two document types cross process boundaries:
//
//   - [Document] is the input dataset: a primary magnitude series plus
//     optional secondary series, uncertainty spokes, and labels. Stored as
//     data.json files and accepted by the HTTP API.
//
//   - [LayoutFile] wraps a computed [layout.Layout] together with the
//     render metadata (frame size, style, colors, legend) needed to turn
//     the geometry into an image later. Stored as layout.json files.
//
// Both formats are designed for round-trip fidelity: read → process →
// write → re-read produces identical results.
package rose
