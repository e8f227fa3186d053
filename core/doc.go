// Package core provides the PDF object types the structure-tree engine
// builds with: names, strings, numbers, arrays, dictionaries, and indirect
// references.
//
// The engine never parses or serializes raw PDF bytes itself; it assembles
// structure elements (StructElem dictionaries), role maps, and marked-content
// references as in-memory objects and hands them to a document boundary for
// placement. All eight basic object types satisfy the [Object] interface:
//
//   - [Null] - the PDF null object
//   - [Bool] - boolean values
//   - [Int] - integers
//   - [Real] - real (floating point) numbers
//   - [String] - string objects
//   - [Name] - name objects (e.g. /StructTreeRoot, /P)
//   - [Array] - arrays
//   - [Dict] - dictionaries
//
// [IndirectRef] identifies an object registered with a document; it is what
// parent/child links in the structure tree are made of.
//
// Dictionary String output is rendered with sorted keys so object dumps are
// stable across runs.
package core
