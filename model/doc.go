// Package model defines the shared data model for the structure-tree engine:
// page elements, their geometry, text positions, and marked-content
// references.
//
// # Elements
//
// An [Element] is one content unit on one page: a text block or an image
// placement, with a stable identifier, a bounding rectangle, a structure
// role, and an ordered property set. Element identifiers follow a fixed
// scheme tied to extraction order:
//
//	text_<page>_<blockOrdinal>
//	image_<page>_<imgOrdinal>_<rectOrdinal>
//
// Identifier stability across extraction runs is what makes sidecar
// reconciliation possible; see [TextElementID] and [ImageElementID].
//
// # Text positions
//
// A [TextPosition] is an ephemeral record of one text span's location,
// produced per page during marked-content correlation and discarded
// afterwards.
//
// # Content references
//
// A [ContentRef] is a (page, MCID) pair correlating a structure-tree leaf to
// a run of marked content inside a page's content stream.
package model
