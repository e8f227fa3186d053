// Package sidecar reads and writes the sidecar file: the externally
// persisted record of user edits (roles, bounding boxes, properties) layered
// over re-computed extraction output.
//
// # Schema
//
// The persisted form is JSON:
//
//	{
//	  "document": {"title": "...", "language": "en-US", "tagged": true},
//	  "pages": {
//	    "0": {"elements": [
//	      {"id": "text_0_2", "role": "H1", "bbox": [x0,y0,x1,y1],
//	       "text": "...", "properties": {"language": "en-US"}}
//	    ]}
//	  }
//	}
//
// Page keys are page indexes as strings. Writers in the wild have produced
// two shapes for both "pages" (object or array) and "elements" (array or
// id-keyed object); [Parse] accepts all of them and normalizes to the
// canonical object-of-arrays form exactly once, at this boundary. Nothing
// downstream inspects raw shapes.
//
// A document written by [Write] and re-read by [Parse] yields an element set
// equal under id-keyed comparison; array order is not significant.
package sidecar
