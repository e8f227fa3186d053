// Package extract produces page elements and text positions from PDF files.
//
// Text fragments are read row by row, grouped into blocks by vertical
// proximity, and assigned the stable identifiers the rest of the engine
// keys on (text_<page>_<block>). The grouping is deliberately simple:
// consecutive rows belong to one block until the vertical gap between them
// exceeds a multiple of the row's font size. Image placements are not
// extracted; image elements enter the pipeline through sidecar records.
package extract
