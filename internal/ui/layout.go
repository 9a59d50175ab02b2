package ui

// Screen geometry. The chrome rows sit above every page body.
const (
	// headerRows covers the header bar, page tabs and banner line.
	headerRows = 3

	// footerRows is the key hint bar.
	footerRows = 1

	// dropZoneRows is the drop zone box height including its border.
	dropZoneRows = 7

	// upperRows is the fixed height of the admin page's input/preview area.
	upperRows = 13

	// LayoutCompactWidth is the width below which the preview stacks
	// vertically.
	LayoutCompactWidth = 80
)

// Preview thumbnail size in terminal cells.
const (
	thumbCols = 24
	thumbRows = 8
)

// cardRows is the height of one catalogue card.
const cardRows = 3

// infoCharLimit matches the catalogue's description column.
const infoCharLimit = 500
