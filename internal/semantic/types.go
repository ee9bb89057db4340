// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semantic

// Semantic Scholar Graph API JSON structures.

// citationsPage is one page of GET /paper/{id}/citations. Next is absent on
// the last page.
type citationsPage struct {
	Offset int            `json:"offset"`
	Next   *int           `json:"next"`
	Data   []citationEdge `json:"data"`
}

type citationEdge struct {
	CitingPaper *citingPaper `json:"citingPaper"`
}

type citingPaper struct {
	PaperID         string `json:"paperId"`
	Title           string `json:"title"`
	Year            int    `json:"year"`
	PublicationDate string `json:"publicationDate"`
}

type paperDetails struct {
	PaperID       string `json:"paperId"`
	Title         string `json:"title"`
	CitationCount int    `json:"citationCount"`
}

// PaperInfo is the subset of paper metadata shown in charts and reports.
type PaperInfo struct {
	Title         string
	CitationCount int
}
