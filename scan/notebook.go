package scan

import (
	"encoding/json"
	"os"
	"strings"
)

// notebookCell is one markdown cell's text with its 1-based cell index.
type notebookCell struct {
	index int
	text  string
}

// rawNotebook is the subset of the Jupyter notebook JSON format needed
// for scanning. Cell source may be a string or a list of line strings.
type rawNotebook struct {
	Cells []struct {
		CellType string          `json:"cell_type"`
		Source   json.RawMessage `json:"source"`
	} `json:"cells"`
}

// markdownCells reads a notebook and returns its markdown cells. Code
// cells are not link-bearing text and are skipped, but they still count
// toward the cell index so locations match what a reader sees.
func markdownCells(path string) ([]notebookCell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var nb rawNotebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, err
	}

	var cells []notebookCell
	for i, cell := range nb.Cells {
		if cell.CellType != "markdown" {
			continue
		}
		cells = append(cells, notebookCell{index: i + 1, text: cellSource(cell.Source)})
	}
	return cells, nil
}

func cellSource(raw json.RawMessage) string {
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
