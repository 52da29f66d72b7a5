package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gridwell/mcp-pdf-tables/internal/survey"
	"github.com/gridwell/mcp-pdf-tables/internal/table"
)

// JSONContentType is the MIME type reported for SurveyJS JSON downloads.
const JSONContentType = "application/json"

// SurveyFileName is the download name for the combined SurveyJS document.
const SurveyFileName = "combined_tables.json"

const exportDirPerm = 0o750
const exportFilePerm = 0o640

// File describes one written artifact.
type File struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Exporter writes download artifacts beneath a configured directory.
// Each session gets its own subdirectory so concurrent sessions never
// overwrite each other's files.
type Exporter struct {
	baseDir string
}

// NewExporter creates an exporter rooted at baseDir.
func NewExporter(baseDir string) (*Exporter, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("export directory cannot be empty")
	}
	return &Exporter{baseDir: baseDir}, nil
}

// BaseDir returns the configured export root.
func (e *Exporter) BaseDir() string {
	return e.baseDir
}

// WriteCSVs writes one CSV file per grid into the session's subdirectory
// and returns the written files in part order.
func (e *Exporter) WriteCSVs(sessionID string, grids []table.Grid) ([]File, error) {
	files := make([]File, 0, len(grids))
	for idx, g := range grids {
		data, err := GridCSV(g)
		if err != nil {
			return nil, err
		}
		name := CSVFileName(idx+1, len(grids))
		f, err := e.write(sessionID, name, CSVContentType, data)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// WriteXLSX writes the combined workbook for the session.
func (e *Exporter) WriteXLSX(sessionID string, grids []table.Grid) (File, error) {
	data, err := GridsXLSX(grids)
	if err != nil {
		return File{}, err
	}
	return e.write(sessionID, XLSXFileName, XLSXContentType, data)
}

// WriteSurvey serializes the document and writes it for the session.
func (e *Exporter) WriteSurvey(sessionID string, doc survey.Document) (File, []byte, error) {
	data, err := survey.Marshal(doc)
	if err != nil {
		return File{}, nil, err
	}
	f, err := e.write(sessionID, SurveyFileName, JSONContentType, data)
	if err != nil {
		return File{}, nil, err
	}
	return f, data, nil
}

func (e *Exporter) write(sessionID, name, contentType string, data []byte) (File, error) {
	dir := filepath.Join(e.baseDir, sessionID)
	if err := os.MkdirAll(dir, exportDirPerm); err != nil {
		return File{}, fmt.Errorf("cannot create export directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, exportFilePerm); err != nil {
		return File{}, fmt.Errorf("cannot write export file %s: %w", path, err)
	}

	return File{
		Name:        name,
		Path:        path,
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}
