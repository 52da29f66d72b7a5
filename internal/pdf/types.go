package pdf

import "github.com/gridwell/mcp-pdf-tables/internal/table"

// FileInfo represents information about a PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Request Types

// ExtractTablesRequest represents a request to recover tabular data from a PDF file
type ExtractTablesRequest struct {
	Path string `json:"path"`
	// Pages restricts extraction to specific 1-indexed pages; empty means all pages.
	Pages []int `json:"pages,omitempty"`
}

// ValidateFileRequest represents a request to validate a PDF file
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// StatsFileRequest represents a request to get stats about a PDF file
type StatsFileRequest struct {
	Path string `json:"path"`
}

// SearchDirectoryRequest represents a request to search for PDF files in a directory
type SearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// Response Types

// ExtractTablesResult represents the result of table recovery from a PDF file
type ExtractTablesResult struct {
	Path     string           `json:"path"`
	Pages    int              `json:"pages"`
	Tables   []table.RawTable `json:"tables"`
	Warnings []string         `json:"warnings,omitempty"`
}

// ValidateFileResult represents the result of a PDF validation operation
type ValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// StatsFileResult represents the result of a PDF file stats operation
type StatsFileResult struct {
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Pages        int    `json:"pages"`
	CreatedDate  string `json:"created_date,omitempty"`
	ModifiedDate string `json:"modified_date"`
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Producer     string `json:"producer,omitempty"`
}

// SearchDirectoryResult represents the result of a PDF search operation
type SearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}
