package pdf

import (
	"fmt"

	"github.com/gridwell/mcp-pdf-tables/internal/pdf/security"
)

// Service handles PDF file operations by orchestrating the validation,
// stats, discovery and table-recovery components
type Service struct {
	maxFileSize   int64
	validator     *Validator
	stats         *Stats
	search        *Search
	extractor     *Extractor
	pathValidator *security.PathValidator
}

// NewService creates a new PDF service rooted at the configured directory
func NewService(maxFileSize int64, configuredDirectory string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		validator:     NewValidator(maxFileSize),
		stats:         NewStats(maxFileSize),
		search:        NewSearch(maxFileSize),
		extractor:     NewExtractor(),
		pathValidator: pathValidator,
	}, nil
}

// ExtractTables recovers tabular data from a PDF file
func (s *Service) ExtractTables(req ExtractTablesRequest) (*ExtractTablesResult, error) {
	path, err := s.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	req.Path = path
	if err := s.validator.validatePDFFile(req.Path); err != nil {
		return nil, &ExtractionError{Path: req.Path, Err: err}
	}
	return s.extractor.ExtractTables(req)
}

// ValidateFile performs validation on a PDF file
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	path, err := s.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	req.Path = path
	return s.validator.ValidateFile(req)
}

// StatsFile returns detailed statistics about a single PDF file
func (s *Service) StatsFile(req StatsFileRequest) (*StatsFileResult, error) {
	path, err := s.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	req.Path = path
	return s.stats.GetFileStats(req)
}

// resolvePath normalizes a client-supplied path against the configured
// directory and confines it there. Relative paths, including bare file
// names from search results, resolve against the configured directory.
func (s *Service) resolvePath(path string) (string, error) {
	normalized, err := s.pathValidator.NormalizePath(path)
	if err != nil {
		return "", fmt.Errorf("security validation failed: %w", err)
	}
	return normalized, nil
}

// SearchDirectory searches for PDF files in a directory
func (s *Service) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}

	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.search.SearchDirectory(req)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// IsValidPDF performs a quick validation check on a file
func (s *Service) IsValidPDF(filePath string) bool {
	return s.validator.IsValidPDF(filePath)
}

// ConfiguredDirectory returns the directory the service is rooted at
func (s *Service) ConfiguredDirectory() string {
	return s.pathValidator.GetConfiguredDirectory()
}
