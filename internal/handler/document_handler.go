package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bizdoc/internal/domain"
	"bizdoc/internal/export"
	"bizdoc/internal/service"
)

// DocumentHandler handles document parse, analyze, and export endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
	maxBodyBytes    int64
}

// NewDocumentHandler creates a new DocumentHandler. maxBodyBytes <= 0 disables
// the request size limit.
func NewDocumentHandler(documentService service.DocumentService, maxBodyBytes int64) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, maxBodyBytes: maxBodyBytes}
}

// Parse handles POST /api/v1/parse
// @Summary Parse a document
// @Description Parse a markdown document from the raw body or a multipart "file" field into structured data
// @Tags documents
// @Accept plain,mpfd
// @Produce json
// @Param file formData file false "Markdown document"
// @Param path query string false "Source path used for company/project inference; never read"
// @Success 200 {object} APIResponse{data=domain.ParsedDocument} "Parsed document"
// @Failure 400 {object} APIResponse "Empty request body"
// @Failure 413 {object} APIResponse "Document too large"
// @Failure 422 {object} APIResponse "Document could not be read"
// @Router /parse [post]
func (h *DocumentHandler) Parse(c *gin.Context) {
	doc, ok := h.parseRequest(c)
	if !ok {
		return
	}
	RespondOK(c, doc)
}

// Analyze handles POST /api/v1/analyze
// @Summary Analyze a document
// @Description Parse a document and return its summary analysis
// @Tags documents
// @Accept plain,mpfd
// @Produce json
// @Param file formData file false "Markdown document"
// @Param path query string false "Source path used for company/project inference; never read"
// @Success 200 {object} APIResponse{data=domain.DocumentAnalysis} "Document analysis"
// @Failure 400 {object} APIResponse "Empty request body"
// @Failure 413 {object} APIResponse "Document too large"
// @Failure 422 {object} APIResponse "Document could not be read"
// @Router /analyze [post]
func (h *DocumentHandler) Analyze(c *gin.Context) {
	doc, ok := h.parseRequest(c)
	if !ok {
		return
	}
	RespondOK(c, h.documentService.Analyze(doc))
}

// Export handles POST /api/v1/export?format=csv|xlsx
// @Summary Export financial tables
// @Description Parse a document and return its financial tables as a CSV or XLSX attachment
// @Tags documents
// @Accept plain,mpfd
// @Produce text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param file formData file false "Markdown document"
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Param path query string false "Source path used for company/project inference; never read"
// @Success 200 {file} file "Exported financial tables"
// @Failure 400 {object} APIResponse "Empty request body or unsupported format"
// @Failure 413 {object} APIResponse "Document too large"
// @Failure 422 {object} APIResponse "No financial tables or document could not be read"
// @Router /export [post]
func (h *DocumentHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(domain.ExportCSV)))
	if err != nil {
		HandleError(c, err)
		return
	}

	doc, ok := h.parseRequest(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.documentService.Export(c.Request.Context(), doc, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(doc.Metadata.Title, format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, domain.ExportContentTypes[format], buf.Bytes())
}

// parseRequest reads and parses the request document. Returns false if an
// error response has already been written.
func (h *DocumentHandler) parseRequest(c *gin.Context) (*domain.ParsedDocument, bool) {
	content, err := h.readContent(c)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}

	doc, err := h.documentService.ParseContent(c.Request.Context(), service.ParseContentInput{
		Content:    content,
		SourcePath: c.Query("path"),
	})
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return doc, true
}

func (h *DocumentHandler) readContent(c *gin.Context) ([]byte, error) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	if c.ContentType() != "multipart/form-data" {
		content, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, bodyError(err)
		}
		return content, nil
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, domain.ErrEmptyRequestBody
		}
		return nil, bodyError(err)
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, bodyError(err)
	}
	return content, nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit %d bytes", domain.ErrDocumentTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %v", domain.ErrSourceUnreadable, err)
}
