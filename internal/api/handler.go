// Package api exposes the extraction pipeline over HTTP: a multipart
// upload flow with session-held results, and a direct raw-text endpoint.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"github.com/insightdelivered/statement-organizer/internal/analyzer"
	"github.com/insightdelivered/statement-organizer/internal/extractor"
	"github.com/insightdelivered/statement-organizer/internal/models"
	"github.com/insightdelivered/statement-organizer/internal/parser"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

const sessionKey = "accountsData"

// ResultsResponse is the JSON payload produced for one processed document.
type ResultsResponse struct {
	Success    bool               `json:"success"`
	Error      string             `json:"error,omitempty"`
	Count      int                `json:"count"`
	Statements []models.Statement `json:"statements"`
	Summary    *analyzer.Summary  `json:"summary,omitempty"`
}

// extractRequest is the body of POST /api/extract when sent as JSON.
type extractRequest struct {
	Text string `json:"text"`
}

// Handler holds the HTTP handlers and their session store.
type Handler struct {
	store   *session.Store
	tempDir string
}

// New builds a Handler with a server-side session store. tempDir is where
// uploads are staged; empty means the system temp directory.
func New(tempDir string) *Handler {
	return &Handler{
		store:   session.New(),
		tempDir: tempDir,
	}
}

// Register sets up the HTTP routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/extract", h.HandleExtract)
	app.Post("/upload", h.HandleUpload)
	app.Get("/results", h.HandleResults)
	app.Get("/clear", h.HandleClear)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleUpload accepts a multipart PDF upload, runs the pipeline, stores
// the result in the session and redirects to /results.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("pdfFile")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'pdfFile'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "File type not allowed. Please upload PDF files only.")
	}

	dir := h.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	dst := filepath.Join(dir, uuid.NewString()+"_"+filepath.Base(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, dst); err != nil {
		slog.Error("failed to stage upload", "error", err)
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}
	defer os.Remove(dst)

	rawText, err := extractor.ExtractText(dst)
	if err != nil {
		slog.Warn("pdf extraction failed", "file", fileHeader.Filename, "error", err)
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Error processing PDF: %v", err))
	}

	resp, err := runPipeline(rawText)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Error processing PDF: %v", err))
	}
	slog.Info("document processed", "file", fileHeader.Filename, "statements", len(resp.Statements))

	if err := h.saveResults(c, resp); err != nil {
		slog.Error("failed to persist session", "error", err)
		return writeError(c, fiber.StatusInternalServerError, "Failed to store results.")
	}
	return c.Redirect("/results", fiber.StatusSeeOther)
}

// HandleResults returns the session-held results from the last upload.
func (h *Handler) HandleResults(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Session unavailable.")
	}
	data, _ := sess.Get(sessionKey).(string)
	if data == "" {
		return writeError(c, fiber.StatusNotFound, "No data available. Please upload a PDF file first.")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(data)
}

// HandleClear drops the session-held results.
func (h *Handler) HandleClear(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Session unavailable.")
	}
	sess.Delete(sessionKey)
	if err := sess.Save(); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to clear session.")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Data cleared successfully"})
}

// HandleExtract runs the pipeline directly on raw text supplied by the
// caller, either as JSON {"text": ...} or as a plain text body.
func (h *Handler) HandleExtract(c *fiber.Ctx) error {
	text := ""
	if strings.Contains(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var req extractRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid JSON body.")
		}
		text = req.Text
	} else {
		text = string(c.Body())
	}

	resp, err := runPipeline(text)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(resp)
}

func runPipeline(rawText string) (*ResultsResponse, error) {
	statements, err := parser.Extract(rawText)
	if err != nil {
		return nil, err
	}
	summary := analyzer.Summarize(statements)
	count := 0
	for _, st := range statements {
		count += len(st.Transactions)
	}
	return &ResultsResponse{
		Success:    true,
		Count:      count,
		Statements: statements,
		Summary:    &summary,
	}, nil
}

func (h *Handler) saveResults(c *fiber.Ctx, resp *ResultsResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionKey, string(data))
	return sess.Save()
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ResultsResponse{
		Success:    false,
		Error:      msg,
		Statements: []models.Statement{},
	})
}
