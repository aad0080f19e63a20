package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"echolearn/internal/pdfext"
)

// GenerateFlashcards accepts a PDF upload in the "pdf" form field,
// extracts its text, and returns a generated flashcard set.
func (h *Handler) GenerateFlashcards(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `pdf file is required in field "pdf"`})
		return
	}
	defer file.Close()

	if header.Size > pdfext.MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large, maximum size is 10MB"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are supported"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, pdfext.MaxFileSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}

	text, err := pdfext.ExtractText(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdfext.ErrNoText) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no extractable text in PDF"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read PDF"})
		return
	}

	set, err := h.Flashcards.Generate(c.Request.Context(), userID, header.Filename, text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate flashcards"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"set":    set,
		"source": set.Source,
	})
}

// FlashcardSets lists the user's generated sets.
func (h *Handler) FlashcardSets(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	sets, err := h.Flashcards.ListSets(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load flashcard sets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sets": sets})
}

// FlashcardSet returns one set with its cards.
func (h *Handler) FlashcardSet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	setID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid set id"})
		return
	}

	set, err := h.Flashcards.GetSet(c.Request.Context(), userID, setID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flashcard set not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load flashcard set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"set": set})
}
