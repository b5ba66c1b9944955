package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

const welcomeMessage = "Hello! from Rusty-RAG API. AI Search for ANY Developer Package."

// defaultListLimit is the page size when the list endpoint gets no limit.
const defaultListLimit = 50

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": welcomeMessage})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleHello(c *gin.Context) {
	msg := fmt.Sprintf("Hello %s! Welcome to the Rusty-RAG API", c.Param("name"))
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (s *Server) handleCreateRecord(c *gin.Context) {
	var body draftJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, bindError(err))
		return
	}

	record, err := s.records.Create(c.Request.Context(), body.draft())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recordToJSON(record))
}

func (s *Server) handleCreateBatch(c *gin.Context) {
	var body []draftJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, bindError(err))
		return
	}

	drafts := make([]domain.RecordDraft, len(body))
	for i, d := range body {
		drafts[i] = d.draft()
	}

	records, err := s.records.CreateBatch(c.Request.Context(), drafts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recordsToJSON(records))
}

func (s *Server) handleListRecords(c *gin.Context) {
	limit := intQuery(c, "limit", defaultListLimit)
	offset := intQuery(c, "offset", 0)

	records, err := s.records.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recordsToJSON(records))
}

func (s *Server) handleGetRecord(c *gin.Context) {
	record, err := s.records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recordToJSON(record))
}

// handleSearchGet searches with the configured strategy.
func (s *Server) handleSearchGet(c *gin.Context) {
	opts := domain.SearchOptions{Limit: intQuery(c, "limit", 0)}

	resp, err := s.search.Search(c.Request.Context(), c.Query("query"), opts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, responseToJSON(resp))
}

// handleSearchPost always searches the local records, whatever mode is
// configured.
func (s *Server) handleSearchPost(c *gin.Context) {
	var body searchRequestJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, bindError(err))
		return
	}

	opts := domain.SearchOptions{
		Limit: body.Limit,
		Tags:  body.Tags,
		Mode:  domain.SearchModeLocal,
	}

	resp, err := s.search.Search(c.Request.Context(), body.Query, opts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, responseToJSON(resp))
}

// intQuery parses an integer query parameter, falling back to def when
// the parameter is absent or malformed.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
