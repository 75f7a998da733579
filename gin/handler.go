package gin

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/aggregate"
	"github.com/gin-gonic/gin"
)

const ndjsonContentType = "application/x-ndjson"

type searchRequest struct {
	Query  string `json:"query"`
	Source string `json:"source"`
	Stream bool   `json:"stream"`
}

type resolveRequest struct {
	URL    string `json:"url"`
	Source string `json:"source"`
}

type frontpageRequest struct {
	Source  string `json:"source"`
	Section string `json:"section"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Days    int    `json:"days"`
}

// statusCode maps an application error code to an HTTP status.
func statusCode(err error) int {
	switch scanhub.ErrorCode(err) {
	case scanhub.EINVALID, scanhub.EUNSUPPORTED, scanhub.EUNKNOWNSECTION:
		return http.StatusBadRequest
	case scanhub.ENOTFOUND:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// fail writes err as {error: message}. Server errors are attached to the
// context so the access log records them.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusCode(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": scanhub.ErrorMessage(err)})
}

func (s *Server) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

func (s *Server) handleSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sources": s.aggregator.Registry().SourceInfos()})
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if !s.bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.fail(c, scanhub.Errorf(scanhub.EINVALID, "Search query is required"))
		return
	}

	ctx := c.Request.Context()
	if req.Source != "" && !strings.EqualFold(req.Source, aggregate.AllSources) {
		out, err := s.aggregator.SearchOne(ctx, req.Source, req.Query)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": out.Results, "source": out.Source})
		return
	}

	if req.Stream || strings.Contains(c.GetHeader("Accept"), ndjsonContentType) {
		s.streamSearch(c, req.Query)
		return
	}

	outcomes, err := s.aggregator.SearchAll(ctx, req.Query)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": outcomes})
}

// streamSearch writes one NDJSON record per settled source followed by the
// summary record.
func (s *Server) streamSearch(c *gin.Context, query string) {
	c.Header("Content-Type", ndjsonContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Status(http.StatusOK)

	enc := json.NewEncoder(c.Writer)
	summary, err := s.aggregator.StreamAll(c.Request.Context(), query, func(r aggregate.SourceResults) error {
		if err := enc.Encode(r); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := enc.Encode(summary); err != nil {
		_ = c.Error(err)
		return
	}
	c.Writer.Flush()
}

func (s *Server) handleChapters(c *gin.Context) {
	var req resolveRequest
	if !s.bind(c, &req) {
		return
	}
	src, chapters, err := s.aggregator.Chapters(c.Request.Context(), req.URL, req.Source)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chapters":      chapters,
		"source":        src.Name(),
		"totalChapters": len(chapters),
	})
}

func (s *Server) handleInfo(c *gin.Context) {
	var req resolveRequest
	if !s.bind(c, &req) {
		return
	}
	src, info, err := s.aggregator.MangaInfo(c.Request.Context(), req.URL, req.Source)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": info.Title, "id": info.ID, "source": src.Name()})
}

func (s *Server) handleHealth(c *gin.Context) {
	srcs := s.aggregator.Registry().Sources()
	if name := c.Query("source"); name != "" {
		src, err := s.aggregator.SourceByName(name)
		if err != nil {
			s.fail(c, err)
			return
		}
		srcs = []scanhub.Source{src}
	}
	c.JSON(http.StatusOK, gin.H{
		"sources":   s.health.CheckAll(c.Request.Context(), srcs),
		"checkedAt": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleFrontpageList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sources":   s.frontpages.Infos(),
		"sourceIds": s.frontpages.SourceIDs(),
	})
}

func (s *Server) handleFrontpageSection(c *gin.Context) {
	var req frontpageRequest
	if !s.bind(c, &req) {
		return
	}
	if req.Source == "" {
		s.fail(c, scanhub.Errorf(scanhub.EINVALID, "Source is required"))
		return
	}
	if req.Section == "" {
		s.fail(c, scanhub.Errorf(scanhub.EINVALID, "Section is required"))
		return
	}

	fp := s.frontpages.Frontpage(req.Source)
	if fp == nil {
		s.fail(c, scanhub.Errorf(scanhub.EUNSUPPORTED, "Source %q does not have frontpage support. Available sources: %s",
			req.Source, strings.Join(s.frontpages.SourceIDs(), ", ")))
		return
	}
	sections := fp.Sections()
	if _, ok := scanhub.FindSection(sections, req.Section); !ok {
		ids := make([]string, 0, len(sections))
		for _, sec := range sections {
			ids = append(ids, sec.ID)
		}
		s.fail(c, scanhub.Errorf(scanhub.EUNKNOWNSECTION, "Unknown section %q. Available sections: %s",
			req.Section, strings.Join(ids, ", ")))
		return
	}

	section, err := fp.FetchSection(c.Request.Context(), req.Section, scanhub.FetchOptions{
		Page:  req.Page,
		Limit: req.Limit,
		Days:  req.Days,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"source":     fp.SourceID(),
		"sourceName": fp.SourceName(),
		"section":    section,
		"fetchedAt":  s.now().UnixMilli(),
	})
}
