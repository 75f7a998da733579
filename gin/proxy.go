package gin

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/scanhub"
	"github.com/gin-gonic/gin"
)

const msgProxyNotAllowed = "Invalid URL - only AsuraScans and WeebCentral URLs are allowed"

// proxyReferers lists the hosts the HTML proxy may reach and the Referer
// each expects.
var proxyReferers = map[string]string{
	"asuracomic.net":  "https://asuracomic.net/",
	"weebcentral.com": "https://weebcentral.com/",
}

var proxyHeader = http.Header{
	"Accept":                    {"text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"},
	"Accept-Language":           {"en-US,en;q=0.5"},
	"Dnt":                       {"1"},
	"Upgrade-Insecure-Requests": {"1"},
	"Sec-Fetch-Dest":            {"document"},
	"Sec-Fetch-Mode":            {"navigate"},
	"Sec-Fetch-Site":            {"same-origin"},
	"Cache-Control":             {"no-cache"},
	"Pragma":                    {"no-cache"},
}

// proxyReferer returns the Referer for an allow-listed http(s) URL.
func proxyReferer(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	ref, ok := proxyReferers[strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")]
	return ref, ok
}

// maxProxyRedirects matches the net/http default.
const maxProxyRedirects = 10

// CheckProxyRedirect is the redirect policy of the HTML proxy's fetcher. It
// refuses to follow a redirect off the allow-list.
func CheckProxyRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxProxyRedirects {
		return scanhub.Errorf(scanhub.EFETCH, "stopped after %d redirects", maxProxyRedirects)
	}
	if _, ok := proxyReferer(req.URL.String()); !ok {
		return scanhub.Errorf(scanhub.EINVALID, "redirect to %s is not allowed", req.URL.Host)
	}
	return nil
}

func setProxyCORS(c *gin.Context, methods string) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", methods)
	c.Header("Access-Control-Allow-Headers", "Content-Type")
}

// handleProxyHTML relays a client-only upstream page so browsers can read
// it without tripping CORS.
func (s *Server) handleProxyHTML(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing URL parameter"})
		return
	}
	referer, ok := proxyReferer(target)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgProxyNotAllowed})
		return
	}

	header := proxyHeader.Clone()
	header.Set("Referer", referer)
	html, err := s.proxy.Get(c.Request.Context(), target, header)
	if err != nil {
		if status := scanhub.StatusCode(err); status != 0 {
			c.JSON(status, gin.H{
				"error":   fmt.Sprintf("Failed to fetch HTML: %d", status),
				"details": http.StatusText(status),
			})
			return
		}
		if scanhub.ErrorCode(err) == scanhub.EINVALID {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgProxyNotAllowed})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to proxy HTML",
			"details": err.Error(),
		})
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64String(html))
	setProxyCORS(c, http.MethodGet)
	c.Header("Cache-Control", "public, max-age=300")
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleProxyOptions(c *gin.Context) {
	setProxyCORS(c, "GET, OPTIONS")
	c.Status(http.StatusOK)
}
