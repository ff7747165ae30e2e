// Package sitemap writes the auxiliary publication artifact: a sitemap.xml
// listing every published work document, plus an optional best-effort nudge
// to search engine ping endpoints.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// Write generates <repoDir>/sitemap.xml from the document paths (repo
// relative) under baseURL, stamped with today's date.
func Write(repoDir, baseURL string, docPaths []string, today time.Time) error {
	lastMod := today.Format("2006-01-02")
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]urlEntry, 0, len(docPaths)),
	}
	for _, doc := range docPaths {
		set.URLs = append(set.URLs, urlEntry{
			Loc:     baseURL + "/" + filepath.ToSlash(doc),
			LastMod: lastMod,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sitemap: %w", err)
	}
	data := append([]byte(xml.Header), body...)
	data = append(data, '\n')

	path := filepath.Join(repoDir, "sitemap.xml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	return nil
}

var pingEndpoints = []string{
	"https://www.google.com/ping",
	"https://www.bing.com/ping",
}

// Ping nudges search engines about the published sitemap. Strictly
// best-effort: failures are swallowed, a short timeout bounds the run.
func Ping(ctx context.Context, baseURL string) {
	sitemapURL := baseURL + "/sitemap.xml"
	client := &http.Client{Timeout: 10 * time.Second}
	for _, endpoint := range pingEndpoints {
		target := endpoint + "?sitemap=" + url.QueryEscape(sitemapURL)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			continue
		}
		resp, err := client.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
	}
}
