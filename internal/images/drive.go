// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"net/url"
	"slices"
	"strings"
)

// DirectURL rewrites a Drive share link into its direct-download form.
// Both "/open?id=ID" and "/file/d/ID/view" shapes are recognized; any other
// URL is returned unchanged.
func DirectURL(raw string) string {
	if !strings.Contains(raw, driveHost) {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if id := u.Query().Get("id"); id != "" {
		return directDownload(id)
	}

	parts := strings.Split(u.Path, "/")
	if slices.Contains(parts, "file") {
		if i := slices.Index(parts, "d"); i >= 0 && i+1 < len(parts) && parts[i+1] != "" {
			return directDownload(parts[i+1])
		}
	}

	return raw
}

func directDownload(id string) string {
	return driveDownloadBase + "?export=download&id=" + url.QueryEscape(id)
}
