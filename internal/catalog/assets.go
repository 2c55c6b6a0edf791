package catalog

import (
	"net/url"
	"os"
	"strings"
)

// PlaceholderImage is substituted for image references that cannot be used.
const PlaceholderImage = "https://placehold.co/600x400/C0C0C0/white?text=Image+Not+Found"

// ImageRef returns ref when it is an absolute http(s) URL or a readable local
// file, and placeholder otherwise. An empty placeholder means
// PlaceholderImage.
func ImageRef(ref, placeholder string) string {
	if placeholder == "" {
		placeholder = PlaceholderImage
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return placeholder
	}
	u, err := url.Parse(ref)
	if err != nil {
		return placeholder
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return placeholder
		}
		return ref
	case "file":
		if localFile(u.Path) {
			return ref
		}
	case "":
		if localFile(ref) {
			return ref
		}
	}
	return placeholder
}

func localFile(path string) bool {
	if path == "" {
		return false
	}
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
