package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageRef(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "front.png")
	require.NoError(t, os.WriteFile(local, []byte("png"), 0o600))

	cases := []struct {
		name string
		ref  string
		want string
	}{
		{"https", "https://placehold.co/600x400", "https://placehold.co/600x400"},
		{"empty", "", PlaceholderImage},
		{"no host", "https:///x.png", PlaceholderImage},
		{"unsupported scheme", "ftp://example.com/x.png", PlaceholderImage},
		{"local file", local, local},
		{"file url", "file://" + local, "file://" + local},
		{"missing file", filepath.Join(dir, "gone.png"), PlaceholderImage},
		{"directory", dir, PlaceholderImage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ImageRef(tc.ref, ""))
		})
	}
	require.Equal(t, "custom.png", ImageRef("", "custom.png"))
}
