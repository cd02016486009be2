package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"chartmeta/internal/musicbrainz"
)

const checkTimeout = 15 * time.Second

// CheckEndpoint verifies that url answers a GET with a non-error status.
func CheckEndpoint(ctx context.Context, name string, client *http.Client, url string) Result {
	if client == nil {
		client = http.DefaultClient
	}
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", url, err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (%s)", url, summarizeError(err))}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return Result{Name: name, Detail: fmt.Sprintf("%s (status %d)", url, resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (status %d)", url, resp.StatusCode)}
}

// CheckMusicBrainz runs a throwaway release search to confirm the service
// accepts our User-Agent.
func CheckMusicBrainz(ctx context.Context, searcher musicbrainz.Searcher) Result {
	const name = "MusicBrainz"

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	resp, err := searcher.SearchReleases(checkCtx, "release:\"Abbey Road\"")
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("search ok (%d candidates)", len(resp.Releases))}
}

// CheckDirectoryAccess verifies that the directory is writable. A missing
// directory passes when its nearest existing ancestor is writable, since the
// log file setup creates it on demand.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
		}
		ancestor, ok := existingAncestor(path)
		if !ok {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		if detail, ok := writableDir(ancestor); !ok {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %s)", path, ancestor, detail)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if detail, ok := writableDir(path); !ok {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s)", path, detail)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
}

func existingAncestor(path string) (string, bool) {
	dir := filepath.Clean(path)
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
		if _, err := os.Stat(dir); err == nil {
			return dir, true
		} else if !os.IsNotExist(err) {
			return "", false
		}
	}
}

func writableDir(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Sprintf("stat: %v", err), false
	}
	if !info.IsDir() {
		return "is not a directory", false
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Sprintf("insufficient permissions: %v", err), false
	}
	return "", true
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	return err.Error()
}
