package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ralt/rdbdiff/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL   = "https://rdb.altlinux.org/api"
	DefaultTimeout   = 5 * time.Minute
	DefaultUserAgent = "rdbdiff"

	branchTreePath     = "/export/branch_tree"
	branchPackagesPath = "/export/branch_binary_packages/"
)

// RDBClient fetches branch listings from the rdb export API. The list of
// known branches is requested once per client and reused.
type RDBClient struct {
	baseURL   string
	userAgent string
	client    *http.Client

	mu       sync.Mutex
	branches []string
}

// NewRDBClient creates a client for the rdb API rooted at baseURL
func NewRDBClient(baseURL, userAgent string, timeout time.Duration) *RDBClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RDBClient{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Fetch implements Fetcher. The branch must be one rdb knows about.
func (c *RDBClient) Fetch(ctx context.Context, branch string) (*models.Listing, error) {
	if branch == "" {
		return nil, &models.DiffError{
			Type: models.ErrFetch,
			Err:  fmt.Errorf("branch name is empty"),
		}
	}

	known, err := c.Branches(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(known, branch) {
		return nil, &models.DiffError{
			Type:   models.ErrFetch,
			Branch: branch,
			Err:    fmt.Errorf("unknown branch, rdb knows: %s", strings.Join(known, ", ")),
		}
	}

	logrus.Infof("Fetching packages for branch %s", branch)
	body, err := c.get(ctx, branchPackagesPath+url.PathEscape(branch))
	if err != nil {
		return nil, &models.DiffError{
			Type:   models.ErrFetch,
			Branch: branch,
			Err:    err,
		}
	}

	listing, err := DecodeListing(branch, body)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Fetched %d packages for branch %s", len(listing.Packages), branch)
	return listing, nil
}

// Branches returns the branch names rdb serves
func (c *RDBClient) Branches(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.branches != nil {
		return c.branches, nil
	}

	logrus.Debug("Fetching branch list")
	body, err := c.get(ctx, branchTreePath)
	if err != nil {
		return nil, &models.DiffError{
			Type: models.ErrFetch,
			Err:  fmt.Errorf("failed to fetch branch list: %w", err),
		}
	}

	var tree struct {
		Branches []string `json:"branches"`
	}
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, &models.DiffError{
			Type: models.ErrEncoding,
			Err:  fmt.Errorf("failed to decode branch list: %w", err),
		}
	}
	if len(tree.Branches) == 0 {
		return nil, &models.DiffError{
			Type: models.ErrFetch,
			Err:  fmt.Errorf("rdb returned an empty branch list"),
		}
	}

	logrus.Debugf("rdb knows %d branches", len(tree.Branches))
	c.branches = tree.Branches
	return c.branches, nil
}

func (c *RDBClient) get(ctx context.Context, path string) ([]byte, error) {
	target := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	logrus.Debugf("GET %s: %d", target, resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http response failed with code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
