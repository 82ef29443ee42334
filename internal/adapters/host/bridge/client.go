package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bnema/appearance-snapshots/internal/cache"
	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/logging"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/charmbracelet/log"
)

const maxErrorBody = 4 << 10

// Capabilities is what the host bridge reported at probe time.
type Capabilities struct {
	FileRedirection bool `json:"fileRedirection"`
	Collections     bool `json:"collections"`
	Equipment       bool `json:"equipment"`
	BoneScaling     bool `json:"boneScaling"`
	PeerSync        bool `json:"peerSync"`
}

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *log.Logger
}

// Client talks to the host bridge. Each collaborator is exposed as its own view
// because they share method names.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
	caps    *cache.Value[Capabilities]

	mu       sync.Mutex
	handlers map[uint64]ports.SpecialModeExitHandler
	nextID   uint64
}

func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("bridge url is empty")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL:  baseURL,
		http:     httpClient,
		logger:   logging.OrDiscard(opts.Logger),
		handlers: map[uint64]ports.SpecialModeExitHandler{},
	}
	c.caps = cache.New(0, nil, c.probe)

	return c, nil
}

// Capabilities returns the cached probe result, probing on first use.
func (c *Client) Capabilities(ctx context.Context) Capabilities {
	caps, _ := c.caps.Get(ctx)
	return caps
}

// Reprobe drops the cached capability set, e.g. after the host reloaded plugins.
func (c *Client) Reprobe(ctx context.Context) Capabilities {
	caps, _ := c.caps.Refresh(ctx)
	return caps
}

// probe never fails: an unreachable bridge means every capability is absent.
func (c *Client) probe(ctx context.Context) (Capabilities, error) {
	var caps Capabilities
	if err := c.do(ctx, http.MethodGet, "/capabilities", nil, &caps); err != nil {
		c.logger.Warn("host bridge unavailable, all collaborators treated as absent", "url", c.baseURL, "err", err)
		return Capabilities{}, nil
	}
	return caps, nil
}

func (c *Client) FileRedirection() ports.FileRedirection { return fileRedirection{c: c} }

func (c *Client) Collections() ports.CollectionResolver { return collections{c: c} }

func (c *Client) Equipment() ports.Equipment { return equipment{c: c} }

func (c *Client) BoneScaling() ports.BoneScaling { return boneScaling{c: c} }

func (c *Client) PeerSync() ports.PeerSync { return peerSync{c: c} }

func (c *Client) Actors() ports.ActorTable { return actorTable{c: c} }

// call posts req to path when the capability is present.
func (c *Client) call(ctx context.Context, present bool, path string, req any, resp any) error {
	if !present {
		return fmt.Errorf("%s: %w", path, domain.ErrCollaboratorUnavailable)
	}
	return c.do(ctx, http.MethodPost, path, req, resp)
}

func (c *Client) do(ctx context.Context, method, path string, req any, resp any) error {
	var body io.Reader
	if req != nil {
		payload, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%s: %w: %w", path, domain.ErrCollaboratorUnavailable, err)
	}
	defer httpResp.Body.Close()

	switch {
	case httpResp.StatusCode == http.StatusNotFound || httpResp.StatusCode == http.StatusServiceUnavailable:
		return fmt.Errorf("%s: %w (status %d)", path, domain.ErrCollaboratorUnavailable, httpResp.StatusCode)
	case httpResp.StatusCode < 200 || httpResp.StatusCode > 299:
		raw, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBody))
		return fmt.Errorf("%s: unexpected status %d: %s", path, httpResp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if resp == nil {
		_, _ = io.Copy(io.Discard, httpResp.Body)
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	return nil
}
