/*
Package ledger is a client for the ledger bootstrap service of the test
network. The service registers seeds for new trust anchors and distributes
the genesis transactions of the pool.
*/
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// errorMessageMaxLength is the maximum length of the response body we will
// include into the generated error message
const errorMessageMaxLength = 80

const (
	RegisterPath = "register"
	GenesisPath  = "genesis"

	// RoleTrustAnchor lets the registered DID write foundational
	// transactions like other DIDs.
	RoleTrustAnchor = "TRUST_ANCHOR"

	DefaultTimeout = 30 * time.Second
)

// SeedRequest is the body of the seed registration.
type SeedRequest struct {
	Role string `json:"role"`
	Seed string `json:"seed"`
}

// SeedResponse is the reply of the seed registration. The seed in it is the
// one the ledger registered and it overrides the requested one.
type SeedResponse struct {
	Seed string `json:"seed"`
}

type Client struct {
	baseURL string
	c       *http.Client
}

// New returns a client for the ledger service at baseURL. Every request is
// bounded by timeout, zero means DefaultTimeout.
func New(baseURL string, timeout time.Duration) (c *Client, err error) {
	defer err2.Handle(&err, "ledger client")

	if timeout == 0 {
		timeout = DefaultTimeout
	}
	u := try.To1(url.Parse(baseURL))
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("ledger URL must be absolute: %q", baseURL)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		c:       &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) endpoint(p string) string {
	return c.baseURL + "/" + p
}

// Register registers seed with the role and returns the seed the ledger
// assigned.
func (c *Client) Register(ctx context.Context, role, seed string) (s string, err error) {
	defer err2.Handle(&err, "register %s", role)

	body := try.To1(json.Marshal(SeedRequest{Role: role, Seed: seed}))
	request := try.To1(http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint(RegisterPath), bytes.NewReader(body)))
	request.Header.Set("Content-Type", "application/json")

	data := try.To1(c.do(request))

	var r SeedResponse
	try.To(json.Unmarshal(data, &r))
	if r.Seed == "" {
		return "", errors.New("ledger returned an empty seed")
	}
	return r.Seed, nil
}

// Genesis downloads the genesis transactions of the pool as is.
func (c *Client) Genesis(ctx context.Context) (data []byte, err error) {
	defer err2.Handle(&err, "download genesis")

	request := try.To1(http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint(GenesisPath), nil))
	return c.do(request)
}

func (c *Client) do(request *http.Request) (data []byte, err error) {
	defer err2.Handle(&err)

	glog.V(3).Infoln(request.Method, request.URL)
	response := try.To1(c.c.Do(request))
	defer func() {
		closeErr := response.Body.Close()
		if closeErr != nil {
			glog.Warningln("body.Close: ", closeErr)
		}
	}()

	data = try.To1(io.ReadAll(response.Body))
	return checkHTTPStatus(response, data)
}

// checkHTTPStatus checks the status code and gets the server message
func checkHTTPStatus(response *http.Response, data []byte) ([]byte, error) {
	if response.StatusCode < 200 || response.StatusCode > 299 {
		glog.Warning("http code:", response.Status)
		contentType := response.Header.Get("Content-type")
		if strings.HasPrefix(contentType, "text/plain") {
			l := len(data)
			return nil, fmt.Errorf("%s: %s",
				response.Status, data[0:min(errorMessageMaxLength, l)])
		}
		return nil, fmt.Errorf("%v", response.Status)
	}
	return data, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
