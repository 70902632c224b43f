package zoom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/georgeb3/zoom-recording-downloader/internal/logging"
)

// RequestBuilder constructs an outbound request bound to the given access
// token. The invoker calls it again with a fresh token when a retry after
// refresh is needed, so builders must be safe to invoke twice.
type RequestBuilder func(token string) (*http.Request, error)

// Invoker executes Zoom API requests and transparently recovers from token
// expiry. All outbound calls (catalog listing and raw file downloads alike)
// funnel through Do so the refresh-and-retry logic exists in exactly one
// place.
//
// The invoker owns the shared credential. Execution is single-threaded by
// construction, so the credential needs no locking.
type Invoker struct {
	httpClient *http.Client
	tokens     *TokenProvider
	cred       Credential
	logger     *slog.Logger
}

// NewInvoker creates an invoker around the given token provider. The HTTP
// client deliberately carries no timeout of its own; recordings can be
// arbitrarily large and cancellation flows through the request context.
func NewInvoker(tokens *TokenProvider, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{
		httpClient: &http.Client{},
		tokens:     tokens,
		logger:     logger,
	}
}

// Do executes the request produced by build with the current credential.
// On a 401 carrying Zoom's expired-token code it refreshes the credential
// and retries the request exactly once; a second expired-token signal is an
// *AuthError. Any other non-2xx response is returned as a *RequestError
// with the response body drained. A successful response is returned with
// its body open for the caller to consume.
func (inv *Invoker) Do(ctx context.Context, build RequestBuilder) (*http.Response, error) {
	if inv.cred.AccessToken == "" {
		cred, err := inv.tokens.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		inv.cred = cred
	}

	for attempt := 0; ; attempt++ {
		req, err := build(inv.cred.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req = req.WithContext(ctx)

		resp, err := inv.httpClient.Do(req)
		if err != nil {
			return nil, &RequestError{URL: req.URL.Redacted(), Message: err.Error()}
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		apiErr := drainError(resp)

		if resp.StatusCode == http.StatusUnauthorized && apiErr.Code == codeTokenExpired {
			if attempt > 0 {
				return nil, &AuthError{
					Operation: "request retry",
					Err:       fmt.Errorf("token still expired after refresh: %s", apiErr.Message),
				}
			}
			inv.logger.Info("access token expired, refreshing",
				logging.Operation("token.refresh"))
			cred, err := inv.tokens.Fetch(ctx)
			if err != nil {
				return nil, err
			}
			inv.cred = cred
			continue
		}

		return nil, &RequestError{
			URL:        req.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Code:       apiErr.Code,
			Message:    apiErr.Message,
		}
	}
}

// GetJSON issues an authenticated GET against rawURL with the given query
// parameters and decodes the response body into out.
func (inv *Invoker) GetJSON(ctx context.Context, rawURL string, query url.Values, out any) error {
	resp, err := inv.Do(ctx, func(token string) (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.URL.RawQuery = query.Encode()
		req.Header.Set("Authorization", "Bearer "+token)
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", rawURL, err)
	}
	return nil
}

// AccessToken exposes the current token for callers that must embed it in a
// URL (Zoom download links accept an access_token query parameter).
func (inv *Invoker) AccessToken() string {
	return inv.cred.AccessToken
}

// drainError reads and closes a non-2xx response body, extracting the Zoom
// error envelope when the body is JSON.
func drainError(resp *http.Response) apiError {
	defer resp.Body.Close()
	var apiErr apiError
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	_ = json.Unmarshal(body, &apiErr)
	if apiErr.Message == "" {
		apiErr.Message = string(body)
	}
	return apiErr
}
