package fio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prunderground/core/metrics"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to the FIO REST API. A single Client is shared by the process;
// WithAPIKey derives credentialed clients that share its limiter and breaker.
type Client struct {
	cfg     Config
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[response]
	logger  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for upstream failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

type response struct {
	status int
	body   []byte
}

// NewClient creates a gateway for cfg.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg = cfg.withDefaults()
	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cfg.BaseURL = strings.TrimRight(c.cfg.BaseURL, "/")

	c.breaker = gobreaker.NewCircuitBreaker[response](gobreaker.Settings{
		Name:        "fio",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.UpstreamBreakerState.Set(float64(to))
			c.logger.Warn("FIO circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return c
}

// breakerSuccess keeps rejected credentials and client-side statuses from
// tripping the circuit; only upstream unavailability counts.
func breakerSuccess(err error) bool {
	if err == nil || IsAuthentication(err) || errors.Is(err, context.Canceled) {
		return true
	}
	var te *TransientError
	if errors.As(err, &te) && te.StatusCode >= 400 && te.StatusCode < 500 {
		return true
	}
	return false
}

// WithAPIKey returns a client that sends key in the Authorization header.
func (c *Client) WithAPIKey(key string) *Client {
	clone := *c
	clone.apiKey = key
	return &clone
}

// HasAPIKey reports whether the client carries a credential.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// BreakerState returns the current circuit state.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) do(ctx context.Context, label, path string) (response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return response{}, &TransientError{Endpoint: label, Err: err}
	}

	return c.breaker.Execute(func() (response, error) {
		reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.cfg.BaseURL+path, nil)
		if err != nil {
			return response{}, &TransientError{Endpoint: label, Err: err}
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", c.apiKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return response{}, &TransientError{Endpoint: label, Err: err}
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return response{}, &TransientError{Endpoint: label, Err: err}
			}
			return response{status: resp.StatusCode, body: body}, nil
		case http.StatusNoContent:
			return response{status: resp.StatusCode}, nil
		case http.StatusUnauthorized:
			return response{}, &AuthenticationError{Endpoint: label}
		default:
			_, _ = io.Copy(io.Discard, resp.Body)
			return response{}, &TransientError{Endpoint: label, StatusCode: resp.StatusCode}
		}
	})
}

// get performs a request and decodes the body into T. label is the endpoint
// template used for metrics and errors.
func get[T any](ctx context.Context, c *Client, label, path string) Result[T] {
	return call(ctx, c, label, path, decodeOne[T])
}

// getList performs a request for a JSON array and decodes each record on its
// own. Malformed records are skipped and reported through Result.Skipped.
func getList[E any](ctx context.Context, c *Client, label, path string) Result[[]E] {
	return call(ctx, c, label, path, decodeList[E])
}

type decoder[T any] func(c *Client, label string, body []byte) Result[T]

func call[T any](ctx context.Context, c *Client, label, path string, decode decoder[T]) Result[T] {
	start := time.Now()
	res := fetch(ctx, c, label, path, decode)
	metrics.RecordUpstreamRequest(label, res.Kind().String(), time.Since(start))
	if res.Kind() == KindTransient {
		c.logger.Debug("FIO request failed", zap.String("endpoint", label), zap.Error(res.Err()))
	}
	return res
}

func fetch[T any](ctx context.Context, c *Client, label, path string, decode decoder[T]) Result[T] {
	resp, err := c.do(ctx, label, path)
	if err != nil {
		if IsAuthentication(err) {
			return authFailed[T](label)
		}
		var te *TransientError
		if errors.As(err, &te) {
			return transient[T](te)
		}
		// Open or half-open circuit rejections
		return transient[T](&TransientError{Endpoint: label, Err: err})
	}

	if resp.status == http.StatusNoContent {
		return empty[T]()
	}
	return decode(c, label, resp.body)
}

func decodeOne[T any](_ *Client, label string, body []byte) Result[T] {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return transient[T](&TransientError{Endpoint: label, Err: fmt.Errorf("decode response: %w", err)})
	}
	return payload(v)
}

func decodeList[E any](c *Client, label string, body []byte) Result[[]E] {
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return transient[[]E](&TransientError{Endpoint: label, Err: fmt.Errorf("decode response: %w", err)})
	}

	out := make([]E, 0, len(records))
	var skipped []error
	for i, record := range records {
		var v E
		if err := json.Unmarshal(record, &v); err != nil {
			derr := &DataError{Record: fmt.Sprintf("%s[%d]", label, i), Reason: err.Error()}
			c.logger.Warn("Skipping malformed FIO record", zap.String("endpoint", label), zap.Error(derr))
			skipped = append(skipped, derr)
			continue
		}
		out = append(out, v)
	}

	res := payload(out)
	res.skipped = skipped
	return res
}

func escape(s string) string {
	return url.PathEscape(s)
}

// --- Public endpoints ---

// AllMaterials returns every material in the game.
func (c *Client) AllMaterials(ctx context.Context) Result[[]Material] {
	return getList[Material](ctx, c, "/material/allmaterials", "/material/allmaterials")
}

// Material returns a single material by ticker.
func (c *Client) Material(ctx context.Context, ticker string) Result[Material] {
	return get[Material](ctx, c, "/material/{ticker}", "/material/"+escape(ticker))
}

// AllBuildings returns every building type.
func (c *Client) AllBuildings(ctx context.Context) Result[[]Building] {
	return getList[Building](ctx, c, "/building/allbuildings", "/building/allbuildings")
}

// AllPlanets returns every planet.
func (c *Client) AllPlanets(ctx context.Context) Result[[]Planet] {
	return getList[Planet](ctx, c, "/planet/allplanets", "/planet/allplanets")
}

// BuildingRecipes returns what each building can produce.
func (c *Client) BuildingRecipes(ctx context.Context) Result[[]BuildingRecipe] {
	return getList[BuildingRecipe](ctx, c, "/rain/buildingrecipes", "/rain/buildingrecipes")
}

// RecipeOutputs returns the material outputs of every recipe.
func (c *Client) RecipeOutputs(ctx context.Context) Result[[]RecipeOutput] {
	return getList[RecipeOutput](ctx, c, "/rain/recipeoutputs", "/rain/recipeoutputs")
}

// ExchangeAll returns the current quote of every ticker on every exchange.
func (c *Client) ExchangeAll(ctx context.Context) Result[[]ExchangeQuote] {
	return getList[ExchangeQuote](ctx, c, "/exchange/all", "/exchange/all")
}

// Exchange returns a single quote, e.g. ticker RAT on exchange NC1.
func (c *Client) Exchange(ctx context.Context, ticker, code string) Result[ExchangeQuote] {
	return get[ExchangeQuote](ctx, c, "/exchange/{ticker.code}", "/exchange/"+escape(ticker+"."+code))
}

// CompanyByCode returns company details by company code.
func (c *Client) CompanyByCode(ctx context.Context, code string) Result[Company] {
	return get[Company](ctx, c, "/company/code/{code}", "/company/code/"+escape(code))
}

// --- Credentialed endpoints ---

// UserPlanetBuildings returns the buildings a user has constructed.
func (c *Client) UserPlanetBuildings(ctx context.Context, username string) Result[[]UserPlanetBuilding] {
	return getList[UserPlanetBuilding](ctx, c, "/rain/userplanetbuildings/{username}", "/rain/userplanetbuildings/"+escape(username))
}

// UserSites returns a user's sites with their buildings.
func (c *Client) UserSites(ctx context.Context, username string) Result[[]Site] {
	return getList[Site](ctx, c, "/sites/{username}", "/sites/"+escape(username))
}

// UserPlanets returns the planets a user has bases on.
func (c *Client) UserPlanets(ctx context.Context, username string) Result[[]UserPlanet] {
	return getList[UserPlanet](ctx, c, "/rain/userplanets/{username}", "/rain/userplanets/"+escape(username))
}

// UserInfo returns user and company details.
func (c *Client) UserInfo(ctx context.Context, username string) Result[UserInfo] {
	return get[UserInfo](ctx, c, "/user/{username}", "/user/"+escape(username))
}

// UserProduction returns a user's production lines.
func (c *Client) UserProduction(ctx context.Context, username string) Result[[]ProductionLine] {
	return getList[ProductionLine](ctx, c, "/production/{username}", "/production/"+escape(username))
}

// UserStorage returns every storage a user owns.
func (c *Client) UserStorage(ctx context.Context, username string) Result[[]Storage] {
	return getList[Storage](ctx, c, "/storage/{username}", "/storage/"+escape(username))
}

// UserWarehouses returns a user's rented warehouses.
func (c *Client) UserWarehouses(ctx context.Context, username string) Result[[]Warehouse] {
	return getList[Warehouse](ctx, c, "/sites/warehouses/{username}", "/sites/warehouses/"+escape(username))
}

// VerifyCredential checks the client's API key against username's sites.
// It returns *AuthenticationError when the key is rejected and *TransientError
// when verification could not complete; callers keep the stored key in that case.
// An empty sites response counts as verified.
func (c *Client) VerifyCredential(ctx context.Context, username string) (*Account, error) {
	sites := c.UserSites(ctx, username)
	if err := sites.Err(); err != nil {
		return nil, err
	}

	account := &Account{Username: username, Sites: len(sites.Value())}

	info := c.UserInfo(ctx, username)
	switch info.Kind() {
	case KindPayload:
		account.CompanyCode = info.Value().CompanyCode
		account.CompanyName = info.Value().CompanyName
	case KindAuthFailed:
		return nil, info.Err()
	case KindTransient:
		// Company details are optional once the key is accepted
		c.logger.Warn("Could not fetch FIO user info", zap.String("username", username), zap.Error(info.Err()))
	}

	return account, nil
}
