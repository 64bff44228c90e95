// Package api implementa el cliente HTTP del backend del ERP y los adaptadores de cada recurso.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultBaseURL host del backend en producción.
const DefaultBaseURL = "https://bakeryerpbackend.onrender.com"

const maxResponseBytes = 4 << 20

// TokenSource entrega el access token persistido. Token vacío = petición sin Authorization.
// Lo implementa el almacén de estado de sesión.
type TokenSource interface {
	AccessToken() (string, error)
}

// Observer recibe una observación por cada llamada HTTP (métricas). status 0 = sin respuesta.
type Observer interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Config opciones del cliente.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client cliente HTTP único del backend: URL base fija, timeout y un interceptor
// que adjunta el Bearer token en cada petición.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	observer   Observer
	log        zerolog.Logger
}

// Option configura dependencias opcionales del cliente.
type Option func(*Client)

// WithObserver registra un observador de peticiones.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithHTTPClient reemplaza el *http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger asigna el logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient construye el cliente. Si BaseURL está vacío usa DefaultBaseURL; timeout por defecto 10 s.
func NewClient(cfg Config, tokens TokenSource, opts ...Option) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: URL base inválida: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api: URL base sin esquema o host: %q", raw)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get ejecuta GET path?query y decodifica el cuerpo en out (si out != nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

// GetRaw ejecuta GET y devuelve el cuerpo sin decodificar (para respuestas de forma variable).
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post serializa body a JSON, ejecuta POST y decodifica la respuesta en out (si out != nil).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	raw, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

func decodeInto(raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: deserializar respuesta: %w", err)
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("api: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(method, path, 0, elapsed)
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("api: sin respuesta del servidor")
		return nil, &Error{Kind: KindTransport, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	c.observe(method, path, resp.StatusCode, elapsed)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Method: method, Path: path, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("api: llamada completada")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newServerError(method, path, resp.StatusCode, raw)
	}
	return raw, nil
}

// authorize es el interceptor de petición: lee el token persistido y adjunta el header Bearer.
func (c *Client) authorize(req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.AccessToken()
	if err != nil {
		return fmt.Errorf("api: leer token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) observe(method, path string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, path, status, elapsed)
	}
}
