package wbclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/ratelimit"
	"github.com/vfg2006/seller-analytics-bot/internal/config"
)

// Client expõe os endpoints do marketplace usados na coleta.
// Cada chamada passa pelo limitador e pela política de retentativa do endpoint.
type Client interface {
	GetOrders(ctx context.Context, cred wbdomain.Credential, dateFrom time.Time, flag wbdomain.FeedFlag) (gjson.Result, error)
	GetSales(ctx context.Context, cred wbdomain.Credential, dateFrom time.Time, flag wbdomain.FeedFlag) (gjson.Result, error)
	GetReportDetail(ctx context.Context, cred wbdomain.Credential, params ReportDetailParams) (gjson.Result, error)
	GetFunnelProducts(ctx context.Context, cred wbdomain.Credential, request FunnelRequest) (gjson.Result, error)
}

// Response é a resposta bruta de uma tentativa
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

type WBClient struct {
	httpClient *http.Client
	cfg        config.Wildberries
	retrier    *Retrier
}

type Option func(*WBClient)

// WithHTTPClient substitui o http.Client padrão
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *WBClient) {
		c.httpClient = httpClient
	}
}

// WithSleep substitui a espera entre tentativas
func WithSleep(sleep SleepFunc) Option {
	return func(c *WBClient) {
		c.retrier.sleep = sleep
	}
}

func NewClient(cfg *config.Config, limiter *ratelimit.Limiter, opts ...Option) *WBClient {
	client := &WBClient{
		httpClient: &http.Client{},
		cfg:        cfg.Wildberries,
		retrier:    NewRetrier(limiter),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Call executa uma única tentativa e classifica o resultado
func (c *WBClient) Call(ctx context.Context, method, url, credential string, body []byte, timeout time.Duration) (*Response, error) {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(callCtx, method, url, reader)
	if err != nil {
		return nil, &wbdomain.APIError{Kind: wbdomain.KindNetwork, Detail: fmt.Sprintf("erro ao criar a requisição: %v", err)}
	}

	req.Header.Set("Authorization", credential)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, br")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	payload, err := readBody(resp)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	response := &Response{Status: resp.StatusCode, Header: resp.Header, Body: payload}

	if apiErr := classifyStatus(response); apiErr != nil {
		return nil, apiErr
	}

	return response, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "gzip":
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}

func classifyStatus(resp *Response) *wbdomain.APIError {
	status := resp.Status
	if status >= 200 && status < 300 {
		return nil
	}

	detail := strings.TrimSpace(string(resp.Body))
	if len(detail) > 300 {
		detail = detail[:300]
	}

	switch {
	case status == http.StatusUnauthorized:
		return &wbdomain.APIError{Kind: wbdomain.KindUnauthorised, Status: status, Detail: detail}
	case status == http.StatusForbidden:
		return &wbdomain.APIError{Kind: wbdomain.KindForbidden, Status: status, Detail: detail}
	case status == http.StatusTooManyRequests:
		return &wbdomain.APIError{
			Kind:       wbdomain.KindRateLimited,
			Status:     status,
			RetryAfter: parseRetryAfter(resp.Header),
			Detail:     detail,
		}
	case status == http.StatusBadRequest:
		return &wbdomain.APIError{Kind: wbdomain.KindBadRequest, Status: status, Detail: detail}
	default:
		return &wbdomain.APIError{Kind: wbdomain.KindServerError, Status: status, Detail: detail}
	}
}

func classifyTransportError(parent context.Context, err error) *wbdomain.APIError {
	if parent.Err() != nil {
		return &wbdomain.APIError{Kind: wbdomain.KindCancelled, Detail: parent.Err().Error()}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &wbdomain.APIError{Kind: wbdomain.KindTimeout, Detail: err.Error()}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &wbdomain.APIError{Kind: wbdomain.KindTimeout, Detail: err.Error()}
	}

	return &wbdomain.APIError{Kind: wbdomain.KindNetwork, Detail: err.Error()}
}

func parseRetryAfter(h http.Header) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		v = strings.TrimSpace(h.Get("X-Ratelimit-Retry"))
	}
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

type shape int

const (
	shapeArray shape = iota
	shapeObject
)

// endpointCall descreve uma chamada lógica a um endpoint
type endpointCall struct {
	endpoint string
	method   string
	url      string
	body     []byte
	timeout  time.Duration
	policy   RetryPolicy
	expect   shape
}

func (c *WBClient) execute(ctx context.Context, cred wbdomain.Credential, call endpointCall) (gjson.Result, error) {
	key := ratelimit.Key{Endpoint: call.endpoint, Scope: cred.TenantID}

	resp, err := c.retrier.Do(ctx, key, call.policy, func(ctx context.Context) (*Response, error) {
		return c.Call(ctx, call.method, call.url, cred.Token, call.body, call.timeout)
	})
	if err != nil {
		return gjson.Result{}, err
	}

	return decode(call, resp)
}

func decode(call endpointCall, resp *Response) (gjson.Result, error) {
	body := bytes.TrimSpace(resp.Body)

	// 204 ou corpo vazio significam página vazia
	if resp.Status == http.StatusNoContent || len(body) == 0 || bytes.Equal(body, []byte("null")) {
		if call.expect == shapeArray {
			return gjson.Parse("[]"), nil
		}
		return gjson.Parse("{}"), nil
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &wbdomain.APIError{
			Kind:   wbdomain.KindDecode,
			Status: resp.Status,
			Detail: fmt.Sprintf("%s: resposta não é JSON válido", call.endpoint),
		}
	}

	result := gjson.ParseBytes(body)
	switch call.expect {
	case shapeArray:
		if !result.IsArray() {
			return gjson.Result{}, &wbdomain.APIError{
				Kind:   wbdomain.KindDecode,
				Status: resp.Status,
				Detail: fmt.Sprintf("%s: esperado array JSON", call.endpoint),
			}
		}
	case shapeObject:
		if !result.IsObject() {
			return gjson.Result{}, &wbdomain.APIError{
				Kind:   wbdomain.KindDecode,
				Status: resp.Status,
				Detail: fmt.Sprintf("%s: esperado objeto JSON", call.endpoint),
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"endpoint": call.endpoint,
		"bytes":    len(body),
	}).Debug("Resposta do marketplace decodificada")

	return result, nil
}

func (c *WBClient) statisticsPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: c.cfg.StatisticsMaxAttempt, BaseDelay: c.cfg.RetryBaseDelay}
}

func (c *WBClient) funnelPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: c.cfg.FunnelMaxAttempt, BaseDelay: c.cfg.RetryBaseDelay}
}
