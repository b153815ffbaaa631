// Package api is the HTTP+JSON client for the marketplace backend. All
// business logic (pricing, inventory, payments, authentication) lives
// server-side; this package only shapes requests and decodes responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/relove-market/storefront/internal/errors"
	"github.com/relove-market/storefront/internal/log"
	"github.com/relove-market/storefront/internal/otel"
	"github.com/relove-market/storefront/internal/session"
)

type Client struct {
	httpClient *http.Client
	session    *session.Session
	validate   *validator.Validate
	baseUrl    string
}

func NewClient(baseUrl string, timeout time.Duration, sess *session.Session) *Client {
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		session:  sess,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// do sends one request: JSON body when payload is non-nil, bearer token
// when a session is active, request id for correlation. Any non-2xx
// response is decoded for its message field and returned as ApiError;
// 2xx bodies are decoded into out when out is non-nil.
func (cl *Client) do(
	c context.Context,
	method string,
	path string,
	query url.Values,
	payload interface{},
	out interface{},
) error {
	c, span := otel.Tracer.Start(c, "Client do")
	defer span.End()

	requestId := uuid.NewString()
	requestUrl := cl.baseUrl + path
	if len(query) > 0 {
		requestUrl += "?" + query.Encode()
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Client do").
		Str(log.KEY_REQUEST_ID, requestId).
		Str(log.KEY_REQUEST_METHOD, method).
		Str(log.KEY_REQUEST_URL, requestUrl).
		Logger()

	var body io.Reader
	if payload != nil {
		logger = logger.With().Str(log.KEY_PROCESS, "marshaling request body").Logger()
		logger.Trace().Msg("marshaling request body")
		encoded, err := json.Marshal(payload)
		if err != nil {
			err = fmt.Errorf("failed marshaling request body with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		body = bytes.NewReader(encoded)
	}

	logger = logger.With().Str(log.KEY_PROCESS, "creating request").Logger()
	logger.Trace().Msg("creating request")
	req, err := http.NewRequestWithContext(c, method, requestUrl, body)
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestId)
	if auth := cl.session.AuthorizationHeader(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	logger = logger.With().Str(log.KEY_PROCESS, "sending request").Logger()
	logger.Trace().Msg("sending request")
	resp, err := cl.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()
	logger = logger.With().Int(log.KEY_STATUS_CODE, resp.StatusCode).Logger()
	logger.Trace().Msg("received response")

	return cl.decode(c, resp, out)
}

// doMultipart uploads local files under the given form field.
func (cl *Client) doMultipart(
	c context.Context,
	path string,
	field string,
	filenames []string,
	out interface{},
) error {
	c, span := otel.Tracer.Start(c, "Client doMultipart")
	defer span.End()

	requestId := uuid.NewString()
	requestUrl := cl.baseUrl + path

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Client doMultipart").
		Str(log.KEY_REQUEST_ID, requestId).
		Str(log.KEY_REQUEST_URL, requestUrl).
		Int("files", len(filenames)).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "building multipart body").Logger()
	logger.Trace().Msg("building multipart body")
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, filename := range filenames {
		file, err := os.Open(filename)
		if err != nil {
			err = fmt.Errorf("failed opening file=%s with error=%w", filename, err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		part, err := writer.CreateFormFile(field, filepath.Base(filename))
		if err == nil {
			_, err = io.Copy(part, file)
		}
		file.Close()
		if err != nil {
			err = fmt.Errorf("failed writing file=%s with error=%w", filename, err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
	}
	err := writer.Close()
	if err != nil {
		err = fmt.Errorf("failed closing multipart writer with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(log.KEY_PROCESS, "sending request").Logger()
	logger.Trace().Msg("sending request")
	req, err := http.NewRequestWithContext(c, http.MethodPost, requestUrl, &buf)
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Request-Id", requestId)
	if auth := cl.session.AuthorizationHeader(); auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := cl.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()
	logger = logger.With().Int(log.KEY_STATUS_CODE, resp.StatusCode).Logger()
	logger.Trace().Msg("received response")

	return cl.decode(c, resp, out)
}

func (cl *Client) decode(c context.Context, resp *http.Response, out interface{}) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Client decode").
		Int(log.KEY_STATUS_CODE, resp.StatusCode).
		Logger()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The backend puts a human-readable message field in error
		// bodies; anything unparseable falls back to a generic message.
		errBody := struct {
			Message string `json:"message"`
		}{}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		err := errors.NewApiError(resp.StatusCode, errBody.Message)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed reading response body with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	err = json.Unmarshal(raw, out)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling response body with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}
