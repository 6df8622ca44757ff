package fitapi

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

	"github.com/2beens/fitmentor/internal/telemetry/metrics"
	"github.com/2beens/fitmentor/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"

	CalculateCaloriesPath = "/calculate-calories"
	SuggestWorkoutPath    = "/suggest-workout"
	ExercisesPath         = "/exercises"

	exercisesCacheKey   = "exercises::all"
	maxResponseBodySize = 5 * 1024 * 1024
)

// Client talks to the remote calculation service.
type Client struct {
	baseURL              string
	httpClient           *http.Client
	cache                *freecache.Cache
	exercisesCacheExpire int // seconds
	metricsManager       *metrics.Manager
}

func NewClient(
	baseURL string,
	httpClient *http.Client,
	exercisesCacheExpire time.Duration,
	metricsManager *metrics.Manager,
) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	// freecache rejects entries over 1/1024 of its size, the exercise
	// database has to fit in one entry
	megabyte := 1024 * 1024
	cacheSize := 50 * megabyte

	return &Client{
		baseURL:              strings.TrimRight(baseURL, "/"),
		httpClient:           httpClient,
		cache:                freecache.NewCache(cacheSize),
		exercisesCacheExpire: int(exercisesCacheExpire.Seconds()),
		metricsManager:       metricsManager,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) CalculateCalories(ctx context.Context, req CalorieRequest) (*CalorieResponse, error) {
	resp := &CalorieResponse{}
	if err := c.PostJSON(ctx, CalculateCaloriesPath, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) SuggestWorkout(ctx context.Context, req WorkoutRequest) (*WorkoutResponse, error) {
	resp := &WorkoutResponse{}
	if err := c.PostJSON(ctx, SuggestWorkoutPath, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// PostJSON sends payload as JSON to the endpoint under the base URL and decodes
// the response body into out. Any non 2xx status is an ErrTransport.
func (c *Client) PostJSON(ctx context.Context, endpointPath string, payload, out any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "fitapi.postJson")
	defer span.End()
	span.SetAttributes(attribute.String("endpoint", endpointPath))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, fmt.Sprintf("%s ok", endpointPath))
		}
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", endpointPath, err)
	}

	respBytes, err := c.do(ctx, http.MethodPost, endpointPath, body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %s", ErrMalformedResponse, endpointPath, err)
	}

	return nil
}

// ListExercises returns the exercise database of the service.
// Answers are cached, the database rarely changes.
func (c *Client) ListExercises(ctx context.Context) (exercises []ExerciseInfo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "fitapi.listExercises")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, fmt.Sprintf("found %d exercises", len(exercises)))
		}
	}()

	if cachedBytes, err := c.cache.Get([]byte(exercisesCacheKey)); err == nil {
		span.SetAttributes(attribute.Bool("exercises.from-cache", true))
		if err = json.Unmarshal(cachedBytes, &exercises); err == nil {
			log.Tracef("found %d exercises in cache", len(exercises))
			return exercises, nil
		}
		log.Errorf("failed to unmarshal exercises from cache: %s", err)
	} else {
		log.Debugf("get exercises from cache: %s; will get them from the service", err)
	}

	respBytes, err := c.do(ctx, http.MethodGet, ExercisesPath, nil)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(respBytes, &exercises); err != nil {
		return nil, fmt.Errorf("%w: decode exercises: %s", ErrMalformedResponse, err)
	}

	if err := c.cache.Set([]byte(exercisesCacheKey), respBytes, c.exercisesCacheExpire); err != nil {
		log.Warnf("failed to write exercises cache (%d bytes): %s", len(respBytes), err)
	} else {
		log.Debugf("exercises cache set, %d exercises", len(exercises))
	}

	return exercises, nil
}

// Ping fetches the service info document from the origin of the base URL.
func (c *Client) Ping(ctx context.Context) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "fitapi.ping")
	defer span.End()

	origin, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	origin.Path = "/"
	origin.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin.String(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%w: ping: %s", ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, resp.Status)
		return &StatusError{Endpoint: "/", StatusCode: resp.StatusCode}
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, endpointPath string, body []byte) (respBytes []byte, err error) {
	if c.metricsManager != nil {
		c.metricsManager.GaugeInFlightBackend.Inc()
		defer c.metricsManager.GaugeInFlightBackend.Dec()
		defer func(begin time.Time) {
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			c.metricsManager.CounterBackendRequests.WithLabelValues(endpointPath, outcome).Inc()
			c.metricsManager.HistogramBackendDuration.WithLabelValues(endpointPath).Observe(time.Since(begin).Seconds())
		}(time.Now())
	}

	endpointURL := c.baseURL + endpointPath
	log.Debugf("calling calculation service: %s %s", method, endpointURL)

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpointURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("new %s request: %w", endpointPath, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http client do: %s", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		return nil, &StatusError{Endpoint: endpointPath, StatusCode: resp.StatusCode}
	}

	respBytes, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %s", ErrTransport, endpointPath, err)
	}

	return respBytes, nil
}
