package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/2beens/fitmentor/internal/form"
	"github.com/2beens/fitmentor/internal/orchestrator"
	"github.com/2beens/fitmentor/internal/view"
	pkgtesting "github.com/2beens/fitmentor/pkg/testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewResponse struct {
	Applied bool                  `json:"applied"`
	View    *view.Node            `json:"view"`
	Notices []orchestrator.Notice `json:"notices"`
}

// send makes a request as the client with the given IP; submissions are
// rate limited per client IP.
func (s *IntegrationTestSuite) send(
	client *http.Client,
	clientIP string,
	method string,
	path string,
	fields url.Values,
) (*http.Response, string) {
	var body io.Reader
	if fields != nil {
		body = strings.NewReader(fields.Encode())
	}
	req, err := http.NewRequestWithContext(context.Background(), method, serverEndpoint+path, body)
	require.NoError(s.T(), err)
	req.Header.Set("X-Real-Ip", clientIP)
	if fields != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := client.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	return resp, string(respBytes)
}

func randomCalorieFields() url.Values {
	return url.Values{
		form.FieldAge:      {strconv.Itoa(gofakeit.Number(18, 80))},
		form.FieldGender:   {gofakeit.RandomString([]string{"male", "female"})},
		form.FieldHeightCm: {fmt.Sprintf("%.1f", gofakeit.Float64Range(150, 200))},
		form.FieldWeightKg: {fmt.Sprintf("%.1f", gofakeit.Float64Range(50, 120))},
		form.FieldActivity: {gofakeit.RandomString([]string{"sedentary", "light", "moderate", "active", "very_active"})},
		form.FieldGoal:     {gofakeit.RandomString([]string{"lose", "maintain", "gain"})},
	}
}

func (s *IntegrationTestSuite) TestCalorieFlow() {
	t := s.T()
	browser := s.newBrowser()
	clientIP := gofakeit.IPv4Address()

	resp, body := s.send(browser, clientIP, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="calorieForm"`)
	assert.NotContains(t, body, `id="calorieResults"`)

	resp, _ = s.send(browser, clientIP, http.MethodPost, "/calories", randomCalorieFields())
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, body = s.send(browser, clientIP, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="calorieResults"`)
	assert.Contains(t, body, "1650.5 kcal")
	assert.Contains(t, body, "154g")
	assert.Contains(t, body, "Eat protein with every meal")

	// imperial input ends up as the same metric request
	resp, _ = s.send(browser, clientIP, http.MethodPost, "/units/imperial", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp, _ = s.send(browser, clientIP, http.MethodPost, "/calories", url.Values{
		form.FieldAge:       {"35"},
		form.FieldGender:    {"female"},
		form.FieldHeightFt:  {"5"},
		form.FieldHeightIn:  {"6"},
		form.FieldWeightLbs: {"140"},
		form.FieldActivity:  {"light"},
		form.FieldGoal:      {"maintain"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body = s.send(browser, clientIP, http.MethodGet, "/", nil)
	assert.Contains(t, body, `class="unit-btn active">Imperial`)
	assert.Contains(t, body, "1650.5 kcal")
}

func (s *IntegrationTestSuite) TestWorkoutFlowAndOverlay() {
	t := s.T()
	browser := s.newBrowser()
	clientIP := gofakeit.IPv4Address()

	resp, _ := s.send(browser, clientIP, http.MethodPost, "/workout", url.Values{
		form.FieldWorkoutGender:   {"male"},
		form.FieldWorkoutGoal:     {"strength"},
		form.FieldExperience:      {"beginner"},
		form.FieldEquipment:       {"barbell", "bodyweight"},
		form.FieldDaysPerWeek:     {"3"},
		form.FieldSessionDuration: {"45"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/#workoutResults", resp.Header.Get("Location"))

	_, body := s.send(browser, clientIP, http.MethodGet, "/", nil)
	assert.Contains(t, body, "Full Body 3x/week")
	assert.Contains(t, body, "Warm-up: 2 x 60%")
	assert.Contains(t, body, "~45 min per session")
	assert.Contains(t, body, "Log every session")
	assert.Contains(t, body, `href="/exercise/0/1"`)

	resp, _ = s.send(browser, clientIP, http.MethodGet, "/exercise/0/1", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = s.send(browser, clientIP, http.MethodGet, "/", nil)
	assert.Contains(t, body, `<h3 id="modalExerciseName">Planks</h3>`)

	resp, _ = s.send(browser, clientIP, http.MethodPost, "/exercise/close", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = s.send(browser, clientIP, http.MethodGet, "/", nil)
	assert.Contains(t, body, `<div id="exerciseModal" class="modal" hidden="">`)

	// other browsers do not see the plan
	_, body = s.send(s.newBrowser(), clientIP, http.MethodGet, "/", nil)
	assert.NotContains(t, body, "Full Body 3x/week")
}

func (s *IntegrationTestSuite) TestBackendDown() {
	t := s.T()
	browser := s.newBrowser()
	clientIP := gofakeit.IPv4Address()

	resp, body := s.send(browser, clientIP, http.MethodPost, "/view/calories", randomCalorieFields())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ok viewResponse
	require.NoError(t, json.Unmarshal([]byte(body), &ok))
	require.True(t, ok.Applied)

	s.failing.Store(true)
	defer s.failing.Store(false)

	resp, body = s.send(browser, clientIP, http.MethodPost, "/view/calories", randomCalorieFields())
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var failed viewResponse
	require.NoError(t, json.Unmarshal([]byte(body), &failed))
	assert.False(t, failed.Applied)
	assert.Equal(t, ok.View, failed.View, "previous result stays")

	var backendNotice *orchestrator.Notice
	for i := range failed.Notices {
		if failed.Notices[i].Kind == orchestrator.NoticeBackendUnavailable {
			backendNotice = &failed.Notices[i]
		}
	}
	require.NotNil(t, backendNotice)
	assert.Contains(t, backendNotice.Message, "make sure the backend server is running")
}

func (s *IntegrationTestSuite) TestSubmitRateLimit() {
	t := s.T()
	browser := s.newBrowser()
	clientIP := gofakeit.IPv4Address()

	for i := 0; i < submitRateLimitPerMin; i++ {
		resp, _ := s.send(browser, clientIP, http.MethodPost, "/view/calories", randomCalorieFields())
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i)
	}

	resp, _ := s.send(browser, clientIP, http.MethodPost, "/view/calories", randomCalorieFields())
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// the limit is per client
	resp, _ = s.send(browser, gofakeit.IPv4Address(), http.MethodPost, "/view/calories", randomCalorieFields())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, rdb := pkgtesting.GetRedisClientAndCtx(t, s.redisPort)
	exists, err := rdb.Exists(ctx, "rate:submit::"+clientIP).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

func (s *IntegrationTestSuite) TestExercisesPage() {
	t := s.T()
	resp, body := s.send(s.newBrowser(), gofakeit.IPv4Address(), http.MethodGet, "/exercises", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "2 exercises")
	assert.Contains(t, body, "Squat")
	assert.Contains(t, body, "Planks")
}

func (s *IntegrationTestSuite) TestMetrics() {
	t := s.T()
	resp, err := http.Get(fmt.Sprintf("http://%s:9112/metrics", serverHost))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	metricsBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(metricsBytes), "fitmentor_webclient_request")
	assert.Contains(t, string(metricsBytes), "fitmentor_webclient_backend_reachable")
}
