package kundaliController

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/admin/kundali-service/internal/adapters/primary/http/middlewares"
	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type useCaseStub struct {
	generateErr error
	lastSession string
	lastInput   domain.BirthInput
	lastLang    string

	saved    map[uuid.UUID]*domain.SavedChart
	matchErr error
	transit  *domain.TransitSnapshot
}

func (u *useCaseStub) GenerateChart(_ context.Context, sessionID string, in domain.BirthInput) (*domain.ChartResponse, error) {
	u.lastSession = sessionID
	u.lastInput = in
	if u.generateErr != nil {
		return nil, u.generateErr
	}
	return &domain.ChartResponse{RequestID: "req-1"}, nil
}

func (u *useCaseStub) ViewState(_ context.Context, sessionID string) (domain.ViewState, error) {
	switch sessionID {
	case "busy":
		return domain.ViewState{Status: domain.ViewLoading, Token: "t1"}, nil
	case "broken":
		return domain.ViewState{Status: domain.ViewFailed, Token: "t2", ErrorCode: domain.FailureNarrativeUnavailable}, nil
	}
	return domain.ViewState{Status: domain.ViewIdle}, nil
}

func (u *useCaseStub) ListSavedCharts(_ context.Context, ownerID string) ([]*domain.SavedChart, error) {
	u.lastSession = ownerID
	var out []*domain.SavedChart
	for _, s := range u.saved {
		out = append(out, s)
	}
	return out, nil
}

func (u *useCaseStub) SaveChart(_ context.Context, ownerID string, in domain.BirthInput) (*domain.SavedChart, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s := domain.NewSavedChart(ownerID, in)
	u.saved[s.ID] = s
	return s, nil
}

func (u *useCaseStub) DeleteSavedChart(_ context.Context, _ string, id uuid.UUID) error {
	if _, ok := u.saved[id]; !ok {
		return fmt.Errorf("failed to delete saved chart: %w", domain.ErrSavedChartNotFound)
	}
	delete(u.saved, id)
	return nil
}

func (u *useCaseStub) RegenerateSavedChart(_ context.Context, ownerID string, id uuid.UUID, language string) (*domain.ChartResponse, error) {
	u.lastLang = language
	s, ok := u.saved[id]
	if !ok {
		return nil, domain.ErrSavedChartNotFound
	}
	return &domain.ChartResponse{RequestID: "regen", Basic: domain.BasicDetails{Name: s.Name}}, nil
}

func (u *useCaseStub) MatchCharts(context.Context, domain.MatchInput) (*domain.MatchScore, error) {
	if u.matchErr != nil {
		return nil, u.matchErr
	}
	return &domain.MatchScore{Total: 27, Max: 36, Conclusion: domain.MatchVerdict(27)}, nil
}

func (u *useCaseStub) CurrentTransits(context.Context) (*domain.TransitSnapshot, error) {
	if u.transit == nil {
		return nil, domain.ErrTransitNotReady
	}
	return u.transit, nil
}

func newRouter(stub *useCaseStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(stub, logger.Discard()).RegisterRoutes(r)
	return r
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const birthJSON = `{"name":"Asha","date":"1992-03-14","time":"05:20","location":"Mumbai"}`

func TestGenerateChartUsesSessionHeader(t *testing.T) {
	stub := &useCaseStub{}
	rec := do(newRouter(stub), http.MethodPost, "/api/v1/charts", birthJSON, map[string]string{middlewares.SessionHeader: "s-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "s-1", stub.lastSession)
	require.Equal(t, "Mumbai", stub.lastInput.Location)
	require.Equal(t, "s-1", rec.Header().Get(middlewares.SessionHeader))
	require.Contains(t, rec.Body.String(), `"requestId":"req-1"`)
}

func TestGenerateChartIssuesSessionWhenMissing(t *testing.T) {
	stub := &useCaseStub{}
	rec := do(newRouter(stub), http.MethodPost, "/api/v1/charts", birthJSON, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(stub.lastSession)
	require.NoError(t, err)
	require.Equal(t, stub.lastSession, rec.Header().Get(middlewares.SessionHeader))
}

func TestGenerateChartErrors(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"invalid", fmt.Errorf("%w: bad date", domain.ErrInvalidBirthData), http.StatusBadRequest, "invalid_input", false},
		{"narrative", domain.WrapBusinessError(fmt.Errorf("%w: quota", domain.ErrNarrativeUnavailable)), http.StatusBadGateway, "narrative_unavailable", true},
		{"superseded", domain.ErrSuperseded, http.StatusConflict, "superseded", false},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError, "internal", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &useCaseStub{generateErr: tc.err}
			rec := do(newRouter(stub), http.MethodPost, "/api/v1/charts", birthJSON, nil)

			require.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			require.Equal(t, tc.code, body.Code)
			require.Equal(t, tc.retryable, body.Retryable)
			require.NotContains(t, body.Error, "quota")
		})
	}
}

func TestErrorMessageIsLocalized(t *testing.T) {
	stub := &useCaseStub{generateErr: domain.ErrNarrativeUnavailable}
	r := newRouter(stub)

	rec := do(r, http.MethodPost, "/api/v1/charts",
		`{"date":"1992-03-14","time":"05:20","location":"Mumbai","language":"hi"}`, nil)
	require.Equal(t, messages["hi"]["narrative_unavailable"], decodeError(t, rec).Error)

	rec = do(r, http.MethodPost, "/api/v1/charts", birthJSON, map[string]string{"Accept-Language": "hi-IN,hi;q=0.9"})
	require.Equal(t, messages["hi"]["narrative_unavailable"], decodeError(t, rec).Error)

	// для tamil перевода нет, английский
	rec = do(r, http.MethodPost, "/api/v1/charts?lang=ta", birthJSON, nil)
	require.Equal(t, messages["en"]["narrative_unavailable"], decodeError(t, rec).Error)
}

func TestGenerateChartRejectsMalformedJSON(t *testing.T) {
	rec := do(newRouter(&useCaseStub{}), http.MethodPost, "/api/v1/charts", `{"date":`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_input", decodeError(t, rec).Code)
}

func TestSessionState(t *testing.T) {
	r := newRouter(&useCaseStub{})

	rec := do(r, http.MethodGet, "/api/v1/sessions/busy/state", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":{"status":"loading","token":"t1"}}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/api/v1/sessions/other/state", "", nil)
	require.JSONEq(t, `{"data":{"status":"idle"}}`, rec.Body.String())
}

func TestSessionStateFailureIsLocalizedCode(t *testing.T) {
	r := newRouter(&useCaseStub{})

	rec := do(r, http.MethodGet, "/api/v1/sessions/broken/state?lang=hi", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Status    string `json:"status"`
			ErrorCode string `json:"errorCode"`
			Message   string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "failed", body.Data.Status)
	require.Equal(t, "narrative_unavailable", body.Data.ErrorCode)
	require.Equal(t, messages["hi"]["narrative_unavailable"], body.Data.Message)
}

func TestSavedChartsLifecycle(t *testing.T) {
	stub := &useCaseStub{saved: map[uuid.UUID]*domain.SavedChart{}}
	r := newRouter(stub)
	owner := map[string]string{middlewares.SessionHeader: "owner-1"}

	rec := do(r, http.MethodGet, "/api/v1/saved-charts", "", owner)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":[]}`, rec.Body.String())

	rec = do(r, http.MethodPost, "/api/v1/saved-charts", birthJSON, owner)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data domain.SavedChart `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Asha", created.Data.Name)

	rec = do(r, http.MethodPost, "/api/v1/saved-charts/"+created.Data.ID.String()+"/generate", `{"language":"hi"}`, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hi", stub.lastLang)

	// без тела язык берётся из query
	rec = do(r, http.MethodPost, "/api/v1/saved-charts/"+created.Data.ID.String()+"/generate?lang=ta", "", owner)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ta", stub.lastLang)

	rec = do(r, http.MethodDelete, "/api/v1/saved-charts/"+created.Data.ID.String(), "", owner)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(r, http.MethodDelete, "/api/v1/saved-charts/"+created.Data.ID.String(), "", owner)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodPost, "/api/v1/saved-charts/not-a-uuid/generate", "", owner)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveChartValidation(t *testing.T) {
	stub := &useCaseStub{saved: map[uuid.UUID]*domain.SavedChart{}}
	rec := do(newRouter(stub), http.MethodPost, "/api/v1/saved-charts", `{"date":"1992-03-14","time":"05:20"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, stub.saved)
}

func TestMatchmaking(t *testing.T) {
	body := `{"bride":` + birthJSON + `,"groom":` + birthJSON + `}`

	rec := do(newRouter(&useCaseStub{}), http.MethodPost, "/api/v1/matchmaking", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"conclusion":"very good"`)

	stub := &useCaseStub{matchErr: domain.WrapBusinessError(fmt.Errorf("%w: timeout", domain.ErrMatchUnavailable))}
	rec = do(newRouter(stub), http.MethodPost, "/api/v1/matchmaking", body, nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.True(t, decodeError(t, rec).Retryable)
}

func TestCurrentTransits(t *testing.T) {
	stub := &useCaseStub{}
	r := newRouter(stub)

	rec := do(r, http.MethodGet, "/api/v1/transits/current", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "transit_not_ready", decodeError(t, rec).Code)

	stub.transit = &domain.TransitSnapshot{Ascendant: "Leo"}
	rec = do(r, http.MethodGet, "/api/v1/transits/current", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Leo"`)
}
