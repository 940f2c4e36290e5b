package pins_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/5w1tchy/pinguard/internal/api/handlers/pins"
	"github.com/5w1tchy/pinguard/internal/metrics/outcomes"
	"github.com/5w1tchy/pinguard/internal/pin"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

type problem struct {
	Title       string `json:"title"`
	Status      int    `json:"status"`
	Detail      string `json:"detail"`
	FieldErrors []struct {
		Field string `json:"field"`
		Code  string `json:"code"`
	} `json:"field_errors"`
}

func post(h http.HandlerFunc, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/pins/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestValidate_JSON(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 2)

	rec := post(h.Validate, "application/json", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[envelope[pin.Result]](t, rec)
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, pin.Weak, got.Data.Strength)
	assert.Equal(t, []string{pin.ReasonCommonlyUsed}, got.Data.WeaknessReasons)
	assert.Equal(t, []string{pin.PatternCommon, pin.PatternSequential}, got.Data.DetectedPatterns)
	assert.Equal(t, 45, got.Data.SecurityScore)
}

func TestValidate_StrongHasEmptyArrays(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 2)

	rec := post(h.Validate, "application/json", `{"pin":"7392","demographics":{}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"weaknessReasons":[]`)
	assert.Contains(t, rec.Body.String(), `"detectedPatterns":[]`)
	assert.Contains(t, rec.Body.String(), `"strength":"STRONG"`)
	assert.Contains(t, rec.Body.String(), `"securityScore":100`)
}

func TestValidate_Demographics(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 2)

	rec := post(h.Validate, "application/json",
		`{"pin":"0215","demographics":{"dob":"1990-02-15","spouseDob":null}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[envelope[pin.Result]](t, rec)
	assert.Equal(t, pin.Weak, got.Data.Strength)
	assert.Equal(t, []string{pin.ReasonDemographicSelf}, got.Data.WeaknessReasons)
}

func TestValidate_Form(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 2)

	rec := post(h.Validate, "application/x-www-form-urlencoded", "pin=0407&spouse_dob=1988-07-04")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[envelope[pin.Result]](t, rec)
	assert.Equal(t, []string{pin.ReasonDemographicSpouse}, got.Data.WeaknessReasons)
}

func TestValidate_FullWidthDigitsFolded(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 2)

	rec := post(h.Validate, "application/json", `{"pin":"１２３４"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[envelope[pin.Result]](t, rec)
	assert.Contains(t, got.Data.WeaknessReasons, pin.ReasonCommonlyUsed)
}

func TestValidate_FullWidthDateFolded(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 2)

	ascii := post(h.Validate, "application/json", `{"pin":"0215","demographics":{"dob":"1990-02-15"}}`)
	wide := post(h.Validate, "application/json", `{"pin":"０２１５","demographics":{"dob":"１９９０-０２-１５"}}`)
	require.Equal(t, http.StatusOK, ascii.Code)
	require.Equal(t, http.StatusOK, wide.Code)

	want := decode[envelope[pin.Result]](t, ascii).Data
	got := decode[envelope[pin.Result]](t, wide).Data
	assert.Equal(t, pin.Weak, got.Strength)
	assert.Equal(t, []string{pin.ReasonDemographicSelf}, got.WeaknessReasons)
	assert.Equal(t, want.SecurityScore, got.SecurityScore)
}

func TestValidate_OversizedBody(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 2)
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"json", "application/json", `{"pin":"1234","demographics":{"dob":"1990-02-15"}}`},
		{"form", "application/x-www-form-urlencoded", "pin=1234&dob=1990-02-15&anniversary=2011-11-11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/pins/validate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			req.Body = http.MaxBytesReader(rec, req.Body, 16)

			h.Validate(rec, req)

			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestValidate_EnvelopeCarriesRequestID(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 2)
	req := httptest.NewRequest(http.MethodPost, "/pins/validate", strings.NewReader(`{"pin":"7392"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "rid-7392")
	rec := httptest.NewRecorder()

	h.Validate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"request_id":"rid-7392"`)
}

func TestValidate_BadInput(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 2)

	tests := []struct {
		name  string
		body  string
		code  int
		field string
	}{
		{"bad json", `{"pin":`, http.StatusBadRequest, ""},
		{"unknown field", `{"pin":"1234","extra":1}`, http.StatusBadRequest, ""},
		{"missing pin", `{}`, http.StatusUnprocessableEntity, "pin"},
		{"letters", `{"pin":"12ab"}`, http.StatusUnprocessableEntity, "pin"},
		{"long date", `{"pin":"1234","demographics":{"dob":"` + strings.Repeat("9", 40) + `"}}`,
			http.StatusUnprocessableEntity, "demographics.dob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h.Validate, "application/json", tt.body)
			require.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			p := decode[problem](t, rec)
			if tt.field != "" {
				require.Len(t, p.FieldErrors, 1)
				assert.Equal(t, tt.field, p.FieldErrors[0].Field)
			}
		})
	}
}

func TestValidate_OddLengthIsScoredNotRejected(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 2)

	rec := post(h.Validate, "application/json", `{"pin":"12345","demographics":{"dob":"2012-34-50"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[envelope[pin.Result]](t, rec)
	assert.Equal(t, pin.Strong, got.Data.Strength)
	assert.Equal(t, 85, got.Data.SecurityScore)
}

func TestValidateBatch(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 3)

	var items []string
	pinsIn := []string{"1234", "7392", "0215", "112233", "1478"}
	for _, p := range pinsIn {
		items = append(items, fmt.Sprintf(`{"pin":%q,"demographics":{"dob":"1990-02-15"}}`, p))
	}
	body := `{"items":[` + strings.Join(items, ",") + `]}`

	req := httptest.NewRequest(http.MethodPost, "/pins/validate/batch", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ValidateBatch(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[envelope[struct {
		Results []pin.Result `json:"results"`
	}]](t, rec)
	require.Len(t, got.Data.Results, len(pinsIn))
	for i, p := range pinsIn {
		want := pin.Validate(p, pin.Demographics{DOB: "1990-02-15"})
		assert.Equal(t, want.Strength, got.Data.Results[i].Strength, p)
		assert.Equal(t, want.SecurityScore, got.Data.Results[i].SecurityScore, p)
	}
}

func TestValidateBatch_Limits(t *testing.T) {
	h := pins.NewHandler(nil, nil, 2, 2)

	run := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/pins/validate/batch", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ValidateBatch(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, run(`{"items":[]}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity,
		run(`{"items":[{"pin":"1"},{"pin":"2"},{"pin":"3"}]}`).Code)

	rec := run(`{"items":[{"pin":"1234"},{"pin":"x"}]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	p := decode[problem](t, rec)
	require.Len(t, p.FieldErrors, 1)
	assert.Equal(t, "items[1].pin", p.FieldErrors[0].Field)
	assert.Equal(t, "not_digits", p.FieldErrors[0].Code)
}

func TestStats(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	q := outcomes.Start(rdb, outcomes.DefaultKey, 16, 1)
	h := pins.NewHandler(rdb, q, 10, 2)

	post(h.Validate, "application/json", `{"pin":"1234"}`)
	post(h.Validate, "application/json", `{"pin":"7392"}`)
	q.Shutdown()

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[envelope[map[string]int64]](t, rec)
	assert.Equal(t, int64(2), got.Data["total"])
	assert.Equal(t, int64(1), got.Data["strength:strong"])
}

func TestStats_NoRedis(t *testing.T) {
	h := pins.NewHandler(nil, nil, 10, 2)

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
