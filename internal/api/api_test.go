package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/testutil/mocks"
	"github.com/vytor/wordflash/internal/worker"
	"golang.org/x/time/rate"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type apiFixture struct {
	profiles *mocks.MockProfileService
	study    *mocks.MockStudyService
	reading  *mocks.MockReadingService
	stats    *mocks.MockStatsService
	queue    *mocks.MockJobQueue
	srv      *Server
	handler  http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	f := &apiFixture{
		profiles: new(mocks.MockProfileService),
		study:    new(mocks.MockStudyService),
		reading:  new(mocks.MockReadingService),
		stats:    new(mocks.MockStatsService),
		queue:    new(mocks.MockJobQueue),
	}
	f.srv = &Server{
		ProfileService: f.profiles,
		StudyService:   f.study,
		ReadingService: f.reading,
		StatsService:   f.stats,
		JobQueue:       f.queue,
		DB:             fakePinger{},
	}
	f.handler = f.srv.Routes()
	f.profiles.On("GetProfile", mock.Anything, int64(1)).Return(&models.Profile{
		ID: 1, Username: "anna", NativeLang: "ru", TargetLang: "en",
	}, nil).Maybe()
	t.Cleanup(func() {
		f.profiles.AssertExpectations(t)
		f.study.AssertExpectations(t)
		f.reading.AssertExpectations(t)
		f.stats.AssertExpectations(t)
		f.queue.AssertExpectations(t)
	})
	return f
}

func (f *apiFixture) do(method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

var asLearner = map[string]string{profileHeader: "1"}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	rec = f.do(http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	f.srv.DB = fakePinger{err: fmt.Errorf("disk gone")}
	rec = f.do(http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/healthz", "", map[string]string{requestIDHeader: "req-42"})
	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))
}

func TestRequireProfile(t *testing.T) {
	f := newAPIFixture(t)
	f.profiles.On("GetProfile", mock.Anything, int64(99)).Return(nil, errors.NewNotFoundError("profile", 99))

	rec := f.do(http.MethodPost, "/api/study/learn/start", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.ErrCodeBadRequest, errorCode(t, rec))

	rec = f.do(http.MethodPost, "/api/study/learn/start", "", map[string]string{profileHeader: "abc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/study/learn/start", "", map[string]string{profileHeader: "99"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.ErrCodeNotFound, errorCode(t, rec))
}

func TestProfileFromCookie(t *testing.T) {
	f := newAPIFixture(t)
	f.study.On("StartReview", mock.Anything, int64(1)).Return(&models.ReviewBatch{Words: []models.ReviewWord{}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/study/review/start", nil)
	req.AddCookie(&http.Cookie{Name: profileCookieName, Value: "1"})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateProfile(t *testing.T) {
	f := newAPIFixture(t)
	f.profiles.On("CreateProfile", mock.Anything, models.Profile{
		Username: "boris", NativeLang: "ru", TargetLang: "en",
	}).Return(&models.Profile{ID: 5, Username: "boris", NativeLang: "ru", TargetLang: "en"}, nil)

	rec := f.do(http.MethodPost, "/api/profiles", `{"username":"boris","native_lang":"ru","target_lang":"en"}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(5), got.ID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, profileCookieName, cookies[0].Name)
	assert.Equal(t, "5", cookies[0].Value)
}

func TestCreateProfile_RejectsUnknownFields(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/profiles", `{"username":"boris","admin":true}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.profiles.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
}

func TestDeleteActiveProfileClearsCookie(t *testing.T) {
	f := newAPIFixture(t)
	f.profiles.On("DeleteProfile", mock.Anything, int64(1)).Return(nil)

	rec := f.do(http.MethodDelete, "/api/profiles/1", "", asLearner)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestSubmitLearn(t *testing.T) {
	f := newAPIFixture(t)
	session := int64(3)
	f.study.On("SubmitLearn", mock.Anything, int64(1), models.Submission{
		SessionID: &session,
		Words:     []models.AnswerInput{{WordID: 10, Answer: "house"}},
	}).Return(&models.LearnOutcome{AllCorrect: true, WordsTotal: 1, WordsCorrect: 1, Learned: 1}, nil)

	rec := f.do(http.MethodPost, "/api/study/learn/submit",
		`{"session_id":3,"words":[{"word_id":10,"answer":"house"}]}`, asLearner)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.LearnOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.AllCorrect)
	assert.Equal(t, 1, got.Learned)
}

func TestSubmitLearn_EmptyBody(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/study/learn/submit", "", asLearner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitReview_Conflict(t *testing.T) {
	f := newAPIFixture(t)
	f.study.On("SubmitReview", mock.Anything, int64(1), mock.Anything).
		Return(nil, errors.NewConflictError("word progress", nil))

	rec := f.do(http.MethodPost, "/api/study/review/submit", `{"words":[{"word_id":1,"answer":"x"}]}`, asLearner)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, errors.ErrCodeConflict, errorCode(t, rec))
}

func TestSeedReview(t *testing.T) {
	f := newAPIFixture(t)
	f.study.On("SeedReview", mock.Anything, int64(1), 0).Return(4, nil).Once()
	f.study.On("SeedReview", mock.Anything, int64(1), 20).Return(20, nil).Once()

	rec := f.do(http.MethodPost, "/api/study/review/seed", "", asLearner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"added":4}`, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/study/review/seed", `{"limit":20}`, asLearner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"added":20}`, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/study/review/seed", `{"limit":-1}`, asLearner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCustomWord(t *testing.T) {
	f := newAPIFixture(t)
	f.study.On("AddCustomWord", mock.Anything, int64(1), "дом", "house; home").Return(nil)

	rec := f.do(http.MethodPost, "/api/words", `{"word":"дом","translation":"house; home"}`, asLearner)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestReadingPreview(t *testing.T) {
	f := newAPIFixture(t)
	f.reading.On("Preview", mock.Anything, int64(1), models.ReadingRequest{TargetWords: 5, Days: 7, Variant: 2}).
		Return(&models.ReadingPreview{Text: "The cat sat.", PassageIDs: []int64{4}, Hits: 1}, nil)

	rec := f.do(http.MethodGet, "/api/reading?target_words=5&days=7&variant=2", "", asLearner)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.ReadingPreview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []int64{4}, got.PassageIDs)
}

func TestReadingPreview_InvalidQuery(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/reading?target_words=many", "", asLearner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.reading.AssertNotCalled(t, "Preview", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlagPassages(t *testing.T) {
	f := newAPIFixture(t)
	f.reading.On("Flag", mock.Anything, int64(1), []int64{4, 5}).Return(2, nil)

	rec := f.do(http.MethodPost, "/api/reading/flag", `{"passage_ids":[4,5]}`, asLearner)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"flagged":2}`, rec.Body.String())
}

func TestSetCorpus(t *testing.T) {
	f := newAPIFixture(t)
	f.reading.On("SetCorpusEnabled", mock.Anything, int64(1), "classics", false).Return(nil)
	f.reading.On("SetCorpusEnabled", mock.Anything, int64(1), "news", true).Return(errors.NewNotFoundError("corpus", "news"))

	rec := f.do(http.MethodPut, "/api/reading/corpora/classics", `{"enabled":false}`, asLearner)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPut, "/api/reading/corpora/news", `{"enabled":true}`, asLearner)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportText(t *testing.T) {
	f := newAPIFixture(t)
	f.queue.On("EnqueueTextImport", models.TextImport{Slug: "tale", Lang: "en", Text: "Once upon a time."}).Return(nil)

	rec := f.do(http.MethodPost, "/api/imports/texts", `{"slug":" tale ","lang":"EN","text":"Once upon a time."}`, nil)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"status":"queued","slug":"tale"}`, rec.Body.String())
}

func TestImportText_Validation(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/imports/texts", `{"slug":"tale","lang":"en","text":"  "}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.ErrCodeValidation, errorCode(t, rec))
	f.queue.AssertNotCalled(t, "EnqueueTextImport", mock.Anything)
}

func TestImportText_QueueFull(t *testing.T) {
	f := newAPIFixture(t)
	f.queue.On("EnqueueTextImport", mock.Anything).Return(worker.ErrQueueFull)

	rec := f.do(http.MethodPost, "/api/imports/texts", `{"slug":"tale","lang":"en","text":"Hello."}`, nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, errors.ErrCodeUnavailable, errorCode(t, rec))
}

func TestRefreshIndex(t *testing.T) {
	f := newAPIFixture(t)
	f.queue.On("EnqueueIndexRefresh", "ru").Return(nil)

	rec := f.do(http.MethodPost, "/api/imports/refresh", `{"lang":"RU"}`, nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	f := newAPIFixture(t)
	f.study.On("StartLearn", mock.Anything, int64(1)).Run(func(mock.Arguments) {
		panic("boom")
	}).Return(nil, nil)

	rec := f.do(http.MethodPost, "/api/study/learn/start", "", asLearner)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, errors.ErrCodeInternal, errorCode(t, rec))
}

func TestImportRateLimit(t *testing.T) {
	f := newAPIFixture(t)
	f.srv.ImportLimiter = NewRateLimiter(rate.Every(time.Hour), 1)
	f.handler = f.srv.Routes()
	f.queue.On("EnqueueIndexRefresh", "en").Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/imports/refresh", `{"lang":"en"}`, nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = f.do(http.MethodPost, "/api/imports/refresh", `{"lang":"en"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, errors.ErrCodeRateLimited, errorCode(t, rec))
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 1)
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	clock = clock.Add(limiterIdleTTL / 2)
	assert.True(t, rl.Allow("10.0.0.2"))
	require.Len(t, rl.limits, 2)

	clock = clock.Add(limiterIdleTTL / 2)
	assert.True(t, rl.Allow("10.0.0.3"))
	assert.Len(t, rl.limits, 2)
	assert.NotContains(t, rl.limits, "10.0.0.1")
	assert.Contains(t, rl.limits, "10.0.0.2")

	clock = clock.Add(2 * limiterIdleTTL)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.Len(t, rl.limits, 1)
}

func TestWeakWordsDefaultsLimit(t *testing.T) {
	f := newAPIFixture(t)
	f.stats.On("WeakWords", mock.Anything, int64(1), 20, false).
		Return(&models.WeakWords{Total: 1, Items: []models.WeakWord{{WordID: 7, Word: "дом", WrongCount: 2}}}, nil)
	f.stats.On("WeakWords", mock.Anything, int64(1), 5, true).
		Return(&models.WeakWords{Items: []models.WeakWord{}}, nil)

	rec := f.do(http.MethodGet, "/api/stats/weak-words", "", asLearner)
	require.Equal(t, http.StatusOK, rec.Code)
	var res models.WeakWords
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "дом", res.Items[0].Word)

	rec = f.do(http.MethodGet, "/api/stats/weak-words?limit=5&refresh=true", "", asLearner)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/stats/weak-words?refresh=maybe", "", asLearner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewPlanValidation(t *testing.T) {
	f := newAPIFixture(t)
	f.stats.On("ReviewPlan", mock.Anything, int64(1), 9000).
		Return(nil, errors.NewValidationError("limit", "must be between 0 and 5000"))

	rec := f.do(http.MethodGet, "/api/stats/review-plan?limit=9000", "", asLearner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.ErrCodeValidation, errorCode(t, rec))
}
