package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/merahburam/ameo-assets/internal/ai"
	"github.com/merahburam/ameo-assets/internal/mocks"
)

func setupSpeechRouter(handler *SpeechHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/speech/daily", handler.DailySpeech)
	r.POST("/speech", handler.GenerateSpeech)
	return r
}

func TestDailySpeechHitsProviderOncePerDay(t *testing.T) {
	client := new(mocks.AIClientMock)
	handler := NewSpeechHandler(client, ai.NewDailyMemo(), nil)
	router := setupSpeechRouter(handler)

	client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("A fine speech.", nil).Once()

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/speech/daily", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Text   string `json:"text"`
			Source string `json:"source"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Equal(t, "A fine speech.", resp.Text)
		if i == 0 {
			assert.Equal(t, "model", resp.Source)
		} else {
			assert.Equal(t, "cache", resp.Source)
		}
	}

	client.AssertExpectations(t)
}

func TestDailySpeechFallbackIsCached(t *testing.T) {
	client := new(mocks.AIClientMock)
	handler := NewSpeechHandler(client, ai.NewDailyMemo(), nil)
	router := setupSpeechRouter(handler)

	client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/speech/daily", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var first struct {
		Text   string `json:"text"`
		Source string `json:"source"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&first))
	require.Equal(t, "fallback", first.Source)
	require.NotEmpty(t, first.Text)

	req = httptest.NewRequest(http.MethodGet, "/speech/daily", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var second struct {
		Text   string `json:"text"`
		Source string `json:"source"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&second))
	require.Equal(t, "cache", second.Source)
	require.Equal(t, first.Text, second.Text)

	client.AssertExpectations(t)
}

func TestGenerateSpeechStripsMarkdown(t *testing.T) {
	client := new(mocks.AIClientMock)
	handler := NewSpeechHandler(client, ai.NewDailyMemo(), nil)
	router := setupSpeechRouter(handler)

	client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("**Dearly** beloved, we gather.", nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/speech", bytes.NewBufferString(`{"topic":"launch day"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Topic  string `json:"topic"`
		Text   string `json:"text"`
		Source string `json:"source"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "launch day", resp.Topic)
	assert.Equal(t, "Dearly beloved, we gather.", resp.Text)
	assert.Equal(t, "model", resp.Source)

	client.AssertExpectations(t)
}
