package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponseWriter(rr *httptest.ResponseRecorder) *responseWriter {
	return &responseWriter{ResponseWriter: rr}
}

func TestResponseWriter_InitialState(t *testing.T) {
	w := newResponseWriter(httptest.NewRecorder())

	assert.Zero(t, w.status)
	assert.Zero(t, w.size)
	assert.False(t, w.wroteHeader)
}

func TestResponseWriter_WriteHeader_TableTest(t *testing.T) {
	tests := []struct {
		name           string
		statusCodes    []int // multiple WriteHeader calls
		expectedStatus int
	}{
		{name: "201 Created", statusCodes: []int{http.StatusCreated}, expectedStatus: http.StatusCreated},
		{name: "403 Forbidden", statusCodes: []int{http.StatusForbidden}, expectedStatus: http.StatusForbidden},
		{name: "second call ignored", statusCodes: []int{http.StatusConflict, http.StatusOK}, expectedStatus: http.StatusConflict},
		{name: "three calls keep the first", statusCodes: []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusOK}, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := newResponseWriter(rr)

			for _, code := range tt.statusCodes {
				w.WriteHeader(code)
			}

			assert.Equal(t, tt.expectedStatus, w.status)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.True(t, w.wroteHeader)
		})
	}
}

func TestResponseWriter_Write_SetsImplicit200(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	n, err := w.Write([]byte("hello"))

	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestResponseWriter_Write_AccumulatesSize(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte("abc"))
	_, _ = w.Write([]byte("defgh"))
	_, _ = w.Write(nil)

	assert.Equal(t, 8, w.size)
	assert.Equal(t, "abcdefgh", rr.Body.String())
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestResponseWriter_ProxiesHeadersAndUnwraps(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	w.Header().Set("X-Trace-ID", "abc")

	assert.Equal(t, "abc", rr.Header().Get("X-Trace-ID"))
	assert.Same(t, rr, w.Unwrap())
}
