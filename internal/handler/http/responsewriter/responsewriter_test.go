package responsewriter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"news-digest/internal/handler/http/responsewriter"

	"github.com/stretchr/testify/assert"
)

func TestWrap_Defaults(t *testing.T) {
	w := responsewriter.Wrap(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, w.Status())
	assert.Zero(t, w.BytesWritten())
}

func TestWriteHeader_RecordsFirstStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := responsewriter.Wrap(rr)

	w.WriteHeader(http.StatusBadGateway)
	w.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusBadGateway, w.Status())
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestWrite_CountsBytesAndImpliesOK(t *testing.T) {
	rr := httptest.NewRecorder()
	w := responsewriter.Wrap(rr)

	n, err := w.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, w.BytesWritten())
	assert.Equal(t, http.StatusOK, w.Status())
}
