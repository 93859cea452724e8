package httpapi

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestServerTimingHeaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	srv, _, _ := newTestServer(t, NewMockStore(ctrl))

	w := doJSON(srv, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Server-Timing"), "app;dur=")
	require.NotEmpty(t, w.Header().Get("X-App-Time"))
}
