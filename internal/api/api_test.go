package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiveden/sysmetrics/internal/hw"
)

type staticTags map[string]string

func (s staticTags) Tags(context.Context) map[string]string { return s }

func serve(t *testing.T, h *APIHandler, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	NewRouter(h).ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(t, NewAPIHandler(staticTags{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetTags(t *testing.T) {
	tests := []struct {
		name string
		tags staticTags
	}{
		{"facts", staticTags{"sys.cpu": "Apple M2 Pro", "sys.gpu": "Apple M2 Pro"}},
		{"error", staticTags{"sysmetrics.error": "failed to get disk usage for /: Disk error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, NewAPIHandler(tt.tags), "/tags")
			require.Equal(t, http.StatusOK, rec.Code)

			var got map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, map[string]string(tt.tags), got)
		})
	}
}

func TestGetSystemInfo(t *testing.T) {
	h := NewAPIHandler(staticTags{})
	h.system = func(context.Context) (*hw.SystemInfo, error) {
		return &hw.SystemInfo{OS: "linux", KernelVersion: "6.1.0", Architecture: "x86_64"}, nil
	}

	rec := serve(t, h, "/system")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Descriptor string        `json:"descriptor"`
		System     hw.SystemInfo `json:"system"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Linux-6.1.0-x86_64", body.Descriptor)
	assert.Equal(t, "linux", body.System.OS)
}

func TestGetSystemInfo_Error(t *testing.T) {
	h := NewAPIHandler(staticTags{})
	h.system = func(context.Context) (*hw.SystemInfo, error) {
		return nil, errors.New("failed to get host info: boom")
	}

	rec := serve(t, h, "/system")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "boom")
}

func TestGetHardwareInfo_Error(t *testing.T) {
	h := NewAPIHandler(staticTags{})
	h.hardware = func() (*hw.HardwareInfo, error) {
		return nil, errors.New("failed to get CPU info: unsupported")
	}

	rec := serve(t, h, "/hw")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported")
}

func TestGetHardwareInfo(t *testing.T) {
	h := NewAPIHandler(staticTags{})
	h.hardware = func() (*hw.HardwareInfo, error) {
		return &hw.HardwareInfo{}, nil
	}

	rec := serve(t, h, "/hw")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cpu":null,"memory":null,"block_storage":null}`, rec.Body.String())
}

func TestGetSystemInfo_HasDeadline(t *testing.T) {
	h := NewAPIHandler(staticTags{})
	h.timeout = time.Minute

	var deadline time.Time
	var hasDeadline bool
	h.system = func(ctx context.Context) (*hw.SystemInfo, error) {
		deadline, hasDeadline = ctx.Deadline()
		return &hw.SystemInfo{OS: "linux"}, nil
	}

	rec := serve(t, h, "/system")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 10*time.Second)
}

func TestGetSystemInfo_Timeout(t *testing.T) {
	h := NewAPIHandler(staticTags{})
	h.timeout = 20 * time.Millisecond
	h.system = func(ctx context.Context) (*hw.SystemInfo, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	rec := serve(t, h, "/system")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), context.DeadlineExceeded.Error())
}

func TestGetHardwareInfo_Timeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	h := NewAPIHandler(staticTags{})
	h.timeout = 20 * time.Millisecond
	h.hardware = func() (*hw.HardwareInfo, error) {
		<-release
		return &hw.HardwareInfo{}, nil
	}

	start := time.Now()
	rec := serve(t, h, "/hw")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Contains(t, rec.Body.String(), context.DeadlineExceeded.Error())
	assert.Less(t, time.Since(start), 5*time.Second)
}
