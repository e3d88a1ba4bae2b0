// File: internal/backend/client_test.go
package backend

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/salucare/triage-console/internal/logger"
)

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
    t.Helper()
    srv := httptest.NewServer(handler)
    t.Cleanup(srv.Close)

    cfg := DefaultConfig(srv.URL)
    cfg.Timeout = 2 * time.Second
    cfg.RetryDelay = time.Millisecond
    client, err := NewClient(cfg, func() string { return token }, &logger.NoOpLogger{})
    require.NoError(t, err)
    return client, srv
}

func ok(data string) string {
    return `{"success":true,"data":` + data + `}`
}

func TestRequestsCarryBearerToken(t *testing.T) {
    var gotAuth string
    client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotAuth = r.Header.Get("Authorization")
        w.Write([]byte(ok(`{"id":"s-1","messages":[]}`)))
    }), "tok-123")

    _, err := client.GetSession(context.Background(), "s-1")
    require.NoError(t, err)
    assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoAuthorizationHeaderWhenLoggedOut(t *testing.T) {
    var sawHeader bool
    client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        _, sawHeader = r.Header["Authorization"]
        w.Write([]byte(ok(`{"id":"s-1"}`)))
    }), "")

    _, err := client.GetSession(context.Background(), "s-1")
    require.NoError(t, err)
    assert.False(t, sawHeader)
}

func TestEnvelopeDecoding(t *testing.T) {
    client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, "/admin/sessions/s-1", r.URL.Path)
        w.Write([]byte(ok(`{"id":"s-1","userName":"Carlos","messages":[{"id":"m1","content":"hola","sender":"USER"}]}`)))
    }), "tok")

    session, err := client.GetSession(context.Background(), "s-1")
    require.NoError(t, err)
    assert.Equal(t, "Carlos", session.UserName)
    assert.Equal(t, 1, session.MessageCount())
}

func TestUnsuccessfulEnvelopeIsServerError(t *testing.T) {
    client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Write([]byte(`{"success":false,"message":"sesión no disponible"}`))
    }), "tok")

    _, err := client.GetSession(context.Background(), "s-1")
    require.Error(t, err)
    apiErr, ok := err.(*APIError)
    require.True(t, ok)
    assert.Equal(t, ErrTypeServer, apiErr.Type)
    assert.Contains(t, apiErr.Message, "sesión no disponible")
}

func TestUnauthorizedFiresHookAndReturnsAuthError(t *testing.T) {
    client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusUnauthorized)
        w.Write([]byte(`{"success":false,"error":"token expired"}`))
    }), "tok")

    var hookCalls int
    client.OnUnauthorized(func() { hookCalls++ })

    _, err := client.GetSession(context.Background(), "s-1")
    require.Error(t, err)
    assert.True(t, IsAuthError(err))
    assert.Equal(t, 1, hookCalls, "every 401 must fire the teardown hook")

    // A second 401 from a different endpoint fires it again.
    _, err = client.ListHandoffs(context.Background())
    require.Error(t, err)
    assert.Equal(t, 2, hookCalls)
}

func TestErrorTaxonomy(t *testing.T) {
    cases := []struct {
        status int
        want   ErrorType
    }{
        {http.StatusNotFound, ErrTypeNotFound},
        {http.StatusBadRequest, ErrTypeValidation},
        {http.StatusUnprocessableEntity, ErrTypeValidation},
        {http.StatusInternalServerError, ErrTypeServer},
        {http.StatusBadGateway, ErrTypeServer},
    }
    for _, tc := range cases {
        client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            w.WriteHeader(tc.status)
        }), "tok")

        _, err := client.GetSession(context.Background(), "s-1")
        require.Error(t, err, "status %d", tc.status)
        apiErr, ok := err.(*APIError)
        require.True(t, ok)
        assert.Equal(t, tc.want, apiErr.Type, "status %d", tc.status)
        assert.Equal(t, tc.status, apiErr.StatusCode)
    }
}

func TestNetworkFailureIsNetworkError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
    srv.Close()

    cfg := DefaultConfig(srv.URL)
    cfg.RetryDelay = time.Millisecond
    client, err := NewClient(cfg, func() string { return "" }, &logger.NoOpLogger{})
    require.NoError(t, err)

    _, err = client.GetSession(context.Background(), "s-1")
    require.Error(t, err)
    apiErr, ok := err.(*APIError)
    require.True(t, ok)
    assert.Equal(t, ErrTypeNetwork, apiErr.Type)
}

func TestListHandoffsAcceptsBothShapes(t *testing.T) {
    flat := `[{"id":"h1","status":"PENDING"},{"id":"h2","status":"IN_PROGRESS"}]`
    buckets := `{"pending":[{"id":"h1","status":"PENDING"}],"inProgress":[{"id":"h2","status":"IN_PROGRESS"}]}`

    for _, payload := range []string{flat, buckets} {
        client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            w.Write([]byte(ok(payload)))
        }), "tok")

        handoffs, err := client.ListHandoffs(context.Background())
        require.NoError(t, err)
        require.Len(t, handoffs, 2)
        assert.Equal(t, "h1", handoffs[0].ID, "pending comes first")
        assert.Equal(t, "h2", handoffs[1].ID)
    }
}

func TestSendMessagePostsBody(t *testing.T) {
    var got map[string]string
    client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, http.MethodPost, r.Method)
        assert.Equal(t, "/admin/sessions/s-1/send-message", r.URL.Path)
        require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
        w.Write([]byte(`{"success":true}`))
    }), "tok")

    require.NoError(t, client.SendSessionMessage(context.Background(), "s-1", "hola"))
    assert.Equal(t, "hola", got["message"])
}

func TestAnalyzeSessionAsNoteSetsQueryFlag(t *testing.T) {
    client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, "true", r.URL.Query().Get("saveAsNote"))
        w.Write([]byte(ok(`{"summary":"resumen"}`)))
    }), "tok")

    analysis, err := client.AnalyzeSessionAsNote(context.Background(), "s-1")
    require.NoError(t, err)
    assert.Equal(t, "resumen", analysis.Summary)
}

func TestGetRetriesTransientFailures(t *testing.T) {
    var calls int
    client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        calls++
        if calls < 3 {
            w.WriteHeader(http.StatusBadGateway)
            return
        }
        w.Write([]byte(ok(`{"id":"s-1"}`)))
    }), "tok")

    session, err := client.GetSession(context.Background(), "s-1")
    require.NoError(t, err)
    assert.Equal(t, "s-1", session.ID)
    assert.Equal(t, 3, calls)
}

func TestGetDoesNotRetryAuthFailures(t *testing.T) {
    var calls int
    client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        calls++
        w.WriteHeader(http.StatusUnauthorized)
    }), "tok")

    _, err := client.GetSession(context.Background(), "s-1")
    require.Error(t, err)
    assert.Equal(t, 1, calls, "auth failures are final")
}

func TestNewClientRejectsBadConfig(t *testing.T) {
    _, err := NewClient(&Config{BaseURL: "", Timeout: time.Second}, func() string { return "" }, nil)
    require.Error(t, err)

    _, err = NewClient(DefaultConfig("http://localhost:3000/api"), nil, nil)
    require.Error(t, err)
}
