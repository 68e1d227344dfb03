package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"ac_remote_control/internal/models"
	"ac_remote_control/internal/service"

	"github.com/gin-gonic/gin"
)

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

// mockClimate is shared with the websocket goroutine, hence the mutex.
type mockClimate struct {
	mu sync.Mutex

	state    models.ClimateState
	stateErr error
	setErr   error

	modes        []models.HVACMode
	temperatures []*float64
	presets      []string
}

func (m *mockClimate) SetHVACMode(_ context.Context, mode models.HVACMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes = append(m.modes, mode)
	return m.setErr
}

func (m *mockClimate) SetTemperature(_ context.Context, t *float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.temperatures = append(m.temperatures, t)
	return m.setErr
}

func (m *mockClimate) SetPresetMode(_ context.Context, preset string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presets = append(m.presets, preset)
	return m.setErr
}

func (m *mockClimate) GetState(context.Context) (models.ClimateState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.stateErr
}

func (m *mockClimate) setState(st models.ClimateState) {
	m.mu.Lock()
	m.state = st
	m.mu.Unlock()
}

type mockEventLog struct {
	resp     []models.ClimateEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.ClimateEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, nil).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
