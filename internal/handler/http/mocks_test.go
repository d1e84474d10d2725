package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/service"
	"github.com/dmarkin/habitrack/internal/utils"
	"github.com/dmarkin/habitrack/models"
	"github.com/go-chi/chi/v5"
)

// Hand-rolled service mocks: each method delegates to an optional fn field.

type mockAuthService struct {
	registerFn         func(ctx context.Context, req models.RegisterRequest) (models.User, models.TokenPair, error)
	loginFn            func(ctx context.Context, req models.LoginRequest) (models.User, models.TokenPair, error)
	refreshFn          func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	logoutFn           func(ctx context.Context, refreshToken string) error
	logoutAllFn        func(ctx context.Context, userID int64) error
	parseAccessTokenFn func(ctx context.Context, tokenString string) (*models.TokenClaims, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.TokenPair, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return models.User{}, models.TokenPair{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.TokenPair, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req)
	}
	return models.User{}, models.TokenPair{}, nil
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, refreshToken)
	}
	return models.TokenPair{}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, refreshToken)
	}
	return nil
}

func (m *mockAuthService) LogoutAll(ctx context.Context, userID int64) error {
	if m.logoutAllFn != nil {
		return m.logoutAllFn(ctx, userID)
	}
	return nil
}

func (m *mockAuthService) ParseAccessToken(ctx context.Context, tokenString string) (*models.TokenClaims, error) {
	if m.parseAccessTokenFn != nil {
		return m.parseAccessTokenFn(ctx, tokenString)
	}
	return &models.TokenClaims{}, nil
}

type mockHabitService struct {
	createFn   func(ctx context.Context, userID int64, req models.CreateHabitRequest) (models.Habit, error)
	findAllFn  func(ctx context.Context, userID int64, isActive *bool) ([]models.Habit, error)
	findByIDFn func(ctx context.Context, userID, habitID int64) (models.Habit, error)
	updateFn   func(ctx context.Context, userID, habitID int64, req models.UpdateHabitRequest) (models.Habit, error)
	deleteFn   func(ctx context.Context, userID, habitID int64) error
}

func (m *mockHabitService) Create(ctx context.Context, userID int64, req models.CreateHabitRequest) (models.Habit, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, req)
	}
	return models.Habit{}, nil
}

func (m *mockHabitService) FindAll(ctx context.Context, userID int64, isActive *bool) ([]models.Habit, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, userID, isActive)
	}
	return nil, nil
}

func (m *mockHabitService) FindByID(ctx context.Context, userID, habitID int64) (models.Habit, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID, habitID)
	}
	return models.Habit{}, nil
}

func (m *mockHabitService) Update(ctx context.Context, userID, habitID int64, req models.UpdateHabitRequest) (models.Habit, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, habitID, req)
	}
	return models.Habit{}, nil
}

func (m *mockHabitService) Delete(ctx context.Context, userID, habitID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, habitID)
	}
	return nil
}

type mockTrackingService struct {
	logCompletionFn func(ctx context.Context, userID, habitID int64, req models.TrackHabitRequest) (models.HabitTracking, error)
	getHistoryFn    func(ctx context.Context, userID, habitID int64, limit int, from, to *time.Time) ([]models.HabitTracking, error)
	getStreakFn     func(ctx context.Context, userID, habitID int64) (int, error)
	deleteFn        func(ctx context.Context, userID, trackingID int64) error
}

func (m *mockTrackingService) LogCompletion(ctx context.Context, userID, habitID int64, req models.TrackHabitRequest) (models.HabitTracking, error) {
	if m.logCompletionFn != nil {
		return m.logCompletionFn(ctx, userID, habitID, req)
	}
	return models.HabitTracking{}, nil
}

func (m *mockTrackingService) GetHistory(ctx context.Context, userID, habitID int64, limit int, from, to *time.Time) ([]models.HabitTracking, error) {
	if m.getHistoryFn != nil {
		return m.getHistoryFn(ctx, userID, habitID, limit, from, to)
	}
	return nil, nil
}

func (m *mockTrackingService) GetStreak(ctx context.Context, userID, habitID int64) (int, error) {
	if m.getStreakFn != nil {
		return m.getStreakFn(ctx, userID, habitID)
	}
	return 0, nil
}

func (m *mockTrackingService) Delete(ctx context.Context, userID, trackingID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, trackingID)
	}
	return nil
}

type mockGoalService struct {
	createFn      func(ctx context.Context, userID, habitID int64, req models.CreateGoalRequest) (models.HabitGoal, error)
	findByHabitFn func(ctx context.Context, userID, habitID int64) ([]models.HabitGoal, error)
	updateFn      func(ctx context.Context, userID, goalID int64, req models.UpdateGoalRequest) (models.HabitGoal, error)
	deleteFn      func(ctx context.Context, userID, goalID int64) error
	getProgressFn func(ctx context.Context, userID, habitID int64, goalType models.GoalType) (models.GoalProgress, error)
}

func (m *mockGoalService) Create(ctx context.Context, userID, habitID int64, req models.CreateGoalRequest) (models.HabitGoal, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, habitID, req)
	}
	return models.HabitGoal{}, nil
}

func (m *mockGoalService) FindByHabit(ctx context.Context, userID, habitID int64) ([]models.HabitGoal, error) {
	if m.findByHabitFn != nil {
		return m.findByHabitFn(ctx, userID, habitID)
	}
	return nil, nil
}

func (m *mockGoalService) Update(ctx context.Context, userID, goalID int64, req models.UpdateGoalRequest) (models.HabitGoal, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, goalID, req)
	}
	return models.HabitGoal{}, nil
}

func (m *mockGoalService) Delete(ctx context.Context, userID, goalID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, goalID)
	}
	return nil
}

func (m *mockGoalService) GetProgress(ctx context.Context, userID, habitID int64, goalType models.GoalType) (models.GoalProgress, error) {
	if m.getProgressFn != nil {
		return m.getProgressFn(ctx, userID, habitID, goalType)
	}
	return models.GoalProgress{}, nil
}

func newTestHandler(services *service.Services) *Handler {
	return NewHandler(services, nil, logger.Nop())
}

// authedRequest injects the authenticated identity and chi URL params the
// routing middleware would normally provide.
func authedRequest(req *http.Request, userID int64, params map[string]string) *http.Request {
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)

	routeCtx := chi.NewRouteContext()
	for name, value := range params {
		routeCtx.URLParams.Add(name, value)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	return req.WithContext(ctx)
}

func doRequest(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}
