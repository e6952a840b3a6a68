package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"healthy-backend/internal/core/auth"
	"healthy-backend/internal/domain"
	"healthy-backend/internal/repo/memrepo"
	"healthy-backend/internal/service"
)

type harness struct {
	api, admin *gin.Engine
	users      *memrepo.Users
	recipes    *memrepo.Recipes
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := memrepo.NewUsers()
	catalog := memrepo.NewCatalog()
	jwter := &auth.JWTer{Secret: []byte("router-secret"), Issuer: "test"}
	s := Services{
		Auth:      service.NewAuthService(users, jwter, bcrypt.MinCost),
		Recipes:   service.NewRecipeService(catalog.Recipes(), catalog.Diets(), catalog.Ingredients()),
		Users:     service.NewUserService(users),
		MealPlans: service.NewMealPlanService(memrepo.NewMealPlans(), catalog.Recipes()),
		Progress:  service.NewProgressService(memrepo.NewProgress()),
	}
	l := zap.NewNop()
	return &harness{
		api:     NewAPIEngine(l, s),
		admin:   NewAdminEngine(l, s),
		users:   users,
		recipes: catalog.Recipes(),
	}
}

func call(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd *strings.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = strings.NewReader(string(b))
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (h *harness) login(t *testing.T, email, pw string) string {
	t.Helper()
	w, out := call(t, h.api, http.MethodPost, "/api/v1/users/login", "", gin.H{"email": email, "password": pw})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return out["token"].(string)
}

func (h *harness) promote(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()
	u, err := h.users.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, u)
	u.Role = domain.RoleAdmin
	require.NoError(t, h.users.Update(ctx, u))
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t)
	w, out := call(t, h.api, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, out["ok"])

	w, _ = call(t, h.admin, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRegisterLoginCheck(t *testing.T) {
	h := newHarness(t)

	w, out := call(t, h.api, http.MethodPost, "/api/v1/users/register", "", gin.H{"email": "a@x.io", "password": "pw1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "a@x.io", out["email"])
	assert.Equal(t, "USER", out["role"])
	assert.NotContains(t, w.Body.String(), "pw1")
	assert.NotContains(t, w.Body.String(), "assword")

	w, out = call(t, h.api, http.MethodPost, "/api/v1/users/register", "", gin.H{"email": "a@x.io", "password": "other"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.ErrDuplicateEmail.Error(), out["error"])
	assert.Equal(t, 1, h.users.Len())

	w, _ = call(t, h.api, http.MethodPost, "/api/v1/users/register", "", gin.H{"email": "b@x.io"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out = call(t, h.api, http.MethodPost, "/api/v1/users/login", "", gin.H{"email": "a@x.io", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, domain.ErrInvalidCredentials.Error(), out["error"])

	tok := h.login(t, "a@x.io", "pw1")

	w, out = call(t, h.api, http.MethodGet, "/api/v1/users/check", tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.io", out["email"])
	assert.Equal(t, true, out["valid"])

	w, out = call(t, h.api, http.MethodGet, "/api/v1/users/check", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.ErrMissingToken.Error(), out["error"])

	w, _ = call(t, h.api, http.MethodGet, "/api/v1/users/check", "garbage", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminGate(t *testing.T) {
	h := newHarness(t)
	call(t, h.api, http.MethodPost, "/api/v1/users/register", "", gin.H{"email": "u@x.io", "password": "pw"})
	tok := h.login(t, "u@x.io", "pw")

	w, _ := call(t, h.admin, http.MethodGet, "/admin/v1/users", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out := call(t, h.admin, http.MethodGet, "/admin/v1/users", tok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, domain.ErrForbidden.Error(), out["error"])

	w, _ = call(t, h.admin, http.MethodPost, "/admin/v1/recipes", tok, gin.H{"title": "Soup"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, h.recipes.Len())

	// 同一个 token 在提权后即生效
	h.promote(t, "u@x.io")
	w, out = call(t, h.admin, http.MethodGet, "/admin/v1/users", tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, out["total"])

	require.NoError(t, h.users.Delete(context.Background(), 1))
	w, out = call(t, h.admin, http.MethodGet, "/admin/v1/users", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, domain.ErrUserNotFound.Error(), out["error"])
}

func TestAdminRecipeLifecycle(t *testing.T) {
	h := newHarness(t)
	call(t, h.api, http.MethodPost, "/api/v1/users/register", "", gin.H{"email": "root@x.io", "password": "pw", "role": "ADMIN"})
	tok := h.login(t, "root@x.io", "pw")

	w, diet := call(t, h.admin, http.MethodPost, "/admin/v1/diets", tok, gin.H{"name": "vegan"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, rec := call(t, h.admin, http.MethodPost, "/admin/v1/recipes", tok, gin.H{
		"title": "Porridge", "calories": 320, "dietId": diet["id"],
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := int(rec["id"].(float64))

	w, got := call(t, h.api, http.MethodGet, "/api/v1/recipes/"+itoa(id), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Porridge", got["title"])

	w, _ = call(t, h.api, http.MethodGet, "/api/v1/recipes/by-diet?diet=vegan", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w, _ = call(t, h.api, http.MethodGet, "/api/v1/recipes/by-diet?diet=keto", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = call(t, h.api, http.MethodGet, "/api/v1/recipes/by-diet", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, page := call(t, h.api, http.MethodGet, "/api/v1/recipes?maxCalories=300", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, page["total"])

	w, _ = call(t, h.admin, http.MethodDelete, "/admin/v1/recipes/999", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, h.recipes.Len())

	w, _ = call(t, h.admin, http.MethodDelete, "/admin/v1/recipes/"+itoa(id), tok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, h.recipes.Len())

	w, _ = call(t, h.api, http.MethodGet, "/api/v1/recipes/"+itoa(id), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = call(t, h.api, http.MethodGet, "/api/v1/recipes/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, h.admin, http.MethodPost, "/admin/v1/ingredients", tok, gin.H{"name": "oats", "caloriesPer100g": 389})
	assert.Equal(t, http.StatusCreated, w.Code)
	w, _ = call(t, h.api, http.MethodGet, "/api/v1/ingredients", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "oats")

	w, _ = call(t, h.admin, http.MethodDelete, "/admin/v1/users/42", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, h.users.Len())
}

func TestTrackingRequiresUser(t *testing.T) {
	h := newHarness(t)
	call(t, h.api, http.MethodPost, "/api/v1/users/register", "", gin.H{"email": "u@x.io", "password": "pw"})
	tok := h.login(t, "u@x.io", "pw")

	w, _ := call(t, h.api, http.MethodGet, "/api/v1/progress", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, h.api, http.MethodPost, "/api/v1/progress", tok, gin.H{"date": "2024-05-01", "weight": 70.5})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = call(t, h.api, http.MethodGet, "/api/v1/progress", tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)

	w, plan := call(t, h.api, http.MethodPost, "/api/v1/meal-plans", tok, gin.H{"planDate": "2024-05-02", "totalCalories": 1800})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 1800, plan["totalCalories"])

	w, _ = call(t, h.api, http.MethodPost, "/api/v1/meal-plans", tok, gin.H{"planDate": "2024-05-02", "lunchId": 77})
	assert.Equal(t, http.StatusNotFound, w.Code)

	planID := int(plan["id"].(float64))
	w, _ = call(t, h.api, http.MethodDelete, "/api/v1/meal-plans/"+itoa(planID), tok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = call(t, h.api, http.MethodDelete, "/api/v1/meal-plans/"+itoa(planID), tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistryPriority(t *testing.T) {
	var order []string
	reg := &Registry{}
	reg.Register(modFunc{name: "late", prio: 200, order: &order}, modFunc{name: "early", prio: 1, order: &order}, modFunc{name: "default", prio: -1, order: &order})
	reg.MountAPI(gin.New().Group("/"))
	assert.Equal(t, []string{"early", "default", "late"}, order)
}

type modFunc struct {
	name  string
	prio  int
	order *[]string
}

func (m modFunc) MountAPI(*gin.RouterGroup) { *m.order = append(*m.order, m.name) }
func (m modFunc) Priority() int {
	if m.prio < 0 {
		return 100
	}
	return m.prio
}

func itoa(i int) string { return strconv.Itoa(i) }
