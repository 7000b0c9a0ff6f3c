package user

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"roomservice/database"
	"roomservice/models"
	"roomservice/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetAll() ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *fakeUserRepo) Create(u *models.User) error {
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateRole(id, role string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	if _, ok := r.users[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeCache struct {
	entries     map[string]utils.Principal
	invalidated []string
}

func (c *fakeCache) Get(_ context.Context, id string) (*utils.Principal, error) {
	if p, ok := c.entries[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (c *fakeCache) Set(_ context.Context, p utils.Principal) error {
	c.entries[p.UserID] = p
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id string) error {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func newService(t *testing.T) (*DefaultUserService, *fakeUserRepo, *fakeCache) {
	t.Helper()
	repo := newFakeUserRepo()
	cache := &fakeCache{entries: map[string]utils.Principal{}}
	return &DefaultUserService{Repo: repo, Cache: cache, TokenTTL: time.Hour}, repo, cache
}

func seed(t *testing.T, repo *fakeUserRepo, id, email, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users[id] = &models.User{ID: id, Email: email, PasswordHash: string(hash), Role: role}
}

func TestLogin(t *testing.T) {
	svc, repo, cache := newService(t)
	seed(t, repo, "u1", "chef@hotel.test", "s3cret!", models.RoleAdmin)
	ctx := context.Background()

	resp, err := svc.Login(ctx, "chef@hotel.test", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.ID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleAdmin, cache.entries["u1"].Role)

	claims, err := utils.ExtractClaims(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = svc.Login(ctx, "chef@hotel.test", "wrong")
	assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))

	_, err = svc.Login(ctx, "nobody@hotel.test", "s3cret!")
	assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))

	_, err = svc.Login(ctx, "", "")
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestLogoutInvalidatesCache(t *testing.T) {
	svc, _, cache := newService(t)
	cache.entries["u1"] = utils.Principal{UserID: "u1"}

	require.NoError(t, svc.Logout(context.Background(), "u1"))
	assert.NotContains(t, cache.entries, "u1")
}

func TestAddUser(t *testing.T) {
	svc, repo, _ := newService(t)

	u, err := svc.AddUser("Waiter@Hotel.test", "123456", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, "waiter@hotel.test", u.Email)
	assert.NotEqual(t, "123456", repo.users[u.ID].PasswordHash)

	tests := []struct {
		name     string
		email    string
		password string
		role     string
		status   int
	}{
		{"missing fields", "", "", "", http.StatusBadRequest},
		{"superadmin", "boss@hotel.test", "123456", models.RoleSuperAdmin, http.StatusForbidden},
		{"unknown role", "x@hotel.test", "123456", "CHEF", http.StatusBadRequest},
		{"short password", "x@hotel.test", "123", models.RoleUser, http.StatusBadRequest},
		{"duplicate", "waiter@hotel.test", "123456", models.RoleAdmin, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddUser(tt.email, tt.password, tt.role)
			assert.Equal(t, tt.status, utils.StatusOf(err))
		})
	}
}

func TestUpdateUserRole(t *testing.T) {
	svc, repo, cache := newService(t)
	seed(t, repo, "u1", "a@hotel.test", "123456", models.RoleUser)
	seed(t, repo, "root", "root@hotel.test", "123456", models.RoleSuperAdmin)
	ctx := context.Background()

	updated, err := svc.UpdateUserRole(ctx, "u1", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Contains(t, cache.invalidated, "u1")

	_, err = svc.UpdateUserRole(ctx, "root", models.RoleUser)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))

	_, err = svc.UpdateUserRole(ctx, "u1", models.RoleSuperAdmin)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))

	_, err = svc.UpdateUserRole(ctx, "missing", models.RoleUser)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestDeleteUser(t *testing.T) {
	svc, repo, _ := newService(t)
	seed(t, repo, "u1", "a@hotel.test", "123456", models.RoleAdmin)
	seed(t, repo, "root", "root@hotel.test", "123456", models.RoleSuperAdmin)
	ctx := context.Background()

	assert.Equal(t, http.StatusForbidden, utils.StatusOf(svc.DeleteUser(ctx, "root")))
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(svc.DeleteUser(ctx, "missing")))
	require.NoError(t, svc.DeleteUser(ctx, "u1"))
	assert.NotContains(t, repo.users, "u1")
}

func TestEnsureSuperAdminIsIdempotent(t *testing.T) {
	svc, repo, _ := newService(t)

	require.NoError(t, svc.EnsureSuperAdmin("root@hotel.test", "changeme"))
	require.NoError(t, svc.EnsureSuperAdmin("root@hotel.test", "changeme"))
	require.NoError(t, svc.EnsureSuperAdmin("", ""))

	users, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleSuperAdmin, users[0].Role)
}
