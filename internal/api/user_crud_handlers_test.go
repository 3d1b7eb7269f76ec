package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"smart-vocab/internal/db"
	"smart-vocab/internal/user"
)

// GET /users/me
func TestGetMeHandler(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	u := seedUser(t, "testuser", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", u.ID)
		c.Next()
	})
	r.GET("/users/me", GetMeHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	if !contains(w.Body.String(), "testuser") {
		t.Errorf("expected username in response, got: %s", w.Body.String())
	}
}

// PUT /users/me
func TestUpdateMeHandler(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	u := seedUser(t, "testuser", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", u.ID)
		c.Next()
	})
	r.PUT("/users/me", UpdateMeHandler())
	payload := UpdateMeRequest{Password: "newpw", Email: "new@example.com"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/users/me", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var updated user.User
	if err := db.DB.First(&updated, u.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Errorf("expected updated email, got %q", updated.Email)
	}
	if updated.PasswordHash == "hash" {
		t.Errorf("password hash should have changed")
	}
}

// GET /users (admin only)
func TestListUsersHandler_ForbiddenForNonAdmin(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	u := seedUser(t, "plainuser", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", u.ID)
		c.Set("userRole", "user")
		c.Next()
	})
	r.GET("/users", ListUsersHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListUsersHandler_AdminSeesAll(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	admin := seedUser(t, "adminuser", "admin")
	seedUser(t, "other1", "user")
	seedUser(t, "other2", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", admin.ID)
		c.Set("userRole", "admin")
		c.Next()
	})
	r.GET("/users", ListUsersHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, name := range []string{"adminuser", "other1", "other2"} {
		if !contains(body, name) {
			t.Errorf("expected %s in list, got: %s", name, body)
		}
	}
}

// PUT /users/:id (admin only)
func TestUpdateUserByIdHandler_ChangesRoleAndActive(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	admin := seedUser(t, "adminuser", "admin")
	target := seedUser(t, "target", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", admin.ID)
		c.Set("userRole", "admin")
		c.Next()
	})
	r.PUT("/users/:id", UpdateUserByIdHandler())
	inactive := false
	payload := UpdateUserRequest{Role: "admin", IsActive: &inactive, Subscription: "premium"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/users/"+toStrUint(target.ID), bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var updated user.User
	if err := db.DB.First(&updated, target.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if updated.Role != user.RoleAdmin {
		t.Errorf("expected role admin, got %q", updated.Role)
	}
	if updated.IsActive {
		t.Errorf("expected user deactivated")
	}
	if updated.Subscription != user.SubPremium {
		t.Errorf("expected premium subscription, got %q", updated.Subscription)
	}
}

// DELETE /users/:id (admin only)
func TestDeleteUserByIdHandler(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	admin := seedUser(t, "adminuser", "admin")
	target := seedUser(t, "target", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", admin.ID)
		c.Set("userRole", "admin")
		c.Next()
	})
	r.DELETE("/users/:id", DeleteUserByIdHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/users/"+toStrUint(target.ID), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var count int64
	db.DB.Model(&user.User{}).Where("id = ?", target.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected user deleted")
	}
}
