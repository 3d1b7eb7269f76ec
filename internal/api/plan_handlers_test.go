package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"smart-vocab/internal/db"
	"smart-vocab/internal/study"
)

func planTestRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	r.GET("/study/plans", ListPlansHandler())
	r.POST("/study/plans", CreatePlanHandler())
	r.PUT("/study/plans/:id/activate", ActivatePlanHandler())
	r.DELETE("/study/plans/:id", DeletePlanHandler())
	return r
}

func TestCreatePlanHandler_DeactivatesPrevious(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	u := seedUser(t, "learner", "user")
	b1 := seedReadyBook(t, "book1")
	b2 := seedReadyBook(t, "book2")
	r := planTestRouter(u.ID)

	for _, bookID := range []uint{b1.ID, b2.ID} {
		payload := CreatePlanRequest{BookID: bookID, Name: "plan"}
		body, _ := json.Marshal(payload)
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/study/plans", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
		}
	}

	var active []study.StudyPlan
	if err := db.DB.Where("user_id = ? AND is_active = ?", u.ID, true).Find(&active).Error; err != nil {
		t.Fatalf("failed to list plans: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected exactly 1 active plan, got %d", len(active))
	}
	if active[0].BookID != b2.ID {
		t.Errorf("latest plan should be the active one")
	}
}

func TestCreatePlanHandler_UnknownBook(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	u := seedUser(t, "learner", "user")
	r := planTestRouter(u.ID)

	payload := CreatePlanRequest{BookID: 9999, Name: "plan"}
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/study/plans", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d: %s", w.Code, w.Body.String())
	}
}

func TestActivatePlanHandler_SwitchesActive(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	u := seedUser(t, "learner", "user")
	b1 := seedReadyBook(t, "book1")
	b2 := seedReadyBook(t, "book2")
	p1 := study.StudyPlan{UserID: u.ID, BookID: b1.ID, Name: "p1", IsActive: false}
	p2 := study.StudyPlan{UserID: u.ID, BookID: b2.ID, Name: "p2", IsActive: true}
	db.DB.Create(&p1)
	db.DB.Create(&p2)
	r := planTestRouter(u.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/study/plans/"+toStrUint(p1.ID)+"/activate", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var reloaded1, reloaded2 study.StudyPlan
	db.DB.First(&reloaded1, p1.ID)
	db.DB.First(&reloaded2, p2.ID)
	if !reloaded1.IsActive {
		t.Errorf("activated plan should be active")
	}
	if reloaded2.IsActive {
		t.Errorf("previous plan should be deactivated")
	}
}

func TestDeletePlanHandler_ScopedToOwner(t *testing.T) {
	setupAPIDB(t)
	resetAPITables(t)
	owner := seedUser(t, "owner", "user")
	other := seedUser(t, "other", "user")
	b := seedReadyBook(t, "book1")
	p := study.StudyPlan{UserID: owner.ID, BookID: b.ID, Name: "p", IsActive: true}
	db.DB.Create(&p)

	// Another user cannot delete it
	r := planTestRouter(other.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/study/plans/"+toStrUint(p.ID), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign plan, got %d", w.Code)
	}

	// The owner can
	r = planTestRouter(owner.ID)
	w = httptest.NewRecorder()
	req = httptest.NewRequest("DELETE", "/study/plans/"+toStrUint(p.ID), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
}
