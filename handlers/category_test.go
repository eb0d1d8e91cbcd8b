package handlers

import (
	"net/http"
	"testing"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

func TestInitializeDefaultCategories(t *testing.T) {
	env := setupTestEnv(t)
	want := len(models.DefaultExpenseCategories) + len(models.DefaultIncomeCategories)

	w := call(t, env.h.InitializeDefaultCategories, "POST", "/categories/defaults", "alice", "", nil)
	expectStatus(t, w, http.StatusOK)
	var result map[string]int
	decode(t, w, &result)
	if result["created"] != want {
		t.Fatalf("Expected %d created, got %v", want, result)
	}

	w = call(t, env.h.InitializeDefaultCategories, "POST", "/categories/defaults", "bob", "", nil)
	expectStatus(t, w, http.StatusOK)
	result = nil
	decode(t, w, &result)
	if result["created"] != 0 {
		t.Errorf("Expected no categories on the second call, got %v", result)
	}

	w = call(t, env.h.GetCategories, "GET", "/categories", "bob", "", nil)
	expectStatus(t, w, http.StatusOK)
	var categories []models.Category
	decode(t, w, &categories)
	if len(categories) != want {
		t.Errorf("Expected bob to see %d defaults, got %d", want, len(categories))
	}

	w = call(t, env.h.GetCategories, "GET", "/categories?kind=income", "bob", "", nil)
	expectStatus(t, w, http.StatusOK)
	categories = nil
	decode(t, w, &categories)
	if len(categories) != len(models.DefaultIncomeCategories) {
		t.Errorf("Expected %d income defaults, got %d", len(models.DefaultIncomeCategories), len(categories))
	}
}

func TestDefaultCategoriesAreReadOnly(t *testing.T) {
	env := setupTestEnv(t)

	w := call(t, env.h.InitializeDefaultCategories, "POST", "/categories/defaults", "alice", "", nil)
	expectStatus(t, w, http.StatusOK)

	w = call(t, env.h.GetCategories, "GET", "/categories?kind=expense", "bob", "", nil)
	var categories []models.Category
	decode(t, w, &categories)
	if len(categories) == 0 {
		t.Fatal("Expected default categories")
	}
	id := categories[0].ID

	w = call(t, env.h.GetCategory, "GET", "/categories/"+id, "bob", id, nil)
	expectStatus(t, w, http.StatusOK)

	w = call(t, env.h.UpdateCategory, "PUT", "/categories/"+id, "bob", id,
		`{"name":"Mine now","kind":"expense"}`)
	expectStatus(t, w, http.StatusBadRequest)

	w = call(t, env.h.DeleteCategory, "DELETE", "/categories/"+id, "alice", id, nil)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestCategoryOwnership(t *testing.T) {
	env := setupTestEnv(t)

	w := call(t, env.h.AddCategory, "POST", "/categories", "alice", "", `{"name":"Pets"}`)
	expectStatus(t, w, http.StatusBadRequest)

	w = call(t, env.h.AddCategory, "POST", "/categories", "alice", "", `{"name":"Pets","kind":"expense","isDefault":true}`)
	expectStatus(t, w, http.StatusCreated)
	var created models.Category
	decode(t, w, &created)
	if created.IsDefault {
		t.Error("Expected user categories to never be defaults")
	}

	w = call(t, env.h.GetCategory, "GET", "/categories/"+created.ID, "bob", created.ID, nil)
	expectStatus(t, w, http.StatusNotFound)

	w = call(t, env.h.DeleteCategory, "DELETE", "/categories/"+created.ID, "bob", created.ID, nil)
	expectStatus(t, w, http.StatusNotFound)

	w = call(t, env.h.UpdateCategory, "PUT", "/categories/"+created.ID, "alice", created.ID,
		`{"name":"Pet care","kind":"expense","color":"#00FF00"}`)
	expectStatus(t, w, http.StatusOK)
	var updated models.Category
	decode(t, w, &updated)
	if updated.Name != "Pet care" || updated.OwnerID != "alice" {
		t.Errorf("Unexpected update result: %+v", updated)
	}

	w = call(t, env.h.DeleteCategory, "DELETE", "/categories/"+created.ID, "alice", created.ID, nil)
	expectStatus(t, w, http.StatusNoContent)
}
