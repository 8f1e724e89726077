package repository

import (
	"path/filepath"
	"testing"
	"time"

	"chitraboard/internal/database"
	"chitraboard/internal/models"
)

func setupDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func createProfile(t *testing.T, repo *ProfileRepository, username string, role models.Role) *models.Profile {
	t.Helper()
	p, err := repo.CreateProfile(username, username+"@example.com", "Test "+username, role, "hash")
	if err != nil {
		t.Fatalf("CreateProfile(%s) failed: %v", username, err)
	}
	return p
}

func TestProfileRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewProfileRepository(db)

	first := createProfile(t, repo, "asha.t", models.RoleTherapist)
	if first.Role != models.RoleAdmin {
		t.Errorf("first profile role = %s, want admin", first.Role)
	}

	therapist := createProfile(t, repo, "ravi.t", models.RoleTherapist)
	if therapist.Role != models.RoleTherapist {
		t.Errorf("second profile role = %s, want therapist", therapist.Role)
	}

	got, err := repo.GetProfileByUsername("ravi.t")
	if err != nil {
		t.Fatalf("GetProfileByUsername failed: %v", err)
	}
	if got == nil || got.ID != therapist.ID {
		t.Fatalf("GetProfileByUsername returned %+v", got)
	}

	missing, err := repo.GetProfileByID("no-such-id")
	if err != nil {
		t.Fatalf("GetProfileByID failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing profile")
	}

	if err := repo.UpdateRole(therapist.ID, models.RoleParent); err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}
	got, _ = repo.GetProfileByID(therapist.ID)
	if got.Role != models.RoleParent {
		t.Errorf("role after update = %s, want parent", got.Role)
	}

	parents, err := repo.GetProfilesByRole(models.RoleParent)
	if err != nil {
		t.Fatalf("GetProfilesByRole failed: %v", err)
	}
	if len(parents) != 1 {
		t.Errorf("expected 1 parent, got %d", len(parents))
	}
}

func TestSessionsAndResetTokens(t *testing.T) {
	db := setupDB(t)
	repo := NewProfileRepository(db)
	profile := createProfile(t, repo, "asha.t", models.RoleTherapist)

	_, err := repo.CreateSession("sess-1", profile.ID, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	sess, err := repo.GetSession("sess-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if sess == nil || sess.ProfileID != profile.ID {
		t.Fatalf("GetSession returned %+v", sess)
	}

	// Expired sessions get swept
	if _, err := repo.CreateSession("sess-old", profile.ID, time.Now().Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeleteExpiredSessions(); err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}
	if sess, _ := repo.GetSession("sess-old"); sess != nil {
		t.Error("expired session should be deleted")
	}
	if sess, _ := repo.GetSession("sess-1"); sess == nil {
		t.Error("live session should survive the sweep")
	}

	if err := repo.CreateResetToken("tok-1", profile.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateResetToken failed: %v", err)
	}
	tok, err := repo.GetResetToken("tok-1")
	if err != nil {
		t.Fatalf("GetResetToken failed: %v", err)
	}
	if tok == nil || tok.Used {
		t.Fatalf("GetResetToken returned %+v", tok)
	}
	if err := repo.MarkResetTokenUsed("tok-1"); err != nil {
		t.Fatalf("MarkResetTokenUsed failed: %v", err)
	}
	tok, _ = repo.GetResetToken("tok-1")
	if !tok.Used {
		t.Error("token should be marked used")
	}
}

func TestActivityAssignmentResponseFlow(t *testing.T) {
	db := setupDB(t)
	profiles := NewProfileRepository(db)
	activities := NewActivityRepository(db)
	assignments := NewAssignmentRepository(db)
	responses := NewResponseRepository(db)

	therapist := createProfile(t, profiles, "asha.t", models.RoleTherapist)
	child := createProfile(t, profiles, "sunny-peacock", models.RoleChild)

	content := models.MatchingContent{
		Questions: []models.MatchingQuestion{{
			ID:             "q1",
			PromptSymbolID: "food-roti",
			Options: []models.MatchingOption{
				{ID: "opt-1", SymbolID: "food-roti", Label: "Roti"},
				{ID: "opt-2", SymbolID: "food-rice", Label: "Rice"},
			},
			CorrectOptionID: "opt-1",
		}},
	}

	activity, err := activities.CreateActivity(therapist.ID, "Match the food", models.ActivityMatching, content)
	if err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	loaded, err := activities.GetActivityByID(activity.ID)
	if err != nil {
		t.Fatalf("GetActivityByID failed: %v", err)
	}
	if len(loaded.Content.Questions) != 1 || loaded.Content.Questions[0].CorrectOptionID != "opt-1" {
		t.Fatalf("content round-trip broken: %+v", loaded.Content)
	}

	assignment, err := assignments.CreateAssignment(activity.ID, child.ID, therapist.ID, nil)
	if err != nil {
		t.Fatalf("CreateAssignment failed: %v", err)
	}
	if assignment.Status != models.StatusAssigned {
		t.Errorf("new assignment status = %s, want assigned", assignment.Status)
	}

	// Duplicate assignment violates the unique constraint
	if _, err := assignments.CreateAssignment(activity.ID, child.ID, therapist.ID, nil); err == nil {
		t.Error("duplicate assignment should fail")
	}

	exists, err := assignments.AssignmentExists(activity.ID, child.ID)
	if err != nil {
		t.Fatalf("AssignmentExists failed: %v", err)
	}
	if !exists {
		t.Error("AssignmentExists should report true")
	}

	withActivity, err := assignments.GetAssignmentsForChild(child.ID)
	if err != nil {
		t.Fatalf("GetAssignmentsForChild failed: %v", err)
	}
	if len(withActivity) != 1 || withActivity[0].Activity.Name != "Match the food" {
		t.Fatalf("GetAssignmentsForChild returned %+v", withActivity)
	}

	if err := assignments.UpdateStatus(assignment.ID, models.StatusInProgress); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	resp, err := responses.CreateResponse(assignment.ID, child.ID, activity.ID,
		map[string]string{"q1": "opt-1"}, 1, 1, 42)
	if err != nil {
		t.Fatalf("CreateResponse failed: %v", err)
	}
	if resp.Score != 1 {
		t.Errorf("response score = %d, want 1", resp.Score)
	}

	childResponses, err := responses.GetResponsesForChild(child.ID)
	if err != nil {
		t.Fatalf("GetResponsesForChild failed: %v", err)
	}
	if len(childResponses) != 1 || childResponses[0].Answers["q1"] != "opt-1" {
		t.Fatalf("GetResponsesForChild returned %+v", childResponses)
	}
}

func TestLinkRepository(t *testing.T) {
	db := setupDB(t)
	profiles := NewProfileRepository(db)
	links := NewLinkRepository(db)

	therapist := createProfile(t, profiles, "asha.t", models.RoleTherapist)
	parent := createProfile(t, profiles, "ravi.p", models.RoleParent)
	child := createProfile(t, profiles, "sunny-peacock", models.RoleChild)

	link, err := links.CreateLink(parent.ID, child.ID, therapist.ID)
	if err != nil {
		t.Fatalf("CreateLink failed: %v", err)
	}

	exists, err := links.LinkExists(parent.ID, child.ID)
	if err != nil {
		t.Fatalf("LinkExists failed: %v", err)
	}
	if !exists {
		t.Error("link should exist")
	}

	// Duplicate link violates the unique constraint
	if _, err := links.CreateLink(parent.ID, child.ID, therapist.ID); err == nil {
		t.Error("duplicate link should fail")
	}

	children, err := links.GetChildrenForParent(parent.ID)
	if err != nil {
		t.Fatalf("GetChildrenForParent failed: %v", err)
	}
	if len(children) != 1 || children[0].ID != child.ID {
		t.Fatalf("GetChildrenForParent returned %+v", children)
	}

	if err := links.DeleteLink(link.ID); err != nil {
		t.Fatalf("DeleteLink failed: %v", err)
	}
	exists, _ = links.LinkExists(parent.ID, child.ID)
	if exists {
		t.Error("link should be gone after delete")
	}
}

func TestResourceRepository(t *testing.T) {
	db := setupDB(t)
	if err := db.SeedResourceCategories(); err != nil {
		t.Fatalf("SeedResourceCategories failed: %v", err)
	}

	profiles := NewProfileRepository(db)
	resources := NewResourceRepository(db)

	creator := createProfile(t, profiles, "asha.t", models.RoleTherapist)
	buyer := createProfile(t, profiles, "meena.t", models.RoleTherapist)

	categories, err := resources.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) == 0 {
		t.Fatal("expected seeded categories")
	}
	category := categories[0]

	free, err := resources.CreateResource(&models.Resource{
		Title:       "Morning routine schedule",
		Description: "Wake up, brush, breakfast",
		Type:        models.ResourceVisualSchedule,
		CategoryID:  category.ID,
		CreatorID:   creator.ID,
	})
	if err != nil {
		t.Fatalf("CreateResource failed: %v", err)
	}

	paid, err := resources.CreateResource(&models.Resource{
		Title:       "Festival AAC board",
		Description: "Diwali vocabulary",
		Type:        models.ResourceAACBoard,
		CategoryID:  category.ID,
		CreatorID:   creator.ID,
		PriceCents:  19900,
	})
	if err != nil {
		t.Fatalf("CreateResource failed: %v", err)
	}

	t.Run("filters", func(t *testing.T) {
		freeOnly, err := resources.ListResources(ResourceFilter{FreeOnly: true})
		if err != nil {
			t.Fatalf("ListResources failed: %v", err)
		}
		if len(freeOnly) != 1 || freeOnly[0].ID != free.ID {
			t.Errorf("FreeOnly filter returned %d resources", len(freeOnly))
		}

		byType, err := resources.ListResources(ResourceFilter{Type: models.ResourceAACBoard})
		if err != nil {
			t.Fatalf("ListResources failed: %v", err)
		}
		if len(byType) != 1 || byType[0].ID != paid.ID {
			t.Errorf("Type filter returned %d resources", len(byType))
		}

		search, err := resources.ListResources(ResourceFilter{Search: "diwali"})
		if err != nil {
			t.Fatalf("ListResources failed: %v", err)
		}
		if len(search) != 1 || search[0].ID != paid.ID {
			t.Errorf("Search filter returned %d resources", len(search))
		}
	})

	t.Run("download counter", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			if err := resources.RecordDownload(free.ID, buyer.ID); err != nil {
				t.Fatalf("RecordDownload failed: %v", err)
			}
		}
		got, _ := resources.GetResourceByID(free.ID)
		if got.DownloadCount != 3 {
			t.Errorf("download count = %d, want 3", got.DownloadCount)
		}
	})

	t.Run("purchases", func(t *testing.T) {
		if _, err := resources.CreatePurchase(paid.ID, buyer.ID, paid.PriceCents); err != nil {
			t.Fatalf("CreatePurchase failed: %v", err)
		}
		has, err := resources.HasPurchase(paid.ID, buyer.ID)
		if err != nil {
			t.Fatalf("HasPurchase failed: %v", err)
		}
		if !has {
			t.Error("purchase should be recorded")
		}
		if _, err := resources.CreatePurchase(paid.ID, buyer.ID, paid.PriceCents); err == nil {
			t.Error("second purchase of the same resource should fail")
		}
	})

	t.Run("ratings recompute", func(t *testing.T) {
		if err := resources.UpsertRating(free.ID, buyer.ID, 4, "good"); err != nil {
			t.Fatalf("UpsertRating failed: %v", err)
		}
		if err := resources.UpsertRating(free.ID, creator.ID, 2, ""); err != nil {
			t.Fatalf("UpsertRating failed: %v", err)
		}

		got, _ := resources.GetResourceByID(free.ID)
		if got.RatingCount != 2 {
			t.Errorf("rating count = %d, want 2", got.RatingCount)
		}
		if got.RatingAverage != 3 {
			t.Errorf("rating average = %v, want 3", got.RatingAverage)
		}

		// Re-rating replaces, not appends
		if err := resources.UpsertRating(free.ID, buyer.ID, 5, "better"); err != nil {
			t.Fatalf("UpsertRating failed: %v", err)
		}
		got, _ = resources.GetResourceByID(free.ID)
		if got.RatingCount != 2 {
			t.Errorf("rating count after re-rate = %d, want 2", got.RatingCount)
		}
		if got.RatingAverage != 3.5 {
			t.Errorf("rating average after re-rate = %v, want 3.5", got.RatingAverage)
		}
	})
}
