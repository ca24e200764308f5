package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/maintdesk/maintdesk/internal/models"
)

func TestRoomLifecycle(t *testing.T) {
	database := testSetup(t)
	svc := NewRoomService(database)
	admin := createTestUser(t, database, "admin", models.RoleAdministrator)
	ivanov := createTestUser(t, database, "ivanov", models.RoleUser)

	if _, err := svc.Create(ivanov, RoomInput{Number: "101"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("ordinary user must not create rooms, got %v", err)
	}

	room, err := svc.Create(admin, RoomInput{Number: "101", Description: "East wing"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var cErr *ConflictError
	if _, err := svc.Create(admin, RoomInput{Number: "101"}); !errors.As(err, &cErr) {
		t.Errorf("duplicate room number must conflict, got %v", err)
	}

	updated, err := svc.Update(admin, room.ID, RoomInput{Number: "102", Description: "West wing"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Number != "102" || updated.Description != "West wing" {
		t.Errorf("update not applied: %+v", updated)
	}

	if _, err := svc.Update(admin, uuid.New(), RoomInput{Number: "103"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("updating an unknown room should be ErrNotFound, got %v", err)
	}

	if err := svc.Delete(admin, room.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	rooms, err := svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("room should be gone, %d left", len(rooms))
	}
}

func TestRoomDeleteRestrictedWhenReferenced(t *testing.T) {
	database := testSetup(t)
	rooms := NewRoomService(database)
	requests := NewRequestService(database)
	admin := createTestUser(t, database, "admin", models.RoleAdministrator)

	room, err := rooms.Create(admin, RoomInput{Number: "101"})
	if err != nil {
		t.Fatalf("Create room failed: %v", err)
	}
	req, err := requests.Create(admin, CreateRequestInput{
		Title:       "t",
		Description: "d",
		RoomID:      &room.ID,
	})
	if err != nil {
		t.Fatalf("Create request failed: %v", err)
	}

	var cErr *ConflictError
	if err := rooms.Delete(admin, room.ID); !errors.As(err, &cErr) {
		t.Errorf("deleting a referenced room must conflict, got %v", err)
	}

	if err := requests.Delete(admin, req.ID); err != nil {
		t.Fatalf("Delete request failed: %v", err)
	}
	if err := rooms.Delete(admin, room.ID); err != nil {
		t.Errorf("room should be deletable once unreferenced, got %v", err)
	}
}

func TestStatusLifecycle(t *testing.T) {
	database := testSetup(t)
	svc := NewStatusService(database)
	admin := createTestUser(t, database, "admin", models.RoleAdministrator)
	ivanov := createTestUser(t, database, "ivanov", models.RoleUser)

	if _, err := svc.Create(ivanov, StatusInput{Name: "On hold", Code: "on_hold"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("ordinary user must not create statuses, got %v", err)
	}

	status, err := svc.Create(admin, StatusInput{Name: "On hold", Code: "on_hold", SortOrder: 5})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if status.Color != models.DefaultStatusColor {
		t.Errorf("color should default to %s, got %s", models.DefaultStatusColor, status.Color)
	}

	var cErr *ConflictError
	if _, err := svc.Create(admin, StatusInput{Name: "Again", Code: "on_hold"}); !errors.As(err, &cErr) {
		t.Errorf("duplicate status code must conflict, got %v", err)
	}

	list, err := svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	// four seeded statuses plus the new one, ordered by sort order
	if len(list) != 5 {
		t.Fatalf("got %d statuses, want 5", len(list))
	}
	if list[len(list)-1].Code != "on_hold" {
		t.Errorf("new status should sort last, list ends with %s", list[len(list)-1].Code)
	}

	if err := svc.Delete(admin, status.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestStatusDeleteRestrictedWhenReferenced(t *testing.T) {
	database := testSetup(t)
	statuses := NewStatusService(database)
	requests := NewRequestService(database)
	admin := createTestUser(t, database, "admin", models.RoleAdministrator)

	if _, err := requests.Create(admin, CreateRequestInput{Title: "t", Description: "d"}); err != nil {
		t.Fatalf("Create request failed: %v", err)
	}

	newStatus := statusByCode(t, database, models.StatusCodeNew)
	var cErr *ConflictError
	if err := statuses.Delete(admin, newStatus.ID); !errors.As(err, &cErr) {
		t.Errorf("deleting a referenced status must conflict, got %v", err)
	}
}

func TestTypeListSeeded(t *testing.T) {
	database := testSetup(t)
	svc := NewTypeService(database)

	types, err := svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(types) != 6 {
		t.Fatalf("got %d seeded types, want 6", len(types))
	}
	if types[0].Name != "Repair" || types[len(types)-1].Name != "Other" {
		t.Errorf("types not ordered by sort order: first %q last %q", types[0].Name, types[len(types)-1].Name)
	}
}

func TestUserService(t *testing.T) {
	database := testSetup(t)
	svc := NewUserService(database)
	admin := createTestUser(t, database, "admin", models.RoleAdministrator)
	ivanov := createTestUser(t, database, "ivanov", models.RoleUser)

	var userRole models.Role
	if err := database.Where("code = ?", models.RoleUser).First(&userRole).Error; err != nil {
		t.Fatalf("role not seeded: %v", err)
	}

	if _, err := svc.List(ivanov); !errors.Is(err, ErrForbidden) {
		t.Errorf("ordinary user must not list users, got %v", err)
	}
	if _, err := svc.Create(ivanov, CreateUserInput{Login: "x", Password: "x", Name: "x", RoleID: userRole.ID}); !errors.Is(err, ErrForbidden) {
		t.Errorf("ordinary user must not create users, got %v", err)
	}

	created, err := svc.Create(admin, CreateUserInput{
		Login:    "petrov",
		Password: "user123",
		Name:     "Petrov P.",
		RoleID:   userRole.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.PasswordHash == "user123" {
		t.Error("password must be stored hashed")
	}
	if created.Role.Code != models.RoleUser {
		t.Errorf("role = %s, want %s", created.Role.Code, models.RoleUser)
	}

	var cErr *ConflictError
	if _, err := svc.Create(admin, CreateUserInput{
		Login: "petrov", Password: "x", Name: "x", RoleID: userRole.ID,
	}); !errors.As(err, &cErr) {
		t.Errorf("duplicate login must conflict, got %v", err)
	}

	var vErr *ValidationError
	if _, err := svc.Create(admin, CreateUserInput{Login: "", Password: "x", Name: "x", RoleID: userRole.ID}); !errors.As(err, &vErr) {
		t.Errorf("missing login must be a validation error, got %v", err)
	}
	if _, err := svc.Create(admin, CreateUserInput{Login: "y", Password: "x", Name: "x", RoleID: uuid.New()}); !errors.As(err, &vErr) {
		t.Errorf("unknown role must be a validation error, got %v", err)
	}

	users, err := svc.List(admin)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("got %d users, want 3", len(users))
	}

	responsible, err := svc.ListResponsible()
	if err != nil {
		t.Fatalf("ListResponsible failed: %v", err)
	}
	for _, u := range responsible {
		if u.Login == "admin" {
			t.Error("privileged accounts must not appear in the responsible list")
		}
	}
	if len(responsible) != 2 {
		t.Errorf("got %d responsible candidates, want 2", len(responsible))
	}
}
