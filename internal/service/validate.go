package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/maintdesk/maintdesk/internal/models"
	"gorm.io/gorm"
)

// Structural limits applied before any mutation reaches the lifecycle
// engine.
const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 5000
	MaxPhotosPerRequest  = 10
	MaxPhotoSize         = 5 * 1024 * 1024
)

// validateCreate checks all structural rules for a new request and
// collects every violation into a single message.
func validateCreate(db *gorm.DB, in CreateRequestInput) error {
	var problems []string

	if in.Title == "" {
		problems = append(problems, "title is required")
	} else if len([]rune(in.Title)) > TitleMaxLength {
		problems = append(problems, fmt.Sprintf("title must not exceed %d characters", TitleMaxLength))
	}

	if in.Description == "" {
		problems = append(problems, "description is required")
	} else if len([]rune(in.Description)) > DescriptionMaxLength {
		problems = append(problems, fmt.Sprintf("description must not exceed %d characters", DescriptionMaxLength))
	}

	if in.Priority != nil && !in.Priority.Valid() {
		problems = append(problems, "invalid priority")
	}

	if msg := checkReference(db, &models.Room{}, in.RoomID, "room not found"); msg != "" {
		problems = append(problems, msg)
	}
	if msg := checkReference(db, &models.User{}, in.ResponsibleID, "responsible user not found"); msg != "" {
		problems = append(problems, msg)
	}
	if msg := checkReference(db, &models.RequestType{}, in.RequestTypeID, "request type not found"); msg != "" {
		problems = append(problems, msg)
	}

	if msg := photoProblem(in.Photos); msg != "" {
		problems = append(problems, msg)
	}

	if len(problems) > 0 {
		return &ValidationError{Message: strings.Join(problems, "; ")}
	}
	return nil
}

// validateUpdate checks only the fields that are present and returns on
// the first violation. The create/update asymmetry (collect-all versus
// first-invalid-wins) is part of the observable contract.
func validateUpdate(db *gorm.DB, in UpdateRequestInput) error {
	if in.Title != nil {
		if *in.Title == "" {
			return &ValidationError{Message: "title is required"}
		}
		if len([]rune(*in.Title)) > TitleMaxLength {
			return &ValidationError{Message: fmt.Sprintf("title must not exceed %d characters", TitleMaxLength)}
		}
	}

	if in.Description != nil {
		if *in.Description == "" {
			return &ValidationError{Message: "description is required"}
		}
		if len([]rune(*in.Description)) > DescriptionMaxLength {
			return &ValidationError{Message: fmt.Sprintf("description must not exceed %d characters", DescriptionMaxLength)}
		}
	}

	if in.Priority != nil && !in.Priority.Valid() {
		return &ValidationError{Message: "invalid priority"}
	}

	if msg := checkReference(db, &models.Room{}, in.RoomID, "room not found"); msg != "" {
		return &ValidationError{Message: msg}
	}
	if msg := checkReference(db, &models.User{}, in.ResponsibleID, "responsible user not found"); msg != "" {
		return &ValidationError{Message: msg}
	}
	if msg := checkReference(db, &models.RequestType{}, in.RequestTypeID, "request type not found"); msg != "" {
		return &ValidationError{Message: msg}
	}

	if in.Photos != nil {
		if msg := photoProblem(*in.Photos); msg != "" {
			return &ValidationError{Message: msg}
		}
	}

	return nil
}

// checkReference returns msg when id is set but no row with that id
// exists. Absent references are allowed.
func checkReference(db *gorm.DB, model interface{}, id *uuid.UUID, msg string) string {
	if id == nil {
		return ""
	}
	var count int64
	if err := db.Model(model).Where("id = ?", *id).Count(&count).Error; err != nil || count == 0 {
		return msg
	}
	return ""
}

// photoProblem checks the photo set and reports the first offending
// photo by its 1-based position, or "" if the set is acceptable.
func photoProblem(photos [][]byte) string {
	if len(photos) > MaxPhotosPerRequest {
		return fmt.Sprintf("not more than %d photos", MaxPhotosPerRequest)
	}
	for i, p := range photos {
		if len(p) > MaxPhotoSize {
			return fmt.Sprintf("photo %d: size must not exceed 5 MB", i+1)
		}
		if !isJPEG(p) && !isPNG(p) {
			return fmt.Sprintf("photo %d: only JPEG or PNG format allowed", i+1)
		}
	}
	return ""
}

func isJPEG(b []byte) bool {
	return len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8
}

func isPNG(b []byte) bool {
	return len(b) >= 3 && b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E
}
