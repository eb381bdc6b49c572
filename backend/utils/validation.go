package utils

import (
	"fmt"
	"math"
	"regexp"

	"github.com/mektycoon/mekgold/backend/models"
	dbmodels "github.com/mektycoon/mekgold/tycoon/database/models"
)

var (
	// ValidAccountIDRegex validates account ids taken from the path
	ValidAccountIDRegex = regexp.MustCompile(`^[a-zA-Z0-9\-_.:]{1,64}$`)

	// ValidIdentifierRegex validates modifier type ids and sources
	ValidIdentifierRegex = regexp.MustCompile(`^[a-z0-9_\-]{1,64}$`)

	MaxAssetLevel = 1000
	MaxAssetName  = 100
)

func ValidateAccountID(id string) []models.ValidationError {
	if !ValidAccountIDRegex.MatchString(id) {
		return []models.ValidationError{{Field: "account_id", Message: "Account ID must be 1-64 letters, digits or -_.:"}}
	}
	return nil
}

func ValidateAcquireAssetRequest(req *models.AcquireAssetRequest) []models.ValidationError {
	var errors []models.ValidationError
	if req.Name == "" {
		errors = append(errors, models.ValidationError{Field: "name", Message: "Name is required"})
	} else if len(req.Name) > MaxAssetName {
		errors = append(errors, models.ValidationError{Field: "name", Message: fmt.Sprintf("Name must be at most %d characters", MaxAssetName)})
	}
	errors = append(errors, validateLevel(req.Level)...)
	return errors
}

func ValidateSetAssetLevelRequest(req *models.SetAssetLevelRequest) []models.ValidationError {
	return validateLevel(req.Level)
}

func validateLevel(level int) []models.ValidationError {
	if level < 1 || level > MaxAssetLevel {
		return []models.ValidationError{{Field: "level", Message: fmt.Sprintf("Level must be between 1 and %d", MaxAssetLevel)}}
	}
	return nil
}

func ValidateGrantModifierRequest(req *models.GrantModifierRequest) []models.ValidationError {
	var errors []models.ValidationError
	if !ValidIdentifierRegex.MatchString(req.Type) {
		errors = append(errors, models.ValidationError{Field: "type", Message: "Type must be a lowercase identifier"})
	}
	if req.Source != "" && !ValidIdentifierRegex.MatchString(req.Source) {
		errors = append(errors, models.ValidationError{Field: "source", Message: "Source must be a lowercase identifier"})
	}
	if req.Magnitude != nil && (math.IsNaN(*req.Magnitude) || math.IsInf(*req.Magnitude, 0)) {
		errors = append(errors, models.ValidationError{Field: "magnitude", Message: "Magnitude must be a finite number"})
	}
	if req.DurationMs != nil && *req.DurationMs < 0 {
		errors = append(errors, models.ValidationError{Field: "duration_ms", Message: "Duration must not be negative"})
	}
	return errors
}

func ValidateModifierTypeRequest(req *models.ModifierTypeRequest) []models.ValidationError {
	var errors []models.ValidationError
	if !ValidIdentifierRegex.MatchString(req.ID) {
		errors = append(errors, models.ValidationError{Field: "id", Message: "ID must be a lowercase identifier"})
	}
	if req.Category == "" {
		errors = append(errors, models.ValidationError{Field: "category", Message: "Category is required"})
	}
	if req.Kind != dbmodels.KindFlat && req.Kind != dbmodels.KindPercentage {
		errors = append(errors, models.ValidationError{Field: "kind", Message: "Kind must be flat or percentage"})
	}
	if req.MaxStacks < 1 {
		errors = append(errors, models.ValidationError{Field: "max_stacks", Message: "Max stacks must be at least 1"})
	}
	if req.DefaultDurationSec < 0 {
		errors = append(errors, models.ValidationError{Field: "default_duration_seconds", Message: "Duration must not be negative"})
	}
	return errors
}
