package users

import (
	"fmt"
	"time"
)

const (
	FitnessGoalWeightLoss     = "weight_loss"
	FitnessGoalMuscleGain     = "muscle_gain"
	FitnessGoalMaintenance    = "maintenance"
	FitnessGoalGeneralFitness = "general_fitness"

	ActivityLevelSedentary  = "sedentary"
	ActivityLevelLight      = "light"
	ActivityLevelModerate   = "moderate"
	ActivityLevelVeryActive = "very_active"
)

type User struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	Name          string    `json:"name"`
	Email         *string   `json:"email,omitempty"`
	PasswordHash  string    `json:"-"`
	Height        *float64  `json:"height"`
	Weight        *float64  `json:"weight"`
	FitnessGoal   *string   `json:"fitnessGoal"`
	ActivityLevel *string   `json:"activityLevel"`
	CreatedAt     time.Time `json:"createdAt"`
}

func ValidFitnessGoal(goal string) bool {
	switch goal {
	case FitnessGoalWeightLoss, FitnessGoalMuscleGain, FitnessGoalMaintenance, FitnessGoalGeneralFitness:
		return true
	default:
		return false
	}
}

func ValidActivityLevel(level string) bool {
	switch level {
	case ActivityLevelSedentary, ActivityLevelLight, ActivityLevelModerate, ActivityLevelVeryActive:
		return true
	default:
		return false
	}
}

type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
}

func (req *RegisterRequest) Validate() []string {
	var violations []string
	if len(req.Username) < 3 {
		violations = append(violations, "username must be at least 3 characters")
	}
	if len(req.Password) < 6 {
		violations = append(violations, "password must be at least 6 characters")
	}
	if len(req.Name) < 2 {
		violations = append(violations, "name must be at least 2 characters")
	}
	return violations
}

// ProfileUpdate holds the new profile values. Nil optional fields
// clear the stored value, matching a full profile form submit.
type ProfileUpdate struct {
	Name          string   `json:"name"`
	Height        *float64 `json:"height,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	FitnessGoal   *string  `json:"fitnessGoal,omitempty"`
	ActivityLevel *string  `json:"activityLevel,omitempty"`
}

func (u *ProfileUpdate) Validate() []string {
	var violations []string
	if len(u.Name) < 2 {
		violations = append(violations, "name must be at least 2 characters")
	}
	if u.Height != nil && *u.Height < 0 {
		violations = append(violations, "height must not be negative")
	}
	if u.Weight != nil && *u.Weight < 0 {
		violations = append(violations, "weight must not be negative")
	}
	if u.FitnessGoal != nil && !ValidFitnessGoal(*u.FitnessGoal) {
		violations = append(violations, fmt.Sprintf("invalid fitness goal: %s", *u.FitnessGoal))
	}
	if u.ActivityLevel != nil && !ValidActivityLevel(*u.ActivityLevel) {
		violations = append(violations, fmt.Sprintf("invalid activity level: %s", *u.ActivityLevel))
	}
	return violations
}
