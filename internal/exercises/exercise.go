package exercises

import "time"

// Exercise is immutable catalog reference data, created by seeding,
// never mutated by end users.
type Exercise struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	MuscleGroup string    `json:"muscleGroup"`
	Equipment   string    `json:"equipment"`
	CreatedAt   time.Time `json:"createdAt"`
}

const (
	CategoryStrength    = "strength"
	CategoryCardio      = "cardio"
	CategoryFlexibility = "flexibility"
)

const (
	MuscleGroupChest     = "chest"
	MuscleGroupBack      = "back"
	MuscleGroupLegs      = "legs"
	MuscleGroupShoulders = "shoulders"
	MuscleGroupArms      = "arms"
	MuscleGroupCore      = "core"
	MuscleGroupFullBody  = "full_body"
)
