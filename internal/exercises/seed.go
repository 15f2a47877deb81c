package exercises

import "strings"

// CatalogSeed is the built-in exercise catalog. Exercise ids are slugs
// derived from the (unique) exercise names.
var CatalogSeed = []Exercise{
	// chest
	{
		Name:        "Bench Press",
		Description: "Lie on a flat bench and press the weight up",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupChest,
		Equipment:   "barbell, bench",
	},
	{
		Name:        "Push-ups",
		Description: "Classic bodyweight exercise for chest and triceps",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupChest,
		Equipment:   "none",
	},
	// back
	{
		Name:        "Pull-ups",
		Description: "Vertical pulling exercise for back and biceps",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupBack,
		Equipment:   "pull-up bar",
	},
	{
		Name:        "Barbell Rows",
		Description: "Bent over rowing movement for back development",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupBack,
		Equipment:   "barbell",
	},
	// legs
	{
		Name:        "Squats",
		Description: "Fundamental lower body exercise",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupLegs,
		Equipment:   "barbell",
	},
	{
		Name:        "Deadlifts",
		Description: "Compound exercise for posterior chain",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupLegs,
		Equipment:   "barbell",
	},
	// shoulders
	{
		Name:        "Overhead Press",
		Description: "Vertical pressing movement for shoulders",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupShoulders,
		Equipment:   "barbell, dumbbells",
	},
	{
		Name:        "Lateral Raises",
		Description: "Isolation exercise for lateral deltoids",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupShoulders,
		Equipment:   "dumbbells",
	},
	// arms
	{
		Name:        "Bicep Curls",
		Description: "Isolation exercise for biceps",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupArms,
		Equipment:   "dumbbells, barbell",
	},
	{
		Name:        "Tricep Extensions",
		Description: "Isolation exercise for triceps",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupArms,
		Equipment:   "dumbbells, cable machine",
	},
	// core
	{
		Name:        "Plank",
		Description: "Isometric core exercise",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupCore,
		Equipment:   "none",
	},
	{
		Name:        "Crunches",
		Description: "Basic abdominal exercise",
		Category:    CategoryStrength,
		MuscleGroup: MuscleGroupCore,
		Equipment:   "none",
	},
	// cardio
	{
		Name:        "Running",
		Description: "Basic cardiovascular exercise",
		Category:    CategoryCardio,
		MuscleGroup: MuscleGroupFullBody,
		Equipment:   "none",
	},
	{
		Name:        "Cycling",
		Description: "Low-impact cardiovascular exercise",
		Category:    CategoryCardio,
		MuscleGroup: MuscleGroupFullBody,
		Equipment:   "bicycle or stationary bike",
	},
	// flexibility
	{
		Name:        "Standing Forward Bend",
		Description: "Basic hamstring and lower back stretch",
		Category:    CategoryFlexibility,
		MuscleGroup: MuscleGroupFullBody,
		Equipment:   "none",
	},
	{
		Name:        "Cat-Cow Stretch",
		Description: "Spinal mobility exercise",
		Category:    CategoryFlexibility,
		MuscleGroup: MuscleGroupBack,
		Equipment:   "none",
	},
}

// SlugID derives an exercise id from its unique name, e.g.
// "Bench Press" -> "bench-press".
func SlugID(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
