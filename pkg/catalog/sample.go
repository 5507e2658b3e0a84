package catalog

import "github.com/korjavin/smartpantry/pkg/models"

// Sample returns the built-in demo catalog used when no other source is configured
func Sample() []models.Recipe {
	return []models.Recipe{
		{
			ID:          101,
			Title:       "Spicy Chicken Rice",
			Ingredients: []string{"rice", "chicken", "onion", "tomato", "ginger", "chili"},
			Steps:       "1. Wash and soak rice for 30 minutes. 2. Cut chicken into pieces and marinate with salt. 3. Heat oil and fry onions until golden.",
			CookingTime: 45,
			Difficulty:  "medium",
			Tags:        []string{"spicy", "non_vegetarian", "main_course"},
		},
		{
			ID:          102,
			Title:       "Palak Paneer",
			Ingredients: []string{"paneer", "spinach", "onion", "tomato", "garlic", "cream"},
			Steps:       "1. Blanch spinach leaves in boiling water. 2. Blend spinach into smooth puree. 3. Cut paneer into cubes and fry lightly.",
			CookingTime: 30,
			Difficulty:  "easy",
			Tags:        []string{"vegetarian", "healthy", "main_course"},
		},
		{
			ID:          103,
			Title:       "Cheese Omelette",
			Ingredients: []string{"egg", "cheese", "butter", "bell_pepper", "onion"},
			Steps:       "1. Beat eggs with salt and pepper. 2. Dice bell peppers and onions finely. 3. Heat butter in non-stick pan.",
			CookingTime: 10,
			Difficulty:  "easy",
			Tags:        []string{"quick", "breakfast", "vegetarian"},
		},
		{
			ID:          104,
			Title:       "Dal Rice Bowl",
			Ingredients: []string{"lentils", "rice", "turmeric", "cumin", "onion", "tomato"},
			Steps:       "1. Wash and pressure cook lentils with turmeric. 2. Cook rice separately until fluffy. 3. Heat oil, add cumin seeds.",
			CookingTime: 35,
			Difficulty:  "easy",
			Tags:        []string{"healthy", "vegetarian", "gluten_free"},
		},
		{
			ID:          105,
			Title:       "Creamy Mushroom Pasta",
			Ingredients: []string{"pasta", "mushroom", "cream", "garlic", "herbs", "parmesan"},
			Steps:       "1. Boil pasta according to package instructions. 2. Slice mushrooms and mince garlic. 3. Heat oil in pan, saute garlic.",
			CookingTime: 25,
			Difficulty:  "medium",
			Tags:        []string{"italian", "vegetarian", "creamy"},
		},
	}
}
