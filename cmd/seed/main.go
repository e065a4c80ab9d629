package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/router"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type seedUser struct {
	name    string
	email   string
	address string
	about   string
}

type seedRecipe struct {
	author       string
	category     string
	cuisine      string
	title        string
	description  string
	ingredients  []string
	instructions []string
	tags         []string
	prepTime     string
	public       bool
}

var seedUsers = []seedUser{
	{"John Doe", "john.doe@example.com", "12 Market Street", "Weeknight cook"},
	{"Jane Smith", "jane.smith@example.com", "4 Harbour Road", "Baker and bread nerd"},
	{"Bob Wilson", "bob.wilson@example.com", "98 Hill Lane", ""},
}

var seedCategories = []string{"Breakfast", "Mains", "Desserts", "Soups"}

var seedRecipes = []seedRecipe{
	{
		author: "john.doe@example.com", category: "Mains", cuisine: "Italian",
		title:        "Spaghetti Aglio e Olio",
		description:  "Garlic, olive oil and chilli",
		ingredients:  []string{"spaghetti", "garlic", "olive oil", "chilli flakes", "parsley"},
		instructions: []string{"Boil the pasta", "Fry the garlic gently", "Toss with pasta water"},
		tags:         []string{"quick", "vegetarian"},
		prepTime:     "20", public: true,
	},
	{
		author: "jane.smith@example.com", category: "Breakfast", cuisine: "American",
		title:        "Buttermilk Pancakes",
		ingredients:  []string{"flour", "buttermilk", "eggs", "butter"},
		instructions: []string{"Whisk", "Rest the batter", "Fry in butter"},
		prepTime:     "25", public: true,
	},
	{
		author: "jane.smith@example.com", category: "Soups", cuisine: "Thai",
		title:        "Tom Kha Gai",
		ingredients:  []string{"coconut milk", "chicken", "galangal", "lemongrass", "lime"},
		instructions: []string{"Simmer aromatics", "Poach chicken", "Season with lime and fish sauce"},
		tags:         []string{"spicy"},
		prepTime:     "40", public: false,
	},
	{
		author: "bob.wilson@example.com", category: "Desserts", cuisine: "French",
		title:        "Chocolate Mousse",
		ingredients:  []string{"dark chocolate", "eggs", "sugar"},
		instructions: []string{"Melt chocolate", "Whip whites", "Fold and chill"},
		prepTime:     "30", public: true,
	},
}

func main() {
	password := flag.String("password", "testpassword123", "Password given to every seeded user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == config.Production {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := service.NewDiskStore(cfg.UploadDir, router.UploadsPath)
	if err != nil {
		log.Fatalf("Failed to set up media storage: %v", err)
	}
	media := service.NewMediaService(store, cfg.MaxUploadBytes)
	users := service.NewUserService(db, media)
	categories := service.NewCategoryService(db, media, nil)
	cuisines := service.NewCuisineService(db, nil)
	recipes := service.NewRecipeService(db, media, categories, cuisines)

	ctx := context.Background()

	authors := make(map[string]string, len(seedUsers))
	for _, u := range seedUsers {
		id, err := ensureUser(ctx, db, users, u, *password)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.email, err)
		}
		authors[u.email] = id
	}

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, name := range seedCategories {
		category := models.Category{Name: name, ImageURL: router.UploadsPath + "/placeholder.png"}
		if err := db.Where(models.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
			log.Fatalf("Failed to seed category %s: %v", name, err)
		}
		categoryIDs[name] = category.ID
	}

	created := 0
	for _, r := range seedRecipes {
		userID := authors[r.author]
		var count int64
		db.Model(&models.Recipe{}).Where("user_id = ? AND title = ?", userID, r.title).Count(&count)
		if count > 0 {
			log.Printf("Recipe %q already exists, skipping...", r.title)
			continue
		}

		public := "false"
		if r.public {
			public = "true"
		}
		in := types.RecipeInput{
			Category:     types.Value(categoryIDs[r.category]),
			Cuisine:      types.Value(r.cuisine),
			Title:        types.Value(r.title),
			Description:  types.Value(r.description),
			Ingredients:  types.RawList(r.ingredients...),
			Instructions: types.RawList(r.instructions...),
			Tags:         types.RawList(r.tags...),
			PrepTime:     types.Value(r.prepTime),
			IsPublic:     types.Value(public),
		}
		recipe, err := recipes.CreateRecipe(ctx, userID, in, nil)
		if err != nil {
			log.Printf("Failed to seed recipe %q: %v", r.title, err)
			continue
		}
		created++
		log.Printf("Created recipe: %s (%s)", recipe.Title, recipe.ID)
	}

	log.Printf("Seeded %d users, %d categories and %d new recipes", len(authors), len(categoryIDs), created)
	log.Printf("Log in with any seeded email and password %q", *password)
}

// ensureUser signs the user up, or returns the existing account's id
func ensureUser(ctx context.Context, db *gorm.DB, users *service.UserService, u seedUser, password string) (string, error) {
	user, err := users.CreateUser(ctx, types.UserInput{
		Name:     types.Value(u.name),
		Email:    types.Value(u.email),
		Address:  types.Value(u.address),
		Password: types.Value(password),
		About:    types.Value(u.about),
	}, nil)
	if err == nil {
		log.Printf("Created user: %s (%s)", user.Name, user.Email)
		return user.ID, nil
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindConflict {
		return "", err
	}
	var existing models.User
	if err := db.WithContext(ctx).Where("email = ?", u.email).First(&existing).Error; err != nil {
		return "", err
	}
	log.Printf("User %s already exists, skipping...", u.email)
	return existing.ID, nil
}
