package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"foodgram/internal/database"
	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// Пакетный импорт справочников. Читает CSV и пишет через те же репозитории,
// что и HTTP-граница:
//
//	ingredients.csv: name,measurement_unit
//	tags.csv:        name,slug
func main() {
	ingredientsPath := flag.String("ingredients", "", "path to ingredients CSV")
	tagsPath := flag.String("tags", "", "path to tags CSV")
	flag.Parse()

	if *ingredientsPath == "" && *tagsPath == "" {
		log.Fatal("nothing to import: pass -ingredients and/or -tags")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()

	if *ingredientsPath != "" {
		repo := repository.NewIngredientRepository(db)
		n := importCSV(*ingredientsPath, func(record []string) error {
			return repo.Create(ctx, &domain.Ingredient{
				Name:            record[0],
				MeasurementUnit: record[1],
			})
		})
		log.Printf("imported %d ingredients", n)
	}

	if *tagsPath != "" {
		repo := repository.NewTagRepository(db)
		n := importCSV(*tagsPath, func(record []string) error {
			return repo.Create(ctx, &domain.Tag{
				Name: record[0],
				Slug: record[1],
			})
		})
		log.Printf("imported %d tags", n)
	}
}

func importCSV(path string, insert func(record []string) error) int {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		if err := insert(record); err != nil {
			log.Printf("skip %v: %v", record, err)
			continue
		}
		count++
	}
	return count
}
