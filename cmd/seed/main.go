package main

import (
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/beautyflow/beautyflow-api/internal/config"
	dbpkg "github.com/beautyflow/beautyflow-api/internal/db"
	"github.com/beautyflow/beautyflow-api/internal/models"
)

// Popula o banco com um estabelecimento demo, usuário admin e catálogo
// inicial de serviços. Idempotente: se o admin já existe, não faz nada.
func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var existing models.User
	if err := db.Where("email = ?", "admin@beautyflow.com").First(&existing).Error; err == nil {
		log.Println("Seed já aplicado, nada a fazer.")
		return
	}

	establishment := models.Establishment{
		Name:    "Salão BeautyFlow",
		Phone:   "(11) 99999-0000",
		Email:   "contato@beautyflow.com",
		Address: "Rua das Flores, 123 - São Paulo/SP",
	}
	if err := db.Create(&establishment).Error; err != nil {
		log.Fatalf("failed to create establishment: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := models.User{
		EstablishmentID: establishment.ID,
		Name:            "Administrador",
		Email:           "admin@beautyflow.com",
		PasswordHash:    string(hash),
		Role:            "OWNER",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	services := []models.Service{
		{
			EstablishmentID: establishment.ID,
			Name:            "Corte Feminino",
			Category:        "Cabelo",
			DurationMin:     60,
			Price:           80,
			Active:          true,
		},
		{
			EstablishmentID: establishment.ID,
			Name:            "Corte Masculino",
			Category:        "Cabelo",
			DurationMin:     30,
			Price:           50,
			Active:          true,
		},
		{
			EstablishmentID: establishment.ID,
			Name:            "Coloração",
			Category:        "Cabelo",
			DurationMin:     120,
			Price:           200,
			Active:          true,
		},
		{
			EstablishmentID: establishment.ID,
			Name:            "Manicure",
			Category:        "Unhas",
			DurationMin:     45,
			Price:           40,
			Active:          true,
		},
	}
	for i := range services {
		if err := db.Create(&services[i]).Error; err != nil {
			log.Fatalf("failed to create service %q: %v", services[i].Name, err)
		}
	}

	professional := models.Professional{
		EstablishmentID: establishment.ID,
		Name:            "Maria Silva",
		Phone:           "(11) 98888-0000",
		Specialty:       "Colorista",
		Commission:      30,
	}
	if err := db.Create(&professional).Error; err != nil {
		log.Fatalf("failed to create professional: %v", err)
	}

	log.Println("Seed concluído.")
	log.Println("Login: admin@beautyflow.com / admin123")
}
