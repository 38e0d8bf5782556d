package fakers

import (
	"log"

	"github.com/go-faker/faker/v4"
	"github.com/mattertouch/storefront/app/models"
	"golang.org/x/crypto/bcrypt"
)

func UserFaker() *models.User {
	name := faker.Name()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash faker password:", err)
	}

	return &models.User{
		Email:    faker.Email(),
		Password: string(hashed),
		Name:     &name,
		Role:     models.RoleCustomer,
	}
}

func AdminFaker(email, password string) *models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	name := "Administrator"
	return &models.User{
		Email:    email,
		Password: string(hashed),
		Name:     &name,
		Role:     models.RoleAdmin,
	}
}
