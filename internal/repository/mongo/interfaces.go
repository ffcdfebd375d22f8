package mongo

import (
	"remesa/internal/repository/mongo/structs"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockery --case=snake --name=SettingsRepo

type SettingsRepo interface {
	SetDefault() error
	Load() (*structs.Settings, error)
	UpdateStatus(id primitive.ObjectID, status string) error
}
