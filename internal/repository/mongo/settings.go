package mongo

import (
	"context"

	"remesa/internal/repository/mongo/structs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	SettingsStatusEnabled  = "ENABLED"
	SettingsStatusDisabled = "DISABLED"

	settingsName = "pipeline"
)

type SettingsRepository struct {
	conn       *mongo.Client
	collection *mongo.Collection
}

func NewSettingsRepository(conn *mongo.Client) *SettingsRepository {
	collection := conn.Database("settings").Collection("pipeline")

	return &SettingsRepository{conn: conn, collection: collection}
}

func (r *SettingsRepository) SetDefault() error {
	settings := structs.Settings{
		CustodyCurrency: "mxn",
		BridgeCurrency:  "usd",
		PollIntervalSec: 2,
		OrderMaxWaitSec: 30,
		FillsMaxWaitSec: 30,
		FillsMaxRetries: 10,
		Status:          SettingsStatusEnabled,
	}

	check, err := r.Load()
	if err != nil && err != mongo.ErrNoDocuments {
		return err
	}

	if primitive.ObjectID.IsZero(check.ID) {
		_, err := r.collection.InsertOne(context.TODO(), bson.M{
			"name":               settingsName,
			"custody_currency":   settings.CustodyCurrency,
			"bridge_currency":    settings.BridgeCurrency,
			"poll_interval_sec":  settings.PollIntervalSec,
			"order_max_wait_sec": settings.OrderMaxWaitSec,
			"fills_max_wait_sec": settings.FillsMaxWaitSec,
			"fills_max_retries":  settings.FillsMaxRetries,
			"status":             settings.Status,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *SettingsRepository) Load() (*structs.Settings, error) {
	var result structs.Settings

	if err := r.collection.FindOne(context.TODO(), bson.D{{Key: "name", Value: settingsName}}).Decode(&result); err != nil {
		return &result, err
	}

	return &result, nil
}

func (r *SettingsRepository) UpdateStatus(id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(
		context.TODO(),
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}},
	)
	if err != nil {
		return err
	}

	return nil
}
